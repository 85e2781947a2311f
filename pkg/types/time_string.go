package types

import (
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrDayOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrDayOverflow = errors.New("time string: result crosses day boundary")

	// ErrNegativeDuration возвращается, когда к времени прибавляют отрицательную длительность
	ErrNegativeDuration = errors.New("time string: negative duration")
)

// TimeString is a time of day in HH:MM form.
// The zero value means "not set".
type TimeString string

// NewTimeString returns the time-of-day part of t truncated to minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates s.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrDayOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the HH:MM representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format.
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) {
		return ErrInvalidTimeString
	}
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return ErrInvalidTimeString
	}
	return nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	parsed, _ := time.Parse(timeLayout, string(t))
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes shifts the time forward. Results at or past midnight are an error,
// the value never wraps around the clock.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if minutes < 0 {
		return "", fmt.Errorf("%w: %d minutes", ErrNegativeDuration, minutes)
	}
	start, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(start + minutes)
}

// IsBefore reports whether t is strictly earlier than other.
// Invalid values compare as midnight.
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a > b
}
