package submit_booking

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/pkg/types"
)

// validateDraft проверяет полноту черновика и возвращает время окончания.
// Все проверки локальные, сеть не используется.
func validateDraft(draft domain.BookingDraft) (types.TimeString, error) {
	var fields []string

	if draft.Business == nil {
		fields = append(fields, FieldBusiness)
	}
	if draft.Staff == nil {
		fields = append(fields, FieldStaff)
	}
	if len(draft.Services) == 0 || len(draft.Services) > domain.MaxServicesPerBooking || !validDurations(draft) {
		fields = append(fields, FieldServices)
	}

	// Проверяем, что дата указана и в формате YYYY-MM-DD
	if draft.Schedule.Date == "" {
		fields = append(fields, FieldDate)
	} else if _, err := time.Parse(domain.DateFormat, draft.Schedule.Date); err != nil {
		fields = append(fields, FieldDate)
	}

	// Проверяем, что слот указан и в формате HH:MM
	startTime := types.TimeString(draft.Schedule.Slot)
	slotValid := !startTime.IsZero() && startTime.Validate() == nil
	if !slotValid {
		fields = append(fields, FieldTime)
	}

	if utf8.RuneCountInString(draft.Notes) > domain.MaxNotesLength {
		fields = append(fields, FieldNotes)
	}

	if len(fields) > 0 {
		return "", &ValidationError{Fields: fields}
	}

	return calculateEndTime(startTime, draft.Totals.DurationMinutes)
}

// validDurations: у каждой услуги длительность не отрицательна, а суммарная больше нуля
func validDurations(draft domain.BookingDraft) bool {
	for _, s := range draft.Services {
		if s.DurationMinutes < 0 {
			return false
		}
	}
	return draft.Totals.DurationMinutes > 0
}

// calculateEndTime прибавляет длительность к началу слота.
// Переход через полночь не поддерживается: такие бронирования отклоняются.
func calculateEndTime(startTime types.TimeString, durationMinutes int) (types.TimeString, error) {
	endTime, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		if errors.Is(err, types.ErrNegativeDuration) {
			return "", &ValidationError{Fields: []string{FieldServices}, Cause: err}
		}
		if errors.Is(err, types.ErrDayOverflow) {
			return "", &ValidationError{Fields: []string{FieldTime}, Cause: ErrCrossesMidnight}
		}
		return "", &ValidationError{Fields: []string{FieldTime}, Cause: err}
	}
	return endTime, nil
}
