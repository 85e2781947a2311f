package submit_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	"github.com/m04kA/SMC-BookingFlow/pkg/logger"
	"github.com/m04kA/SMC-BookingFlow/pkg/types"
)

type fakeEngine struct {
	mu     sync.Mutex
	draft  domain.BookingDraft
	resets int
}

func (e *fakeEngine) Draft() domain.BookingDraft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

func (e *fakeEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = domain.BookingDraft{}
	e.resets++
}

type fakeLedger struct {
	mu       sync.Mutex
	appended []domain.Appointment
}

func (l *fakeLedger) Append(a domain.Appointment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appended = append(l.appended, a)
}

type fakeGateway struct {
	mu       sync.Mutex
	calls    []domain.BookingPayload
	err      error
	release  chan struct{}
	started  chan struct{}
	response *domain.Appointment
}

func (g *fakeGateway) CreateBooking(_ context.Context, payload domain.BookingPayload) (*domain.Appointment, error) {
	g.mu.Lock()
	g.calls = append(g.calls, payload)
	g.mu.Unlock()

	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	if g.response != nil {
		return g.response, nil
	}
	return &domain.Appointment{
		ID:         "a1",
		UserID:     payload.UserID,
		BusinessID: payload.BusinessID,
		StaffID:    payload.StaffID,
		ServiceIDs: payload.ServiceIDs,
		Date:       payload.Date,
		StartTime:  payload.StartTime,
		EndTime:    payload.EndTime,
		TotalPrice: payload.TotalPrice,
		Status:     domain.StatusPending,
		Notes:      payload.Notes,
	}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (m *countingMetrics) IncBookingSubmission(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

func completeDraft() domain.BookingDraft {
	services := []domain.Service{
		{ID: "x", Name: "Haircut", DurationMinutes: 30, Price: 100},
		{ID: "y", Name: "Beard", DurationMinutes: 20, Price: 50},
	}
	return domain.BookingDraft{
		Business: &domain.BusinessRef{ID: "b1", Name: "Salon"},
		Staff:    &domain.StaffRef{ID: "s1", Name: "Ann"},
		Services: services,
		Schedule: domain.ScheduleChoice{Date: "2025-10-15", Slot: "14:00"},
		Totals:   domain.ComputeTotals(services),
	}
}

func newUseCase(engine *fakeEngine, ledger *fakeLedger, gateway *fakeGateway, metrics *countingMetrics) *UseCase {
	return NewUseCase("u1", engine, ledger, gateway, metrics, logger.NewNop())
}

func TestExecute_Success(t *testing.T) {
	engine := &fakeEngine{draft: completeDraft()}
	ledger := &fakeLedger{}
	gateway := &fakeGateway{}
	metrics := &countingMetrics{}
	uc := newUseCase(engine, ledger, gateway, metrics)

	appointment, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.NotNil(t, appointment)
	assert.Equal(t, "a1", appointment.ID)

	require.Len(t, gateway.calls, 1)
	payload := gateway.calls[0]
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, "b1", payload.BusinessID)
	assert.Equal(t, "s1", payload.StaffID)
	assert.Equal(t, []string{"x", "y"}, payload.ServiceIDs)
	assert.Equal(t, "14:00", payload.StartTime)
	assert.Equal(t, "14:50", payload.EndTime)
	assert.Equal(t, 150.0, payload.TotalPrice)
	assert.Nil(t, payload.Notes)

	require.Len(t, ledger.appended, 1)
	assert.Equal(t, "a1", ledger.appended[0].ID)
	assert.Equal(t, 1, engine.resets)
	assert.True(t, engine.Draft().IsEmpty())
	assert.Equal(t, 1, metrics.outcomes[OutcomeSuccess])
	assert.False(t, uc.InFlight())
}

func TestExecute_NotesPassedThrough(t *testing.T) {
	draft := completeDraft()
	draft.Notes = "window seat"
	gateway := &fakeGateway{}
	uc := newUseCase(&fakeEngine{draft: draft}, &fakeLedger{}, gateway, &countingMetrics{})

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, gateway.calls, 1)
	require.NotNil(t, gateway.calls[0].Notes)
	assert.Equal(t, "window seat", *gateway.calls[0].Notes)
}

func TestExecute_ValidationFailsWithoutNetwork(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(d *domain.BookingDraft)
		wantFields []string
	}{
		{
			name:       "no business",
			mutate:     func(d *domain.BookingDraft) { d.Business = nil },
			wantFields: []string{FieldBusiness},
		},
		{
			name:       "no staff",
			mutate:     func(d *domain.BookingDraft) { d.Staff = nil },
			wantFields: []string{FieldStaff},
		},
		{
			name: "no services",
			mutate: func(d *domain.BookingDraft) {
				d.Services = nil
				d.Totals = domain.DraftTotals{}
			},
			wantFields: []string{FieldServices},
		},
		{
			name:       "no schedule",
			mutate:     func(d *domain.BookingDraft) { d.Schedule = domain.ScheduleChoice{} },
			wantFields: []string{FieldDate, FieldTime},
		},
		{
			name: "negative total duration",
			mutate: func(d *domain.BookingDraft) {
				d.Services[1].DurationMinutes = -45
				d.Totals = domain.ComputeTotals(d.Services)
			},
			wantFields: []string{FieldServices},
		},
		{
			name: "negative service duration",
			mutate: func(d *domain.BookingDraft) {
				d.Services[0].DurationMinutes = 50
				d.Services[1].DurationMinutes = -10
				d.Totals = domain.ComputeTotals(d.Services)
			},
			wantFields: []string{FieldServices},
		},
		{
			name:       "bad date",
			mutate:     func(d *domain.BookingDraft) { d.Schedule.Date = "15.10.2025" },
			wantFields: []string{FieldDate},
		},
		{
			name:       "bad slot",
			mutate:     func(d *domain.BookingDraft) { d.Schedule.Slot = "25:00" },
			wantFields: []string{FieldTime},
		},
		{
			name: "empty draft",
			mutate: func(d *domain.BookingDraft) {
				*d = domain.BookingDraft{}
			},
			wantFields: []string{FieldBusiness, FieldStaff, FieldServices, FieldDate, FieldTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(&draft)
			engine := &fakeEngine{draft: draft}
			ledger := &fakeLedger{}
			gateway := &fakeGateway{}
			metrics := &countingMetrics{}
			uc := newUseCase(engine, ledger, gateway, metrics)

			appointment, err := uc.Execute(context.Background())

			assert.Nil(t, appointment)
			require.ErrorIs(t, err, ErrValidation)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantFields, vErr.Fields)

			assert.Zero(t, gateway.callCount())
			assert.Empty(t, ledger.appended)
			assert.Zero(t, engine.resets)
			assert.Equal(t, 1, metrics.outcomes[OutcomeValidation])
		})
	}
}

func TestExecute_RejectsEndPastMidnight(t *testing.T) {
	draft := completeDraft()
	draft.Schedule.Slot = "23:30"
	gateway := &fakeGateway{}
	uc := newUseCase(&fakeEngine{draft: draft}, &fakeLedger{}, gateway, &countingMetrics{})

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrCrossesMidnight)
	assert.Zero(t, gateway.callCount())
}

func TestExecute_EndExactlyAtMidnightRejected(t *testing.T) {
	draft := completeDraft()
	draft.Schedule.Slot = "23:10"
	gateway := &fakeGateway{}
	uc := newUseCase(&fakeEngine{draft: draft}, &fakeLedger{}, gateway, &countingMetrics{})

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrCrossesMidnight)
	assert.Zero(t, gateway.callCount())
}

func TestExecute_GatewayFailurePreservesDraft(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantErr     error
		wantOutcome string
	}{
		{
			name:        "slot taken",
			err:         fmt.Errorf("%w: slot taken", backendClient.ErrConflict),
			wantErr:     ErrConflict,
			wantOutcome: OutcomeConflict,
		},
		{
			name:        "rejected",
			err:         fmt.Errorf("%w: staff inactive", backendClient.ErrRejected),
			wantErr:     ErrConflict,
			wantOutcome: OutcomeConflict,
		},
		{
			name:        "network",
			err:         fmt.Errorf("%w: connection reset", backendClient.ErrUnavailable),
			wantErr:     ErrTransient,
			wantOutcome: OutcomeTransient,
		},
		{
			name:        "bad response",
			err:         fmt.Errorf("%w: unexpected json", backendClient.ErrInvalidResponse),
			wantErr:     ErrInternal,
			wantOutcome: OutcomeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			engine := &fakeEngine{draft: draft}
			ledger := &fakeLedger{}
			metrics := &countingMetrics{}
			uc := newUseCase(engine, ledger, &fakeGateway{err: tt.err}, metrics)

			_, err := uc.Execute(context.Background())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, draft, engine.Draft())
			assert.Zero(t, engine.resets)
			assert.Empty(t, ledger.appended)
			assert.Equal(t, 1, metrics.outcomes[tt.wantOutcome])
			assert.False(t, uc.InFlight())
		})
	}
}

func TestExecute_RetryAfterFailure(t *testing.T) {
	engine := &fakeEngine{draft: completeDraft()}
	ledger := &fakeLedger{}
	gateway := &fakeGateway{err: fmt.Errorf("%w: timeout", backendClient.ErrUnavailable)}
	uc := newUseCase(engine, ledger, gateway, &countingMetrics{})

	_, err := uc.Execute(context.Background())
	require.ErrorIs(t, err, ErrTransient)

	gateway.err = nil
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, gateway.callCount())
	assert.Len(t, ledger.appended, 1)
}

func TestExecute_SecondSubmitWhileInFlight(t *testing.T) {
	engine := &fakeEngine{draft: completeDraft()}
	ledger := &fakeLedger{}
	gateway := &fakeGateway{
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	metrics := &countingMetrics{}
	uc := newUseCase(engine, ledger, gateway, metrics)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(context.Background())
		done <- err
	}()

	select {
	case <-gateway.started:
	case <-time.After(time.Second):
		t.Fatal("first submission did not reach the gateway")
	}
	assert.True(t, uc.InFlight())

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(gateway.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, gateway.callCount())
	assert.Len(t, ledger.appended, 1)
	assert.Equal(t, 1, metrics.outcomes[OutcomeInProgress])
	assert.Equal(t, 1, metrics.outcomes[OutcomeSuccess])
}

func TestCalculateEndTime(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     string
		wantErr  bool
	}{
		{start: "09:00", duration: 0, want: "09:00"},
		{start: "09:00", duration: 45, want: "09:45"},
		{start: "09:30", duration: 90, want: "11:00"},
		{start: "23:00", duration: 59, want: "23:59"},
		{start: "23:00", duration: 60, wantErr: true},
		{start: "22:00", duration: 180, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s+%d", tt.start, tt.duration), func(t *testing.T) {
			end, err := calculateEndTime(types.TimeString(tt.start), tt.duration)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCrossesMidnight)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, end.String())
		})
	}
}

func TestCalculateEndTime_NegativeDuration(t *testing.T) {
	_, err := calculateEndTime(types.TimeString("09:00"), -15)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldServices}, verr.Fields)
	assert.ErrorIs(t, err, types.ErrNegativeDuration)
	assert.NotErrorIs(t, err, ErrCrossesMidnight)
}
