package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eke/internal/domains/booking/model"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
		want bool
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed, want: true},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled, want: true},
		{name: "pending to expired", from: model.StatusPending, to: model.StatusExpired, want: true},
		{name: "pending to amendment requested", from: model.StatusPending, to: model.StatusAmendmentRequested, want: true},
		{name: "pending to completed is illegal", from: model.StatusPending, to: model.StatusCompleted, want: false},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled, want: true},
		{name: "confirmed to paid", from: model.StatusConfirmed, to: model.StatusPaid, want: true},
		{name: "confirmed back to pending is illegal", from: model.StatusConfirmed, to: model.StatusPending, want: false},
		{name: "amendment requested back to pending", from: model.StatusAmendmentRequested, to: model.StatusPending, want: true},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, want: false},
		{name: "expired is terminal", from: model.StatusExpired, to: model.StatusConfirmed, want: false},
		{name: "expired cannot be confirmed", from: model.StatusExpired, to: model.StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []model.Status{model.StatusCompleted, model.StatusCancelled, model.StatusExpired, model.StatusDisputed} {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
	}

	for _, s := range []model.Status{model.StatusPending, model.StatusConfirmed, model.StatusPaid, model.StatusActive, model.StatusAmendmentRequested} {
		assert.False(t, s.IsTerminal(), "expected %s not to be terminal", s)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := model.ParseStatus("CONFIRMED")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, status)

	_, err = model.ParseStatus("ON_HOLD")
	assert.Error(t, err)
}

func TestOverlapsInclusiveEndpoints(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	booking := model.Booking{StartDate: day(10), EndDate: day(12)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical range", start: day(10), end: day(12), want: true},
		{name: "contained range", start: day(11), end: day(11), want: true},
		{name: "touching start boundary", start: day(8), end: day(10), want: true},
		{name: "touching end boundary", start: day(12), end: day(14), want: true},
		{name: "before", start: day(5), end: day(9), want: false},
		{name: "after", start: day(13), end: day(15), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestNullAmendmentRoundTrip(t *testing.T) {
	amendment := model.NullAmendment{
		Amendment: model.Amendment{
			Fields:      []string{"pickup_time", "return_time"},
			Message:     "Could we move pickup to the afternoon?",
			RequestedBy: model.AmendmentByOwner,
		},
		Valid: true,
	}

	value, err := amendment.Value()
	assert.NoError(t, err)

	var scanned model.NullAmendment
	assert.NoError(t, scanned.Scan(value))
	assert.True(t, scanned.Valid)
	assert.Equal(t, amendment.Amendment, scanned.Amendment)
}

func TestNullAmendmentNull(t *testing.T) {
	var scanned model.NullAmendment
	assert.NoError(t, scanned.Scan(nil))
	assert.False(t, scanned.Valid)

	value, err := scanned.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)
}
