package dto_test

import (
	"testing"
	"time"

	"eke/internal/domains/booking/model"
	"eke/internal/domains/booking/model/dto"
	gModel "eke/shared/model"
	"eke/shared/timezone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		expectErr bool
	}{
		{
			name:      "valid range",
			startDate: "2026-06-10",
			endDate:   "2026-06-12",
			expectErr: false,
		},
		{
			name:      "end before start",
			startDate: "2026-06-12",
			endDate:   "2026-06-10",
			expectErr: true,
		},
		{
			name:      "end equals start",
			startDate: "2026-06-10",
			endDate:   "2026-06-10",
			expectErr: true,
		},
		{
			name:      "malformed start date",
			startDate: "10-06-2026",
			endDate:   "2026-06-12",
			expectErr: true,
		},
		{
			name:      "malformed end date",
			startDate: "2026-06-10",
			endDate:   "next tuesday",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{
				ListingID: "listing-1",
				StartDate: tt.startDate,
				EndDate:   tt.endDate,
			}

			start, end, err := req.ParseDates()

			if tt.expectErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, end.After(start))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		ListingID:     "listing-1",
		StartDate:     "2026-06-10",
		EndDate:       "2026-06-12",
		RenterMessage: "need it for a weekend project",
	}

	start, end, err := req.ParseDates()
	require.NoError(t, err)

	totalPrice := decimal.NewFromInt(250)
	expiresAt := timezone.Now().Add(24 * time.Hour)

	renterID := "renter-1"
	booking := req.ToModel(renterID, start, end, totalPrice, expiresAt)

	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.ListingID, booking.ListingID)
	assert.Equal(t, renterID, booking.RenterID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.True(t, booking.TotalPrice.Equal(totalPrice))
	assert.True(t, booking.ExpiresAt.Valid)
	assert.Equal(t, expiresAt, booking.ExpiresAt.Time)
	assert.True(t, booking.RenterMessage.Valid)
	assert.Equal(t, req.RenterMessage, booking.RenterMessage.String)
	assert.Equal(t, renterID, booking.CreatedBy)
	assert.Equal(t, renterID, booking.ModifiedBy)
	assert.False(t, booking.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestUpdateBookingRequest_ParseDates(t *testing.T) {
	t.Run("both dates omitted", func(t *testing.T) {
		req := dto.UpdateBookingRequest{}

		start, end, err := req.ParseDates()

		require.NoError(t, err)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})

	t.Run("only end date sent", func(t *testing.T) {
		req := dto.UpdateBookingRequest{EndDate: "2026-06-14"}

		start, end, err := req.ParseDates()

		require.NoError(t, err)
		assert.True(t, start.IsZero())
		assert.False(t, end.IsZero())
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		req := dto.UpdateBookingRequest{StartDate: "not-a-date"}

		_, _, err := req.ParseDates()

		assert.Error(t, err)
	})
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	bookingModel := model.Booking{
		ID:         "booking-1",
		ListingID:  "listing-1",
		RenterID:   "renter-1",
		StartDate:  start,
		EndDate:    end,
		TotalPrice: decimal.NewFromFloat(250.5),
		Status:     model.StatusConfirmed,
		Amendment: model.NullAmendment{
			Amendment: model.Amendment{
				Fields:      []string{"start_date"},
				Message:     "can you shift by one day?",
				RequestedBy: model.AmendmentByOwner,
			},
			Valid: true,
		},
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "renter-1",
			ModifiedBy: "owner-1",
		},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, bookingModel.ID, response.ID)
	assert.Equal(t, "2026-06-10", response.StartDate)
	assert.Equal(t, "2026-06-12", response.EndDate)
	assert.Equal(t, "250.50", response.TotalPrice)
	assert.Equal(t, "CONFIRMED", response.Status)
	assert.Empty(t, response.ExpiresAt)
	require.NotNil(t, response.Amendment)
	assert.Equal(t, []string{"start_date"}, response.Amendment.Fields)
	assert.Equal(t, "OWNER", response.Amendment.RequestedBy)
	assert.Equal(t, bookingModel.CreatedBy, response.CreatedBy)
	assert.Equal(t, bookingModel.ModifiedBy, response.ModifiedBy)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "booking-1", Status: model.StatusPending, TotalPrice: decimal.NewFromInt(100)},
		{ID: "booking-2", Status: model.StatusConfirmed, TotalPrice: decimal.NewFromInt(200)},
	}

	var response dto.GetBookingsResponse
	response.FromModels(models, 12, 5)

	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, "booking-1", response.Bookings[0].ID)
	assert.Equal(t, "booking-2", response.Bookings[1].ID)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
}
