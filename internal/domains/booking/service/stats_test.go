package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eke/internal/domains/booking/model"
	"eke/internal/domains/booking/service"
	listingModel "eke/internal/domains/listing/model"
)

func honoredBooking(id string, status model.Status, price int64, startDay, endDay int) model.Booking {
	return model.Booking{
		ID:         id,
		ListingID:  "listing-1",
		RenterID:   renterID,
		StartDate:  day(startDay),
		EndDate:    day(endDay),
		TotalPrice: decimal.NewFromInt(price),
		Status:     status,
	}
}

func TestComputeListingStats(t *testing.T) {
	t.Run("empty set yields zero stats", func(t *testing.T) {
		stats := service.ComputeListingStats(nil)

		assert.Zero(t, stats.BookingCount)
		assert.True(t, stats.TotalEarnings.IsZero())
		assert.True(t, stats.AvgEarnings.IsZero())
		assert.Zero(t, stats.AvgDurationDays)
	})

	t.Run("only honored statuses count", func(t *testing.T) {
		bookings := []model.Booking{
			honoredBooking("b1", model.StatusConfirmed, 200, 1, 3),
			honoredBooking("b2", model.StatusCompleted, 400, 5, 9),
			honoredBooking("b3", model.StatusPending, 999, 10, 12),
			honoredBooking("b4", model.StatusCancelled, 999, 13, 14),
			honoredBooking("b5", model.StatusExpired, 999, 15, 16),
		}

		stats := service.ComputeListingStats(bookings)

		assert.Equal(t, 2, stats.BookingCount)
		assert.True(t, stats.TotalEarnings.Equal(decimal.NewFromInt(600)))
		assert.True(t, stats.AvgEarnings.Equal(decimal.NewFromInt(300)))
		assert.InDelta(t, 3.0, stats.AvgDurationDays, 0.0001)
	})

	t.Run("average earnings rounds to two places", func(t *testing.T) {
		bookings := []model.Booking{
			honoredBooking("b1", model.StatusConfirmed, 100, 1, 2),
			honoredBooking("b2", model.StatusConfirmed, 100, 3, 4),
			honoredBooking("b3", model.StatusConfirmed, 100, 5, 6),
		}

		stats := service.ComputeListingStats(bookings)

		assert.Equal(t, "100.00", stats.AvgEarnings.StringFixed(2))
		assert.True(t, stats.TotalEarnings.Equal(decimal.NewFromInt(300)))
	})

	t.Run("fold is idempotent", func(t *testing.T) {
		bookings := []model.Booking{
			honoredBooking("b1", model.StatusConfirmed, 250, 1, 3),
			honoredBooking("b2", model.StatusPaid, 150, 4, 6),
		}

		first := service.ComputeListingStats(bookings)
		second := service.ComputeListingStats(bookings)

		assert.Equal(t, first.BookingCount, second.BookingCount)
		assert.True(t, first.TotalEarnings.Equal(second.TotalEarnings))
		assert.True(t, first.AvgEarnings.Equal(second.AvgEarnings))
		assert.Equal(t, first.AvgDurationDays, second.AvgDurationDays)
	})
}

func TestBookingService_RecomputeListingStats(t *testing.T) {
	f := newFixture(t)

	bookings := []model.Booking{
		honoredBooking("b1", model.StatusConfirmed, 200, 1, 3),
		honoredBooking("b2", model.StatusActive, 100, 5, 6),
	}

	f.repo.EXPECT().
		ListByListing(gomock.Any(), "listing-1", model.HonoredSet).
		Return(bookings, nil)

	f.listingRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patch map[string]any, _ any) error {
			assert.Equal(t, 2, patch[listingModel.FieldBookingCount])

			total, ok := patch[listingModel.FieldTotalEarnings].(decimal.Decimal)
			require.True(t, ok)
			assert.True(t, total.Equal(decimal.NewFromInt(300)))

			avg, ok := patch[listingModel.FieldAvgEarnings].(decimal.Decimal)
			require.True(t, ok)
			assert.True(t, avg.Equal(decimal.NewFromInt(150)))

			assert.InDelta(t, 1.5, patch[listingModel.FieldAvgDuration], 0.0001)

			return nil
		})

	err := f.svc.RecomputeListingStats(context.Background(), "listing-1")
	assert.NoError(t, err)
}
