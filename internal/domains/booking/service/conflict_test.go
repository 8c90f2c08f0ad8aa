package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eke/internal/domains/booking/model"
)

func day(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func sqlNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func confirmedBooking(id string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:        id,
		ListingID: "listing-1",
		RenterID:  renterID,
		StartDate: start,
		EndDate:   end,
		Status:    model.StatusConfirmed,
	}
}

func TestBookingService_IsAdmissible(t *testing.T) {
	testCases := []struct {
		name       string
		occupying  []model.Booking
		start      time.Time
		end        time.Time
		exclude    string
		admissible bool
	}{
		{
			name:       "no occupying bookings",
			occupying:  nil,
			start:      day(10),
			end:        day(12),
			admissible: true,
		},
		{
			name:       "disjoint ranges",
			occupying:  []model.Booking{confirmedBooking("b1", day(1), day(5))},
			start:      day(10),
			end:        day(12),
			admissible: true,
		},
		{
			name:       "contained range blocks",
			occupying:  []model.Booking{confirmedBooking("b1", day(8), day(20))},
			start:      day(10),
			end:        day(12),
			admissible: false,
		},
		{
			name:       "touching end boundary blocks",
			occupying:  []model.Booking{confirmedBooking("b1", day(5), day(10))},
			start:      day(10),
			end:        day(12),
			admissible: false,
		},
		{
			name:       "touching start boundary blocks",
			occupying:  []model.Booking{confirmedBooking("b1", day(12), day(15))},
			start:      day(10),
			end:        day(12),
			admissible: false,
		},
		{
			name:       "overlap with excluded booking is ignored",
			occupying:  []model.Booking{confirmedBooking("self", day(10), day(12))},
			start:      day(10),
			end:        day(12),
			exclude:    "self",
			admissible: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().
				ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
				Return(tc.occupying, nil)

			admissible, err := f.svc.IsAdmissible(context.Background(), "listing-1", tc.start, tc.end, tc.exclude)

			require.NoError(t, err)
			assert.Equal(t, tc.admissible, admissible)
		})
	}
}

func TestBookingService_IsAdmissibleRejectsInvertedRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.IsAdmissible(context.Background(), "listing-1", day(12), day(10), "")
	assert.Error(t, err)

	_, err = f.svc.IsAdmissible(context.Background(), "listing-1", day(10), day(10), "")
	assert.Error(t, err)
}
