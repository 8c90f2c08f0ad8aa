package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eke/config"
	otelMocks "eke/infras/otel/mocks"
	bookingMocks "eke/internal/domains/booking/mocks"
	"eke/internal/domains/booking/model"
	"eke/internal/domains/booking/model/dto"
	"eke/internal/domains/booking/service"
	listingMocks "eke/internal/domains/listing/mocks"
	listingModel "eke/internal/domains/listing/model"
	"eke/internal/notification"
	notifierMocks "eke/internal/notification/mocks"
	cacheMocks "eke/shared/cache/mocks"
	clockMocks "eke/shared/clock/mocks"
	"eke/shared/constant"
	"eke/shared/failure"
)

const (
	ownerID  = "owner-1"
	renterID = "renter-1"
)

type fixture struct {
	svc         service.Booking
	repo        *bookingMocks.MockBooking
	listingRepo *listingMocks.MockListing
	cache       *cacheMocks.FakeCache
	notifier    *notifierMocks.FakeNotifier
	clock       *clockMocks.FakeClock
	cfg         *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:        bookingMocks.NewMockBooking(ctrl),
		listingRepo: listingMocks.NewMockListing(ctrl),
		cache:       cacheMocks.NewFakeCache(),
		notifier:    notifierMocks.NewFakeNotifier(),
		clock:       clockMocks.NewClock(time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)),
		cfg:         &config.Config{},
	}

	f.cfg.Booking.ExpiryHours = 24
	f.cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.listingRepo, f.cfg, f.cache, f.notifier, f.clock, otelMocks.NewOtel())

	return f
}

func (f *fixture) asUser(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func (f *fixture) eventuallyNotified(t *testing.T, kind notification.Kind, count int) {
	t.Helper()

	assert.Eventually(t, func() bool {
		return f.notifier.CountByKind(kind) == count
	}, 2*time.Second, 10*time.Millisecond, "expected %d %s notifications", count, kind)
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async completion")
	}
}

func testListing() listingModel.Listing {
	return listingModel.Listing{
		ID:          "listing-1",
		OwnerID:     ownerID,
		Title:       "Makita circular saw",
		PricePerDay: decimal.NewFromInt(100),
		Deposit:     decimal.NewFromInt(50),
		IsActive:    true,
	}
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:         "booking-1",
		ListingID:  "listing-1",
		RenterID:   renterID,
		StartDate:  day(10),
		EndDate:    day(12),
		TotalPrice: decimal.NewFromInt(250),
		Status:     model.StatusPending,
		ExpiresAt:  sqlNullTime(time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC)),
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("success freezes price and expiry", func(t *testing.T) {
		f := newFixture(t)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
			Return(nil, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, renterID, booking.RenterID)
				assert.True(t, booking.TotalPrice.Equal(decimal.NewFromInt(250)), "2 days at 100 plus 50 deposit, got %s", booking.TotalPrice)
				assert.True(t, booking.ExpiresAt.Valid)
				assert.Equal(t, f.clock.Now().Add(24*time.Hour), booking.ExpiresAt.Time)

				return nil
			})

		res, err := f.svc.Create(f.asUser(renterID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		require.NoError(t, err)
		assert.Equal(t, model.StatusPending.String(), res.Status)
		assert.Equal(t, "250.00", res.TotalPrice)

		f.eventuallyNotified(t, notification.KindRequestReceived, 1)
	})

	t.Run("rejects inverted range without touching storage", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(f.asUser(renterID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-12",
			EndDate:   "2026-06-10",
		})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("unknown listing", func(t *testing.T) {
		f := newFixture(t)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listingModel.Listing{}, nil)

		_, err := f.svc.Create(f.asUser(renterID), dto.CreateBookingRequest{
			ListingID: "listing-9",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("inactive listing", func(t *testing.T) {
		f := newFixture(t)

		inactive := testListing()
		inactive.IsActive = false

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := f.svc.Create(f.asUser(renterID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("owner cannot book own listing by default", func(t *testing.T) {
		f := newFixture(t)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		_, err := f.svc.Create(f.asUser(ownerID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("owner self-booking allowed by policy", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Booking.AllowOwnerSelfBook = true

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
			Return(nil, nil)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.Create(f.asUser(ownerID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		assert.NoError(t, err)
	})

	t.Run("confirmed overlap blocks creation", func(t *testing.T) {
		f := newFixture(t)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
			Return([]model.Booking{confirmedBooking("other", day(11), day(14))}, nil)

		_, err := f.svc.Create(f.asUser(renterID), dto.CreateBookingRequest{
			ListingID: "listing-1",
			StartDate: "2026-06-10",
			EndDate:   "2026-06-12",
		})

		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	t.Run("owner confirms pending booking", func(t *testing.T) {
		f := newFixture(t)
		statsDone := make(chan struct{})

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ConfirmConditional(gomock.Any(), "booking-1", model.StatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, patch map[string]any) (bool, error) {
				assert.Equal(t, model.StatusConfirmed, patch[model.FieldStatus])
				assert.Equal(t, "09:00", patch[model.FieldPickupTime])
				assert.Equal(t, "17:00", patch[model.FieldReturnTime])

				return true, nil
			})

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.HonoredSet).
			Return([]model.Booking{confirmedBooking("booking-1", day(10), day(12))}, nil)

		f.listingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ any) error {
				close(statsDone)

				return nil
			})

		err := f.svc.Confirm(f.asUser(ownerID), "booking-1", dto.ConfirmBookingRequest{
			PickupTime: "09:00",
			ReturnTime: "17:00",
		})

		require.NoError(t, err)
		waitFor(t, statsDone)
		f.eventuallyNotified(t, notification.KindConfirmed, 1)
	})

	t.Run("losing the overlap race leaves the booking pending", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ConfirmConditional(gomock.Any(), "booking-1", model.StatusPending, gomock.Any()).
			Return(false, nil)

		err := f.svc.Confirm(f.asUser(ownerID), "booking-1", dto.ConfirmBookingRequest{})

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Zero(t, f.notifier.CountByKind(notification.KindConfirmed))
	})

	t.Run("renter cannot confirm", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Confirm(f.asUser(renterID), "booking-1", dto.ConfirmBookingRequest{})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Confirm(f.asUser(ownerID), "booking-1", dto.ConfirmBookingRequest{})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("expired deadline blocks confirmation", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.ExpiresAt = sqlNullTime(f.clock.Now().Add(-time.Hour))

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Confirm(f.asUser(ownerID), "booking-1", dto.ConfirmBookingRequest{})

		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Decline(t *testing.T) {
	t.Run("owner declines pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			UpdateStatusConditional(gomock.Any(), "booking-1", model.StatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, patch map[string]any) (bool, error) {
				assert.Equal(t, model.StatusCancelled, patch[model.FieldStatus])

				return true, nil
			})

		err := f.svc.Decline(f.asUser(ownerID), "booking-1", dto.DeclineBookingRequest{Message: "not available"})

		require.NoError(t, err)
		f.eventuallyNotified(t, notification.KindDeclined, 1)
	})

	t.Run("renter cannot decline", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Decline(f.asUser(renterID), "booking-1", dto.DeclineBookingRequest{})

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("renter cancels pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			UpdateStatusConditional(gomock.Any(), "booking-1", model.StatusPending, gomock.Any()).
			Return(true, nil)

		err := f.svc.Cancel(f.asUser(renterID), "booking-1")

		require.NoError(t, err)
		f.eventuallyNotified(t, notification.KindCancelledByRenter, 1)

		intents := f.notifier.Recorded()
		require.Len(t, intents, 1)
		assert.Equal(t, ownerID, intents[0].Recipient)
	})

	t.Run("owner cancels confirmed booking and stats refresh", func(t *testing.T) {
		f := newFixture(t)
		statsDone := make(chan struct{})

		booking := pendingBooking()
		booking.Status = model.StatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			UpdateStatusConditional(gomock.Any(), "booking-1", model.StatusConfirmed, gomock.Any()).
			Return(true, nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.HonoredSet).
			Return(nil, nil)

		f.listingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, patch map[string]any, _ any) error {
				assert.Equal(t, 0, patch[listingModel.FieldBookingCount])
				close(statsDone)

				return nil
			})

		err := f.svc.Cancel(f.asUser(ownerID), "booking-1")

		require.NoError(t, err)
		waitFor(t, statsDone)
		f.eventuallyNotified(t, notification.KindCancelled, 1)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Cancel(f.asUser("someone-else"), "booking-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("terminal booking cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusExpired

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.Cancel(f.asUser(renterID), "booking-1")

		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_RequestAmendment(t *testing.T) {
	t.Run("owner amends confirmed booking", func(t *testing.T) {
		f := newFixture(t)
		statsDone := make(chan struct{})

		booking := pendingBooking()
		booking.Status = model.StatusConfirmed

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			UpdateStatusConditional(gomock.Any(), "booking-1", model.StatusConfirmed, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, patch map[string]any) (bool, error) {
				assert.Equal(t, model.StatusAmendmentRequested, patch[model.FieldStatus])

				stored, ok := patch[model.FieldAmendment].(model.NullAmendment)
				require.True(t, ok)
				assert.True(t, stored.Valid)
				assert.Equal(t, model.AmendmentByOwner, stored.Amendment.RequestedBy)

				return true, nil
			})

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.HonoredSet).
			Return(nil, nil)

		f.listingRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ map[string]any, _ any) error {
				close(statsDone)

				return nil
			})

		err := f.svc.RequestAmendment(f.asUser(ownerID), "booking-1", dto.AmendmentRequest{
			Fields:  []string{"pickup_time"},
			Message: "can we move pickup to the afternoon",
		})

		require.NoError(t, err)
		waitFor(t, statsDone)
		f.eventuallyNotified(t, notification.KindAmendmentRequested, 1)
	})

	t.Run("renter cannot request amendment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		err := f.svc.RequestAmendment(f.asUser(renterID), "booking-1", dto.AmendmentRequest{
			Fields:  []string{"pickup_time"},
			Message: "earlier please",
		})

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("renter answers amendment and booking returns to pending", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusAmendmentRequested
		booking.Amendment = model.NullAmendment{
			Amendment: model.Amendment{Fields: []string{"start_date"}, RequestedBy: model.AmendmentByOwner},
			Valid:     true,
		}

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
			Return(nil, nil)

		f.repo.EXPECT().
			UpdateStatusConditional(gomock.Any(), "booking-1", model.StatusAmendmentRequested, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ model.Status, patch map[string]any) (bool, error) {
				assert.Equal(t, model.StatusPending, patch[model.FieldStatus])
				assert.Equal(t, day(11), patch[model.FieldStartDate])
				assert.Equal(t, day(13), patch[model.FieldEndDate])
				assert.Equal(t, f.clock.Now().Add(24*time.Hour), patch[model.FieldExpiresAt])

				cleared, ok := patch[model.FieldAmendment].(model.NullAmendment)
				require.True(t, ok)
				assert.False(t, cleared.Valid)

				return true, nil
			})

		err := f.svc.Update(f.asUser(renterID), "booking-1", dto.UpdateBookingRequest{
			StartDate: "2026-06-11",
			EndDate:   "2026-06-13",
		})

		require.NoError(t, err)
		f.eventuallyNotified(t, notification.KindBookingUpdated, 1)
	})

	t.Run("owner cannot use the renter update", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusAmendmentRequested

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Update(f.asUser(ownerID), "booking-1", dto.UpdateBookingRequest{})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("only amendment-requested bookings can be updated", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking(), nil)

		err := f.svc.Update(f.asUser(renterID), "booking-1", dto.UpdateBookingRequest{})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("inverted replacement range is rejected", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusAmendmentRequested

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Update(f.asUser(renterID), "booking-1", dto.UpdateBookingRequest{
			StartDate: "2026-06-15",
			EndDate:   "2026-06-11",
		})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("replacement dates colliding with a confirmed booking are rejected", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusAmendmentRequested

		occupying := pendingBooking()
		occupying.ID = "booking-2"
		occupying.Status = model.StatusConfirmed
		occupying.StartDate = day(12)
		occupying.EndDate = day(14)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testListing(), nil)

		f.repo.EXPECT().
			ListByListing(gomock.Any(), "listing-1", model.OccupancySet).
			Return([]model.Booking{occupying}, nil)

		err := f.svc.Update(f.asUser(renterID), "booking-1", dto.UpdateBookingRequest{
			StartDate: "2026-06-11",
			EndDate:   "2026-06-13",
		})

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Zero(t, f.notifier.CountByKind(notification.KindBookingUpdated))
	})

	t.Run("listing read failure surfaces before the status write", func(t *testing.T) {
		f := newFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusAmendmentRequested

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.listingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(listingModel.Listing{}, errors.New("read replica down"))

		err := f.svc.Update(f.asUser(renterID), "booking-1", dto.UpdateBookingRequest{
			StartDate: "2026-06-11",
			EndDate:   "2026-06-13",
		})

		require.Error(t, err)
		assert.Zero(t, f.notifier.CountByKind(notification.KindBookingUpdated))
	})
}

func TestBookingService_GetUsesCache(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(pendingBooking(), nil).
		Times(1)

	first, err := f.svc.Get(context.Background(), "booking-1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return f.cache.Has("booking:get:booking-1")
	}, 2*time.Second, 10*time.Millisecond)

	second, err := f.svc.Get(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
