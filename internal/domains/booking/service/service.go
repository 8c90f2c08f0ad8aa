package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"eke/config"
	"eke/infras/otel"
	"eke/internal/domains/booking/model"
	"eke/internal/domains/booking/model/dto"
	"eke/internal/domains/booking/pricing"
	"eke/internal/domains/booking/repository"
	listingModel "eke/internal/domains/listing/model"
	listingRepo "eke/internal/domains/listing/repository"
	"eke/internal/notification"
	"eke/shared"
	"eke/shared/cache"
	"eke/shared/clock"
	"eke/shared/constant"
	gDto "eke/shared/dto"
	"eke/shared/failure"
	"eke/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) error
	Decline(ctx context.Context, id string, req dto.DeclineBookingRequest) error
	Cancel(ctx context.Context, id string) error
	RequestAmendment(ctx context.Context, id string, req dto.AmendmentRequest) error
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) error
	IsAdmissible(ctx context.Context, listingID string, start, end time.Time, excludeBookingID string) (bool, error)
	Sweep(ctx context.Context, now time.Time) ([]string, error)
	RecomputeListingStats(ctx context.Context, listingID string) error
}

type serviceImpl struct {
	repo        repository.Booking
	listingRepo listingRepo.Listing
	cfg         *config.Config
	cache       cache.RedisCache
	notifier    notification.Notifier
	clock       clock.Clock
	otel        otel.Otel
}

func New(repo repository.Booking, listingRepo listingRepo.Listing, cfg *config.Config, cache cache.RedisCache, notifier notification.Notifier, clk clock.Clock, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		cfg:         cfg,
		cache:       cache,
		notifier:    notifier,
		clock:       clk,
		otel:        otel,
	}
}

// Create registers a renter's booking request. The listing must exist and be
// active, the range must be admissible against confirmed bookings, and the
// total price is computed here once and frozen into the record.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	renter, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	listing, err := s.getListing(ctx, req.ListingID)
	if err != nil {
		return res, err
	}

	if !listing.IsActive {
		return res, failure.BadRequestFromString("listing is not active") // nolint:wrapcheck
	}

	if listing.OwnerID == renter && !s.cfg.Booking.AllowOwnerSelfBook {
		return res, failure.Forbidden("owners cannot book their own listing") // nolint:wrapcheck
	}

	admissible, err := s.IsAdmissible(ctx, req.ListingID, start, end, constant.Empty)
	if err != nil {
		return res, err
	}

	if !admissible {
		return res, failure.Conflict("requested dates are not available") // nolint:wrapcheck
	}

	totalPrice := pricing.TotalPrice(listing.PricePerDay, start, end, listing.Deposit)
	expiresAt := s.clock.Now().Add(time.Duration(s.cfg.Booking.ExpiryHours) * time.Hour)

	booking := req.ToModel(renter, start, end, totalPrice, expiresAt)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterTransition(ctx, booking.ListingID, constant.Empty, false)
	s.dispatch(ctx, notification.Intent{
		Kind:      notification.KindRequestReceived,
		Recipient: listing.OwnerID,
		BookingID: booking.ID,
		ListingID: booking.ListingID,
		Payload: map[string]string{
			"start_date":  req.StartDate,
			"end_date":    req.EndDate,
			"total_price": totalPrice.StringFixed(2),
			"message":     req.RenterMessage,
		},
	})

	res.FromModel(booking)

	return res, nil
}

// Confirm moves a pending booking to CONFIRMED on behalf of the listing
// owner. The status precondition and the overlap re-check run in a single
// conditional write, so of two racing confirmations over overlapping ranges
// exactly one wins; the loser stays PENDING and gets a conflict.
func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	listing, err := s.getListing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	if listing.OwnerID != user {
		return failure.Forbidden("only the listing owner can confirm a booking") // nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(model.StatusConfirmed) {
		return failure.Conflictf("booking in status %s cannot be confirmed", booking.Status) // nolint:wrapcheck
	}

	if booking.ExpiresAt.Valid && s.clock.Now().After(booking.ExpiresAt.Time) {
		return failure.Conflict("booking request has expired") // nolint:wrapcheck
	}

	patch := map[string]any{
		model.FieldStatus:        model.StatusConfirmed,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.PickupTime != constant.Empty {
		patch[model.FieldPickupTime] = req.PickupTime
	}

	if req.ReturnTime != constant.Empty {
		patch[model.FieldReturnTime] = req.ReturnTime
	}

	if req.Dispatch != constant.Empty {
		patch[model.FieldDispatch] = req.Dispatch
	}

	won, err := s.repo.ConfirmConditional(ctx, id, model.StatusPending, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	if !won {
		return failure.Conflict("booking dates are no longer available") // nolint:wrapcheck
	}

	s.afterTransition(ctx, booking.ListingID, id, true)
	s.dispatch(ctx, notification.Intent{
		Kind:      notification.KindConfirmed,
		Recipient: booking.RenterID,
		BookingID: id,
		ListingID: booking.ListingID,
		Payload: map[string]string{
			"pickup_time": req.PickupTime,
			"return_time": req.ReturnTime,
		},
	})

	return nil
}

// Decline rejects a pending booking on behalf of the listing owner.
func (s *serviceImpl) Decline(ctx context.Context, id string, req dto.DeclineBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	listing, err := s.getListing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	if listing.OwnerID != user {
		return failure.Forbidden("only the listing owner can decline a booking") // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return failure.Conflictf("booking in status %s cannot be declined", booking.Status) // nolint:wrapcheck
	}

	patch := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	won, err := s.repo.UpdateStatusConditional(ctx, id, model.StatusPending, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to decline booking")

		return fmt.Errorf("failed to decline booking: %w", err)
	}

	if !won {
		return failure.Conflict("booking status changed, please reload") // nolint:wrapcheck
	}

	s.afterTransition(ctx, booking.ListingID, id, false)
	s.dispatch(ctx, notification.Intent{
		Kind:      notification.KindDeclined,
		Recipient: booking.RenterID,
		BookingID: id,
		ListingID: booking.ListingID,
		Payload:   map[string]string{"message": req.Message},
	})

	return nil
}

// Cancel withdraws a booking. The renter cancels their own request, the owner
// cancels a booking on their listing; either way the state machine decides
// whether the current status allows it.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	listing, err := s.getListing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	byRenter := booking.RenterID == user
	if !byRenter && listing.OwnerID != user {
		return failure.Forbidden("only the renter or the listing owner can cancel a booking") // nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(model.StatusCancelled) {
		return failure.Conflictf("booking in status %s cannot be cancelled", booking.Status) // nolint:wrapcheck
	}

	patch := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	won, err := s.repo.UpdateStatusConditional(ctx, id, booking.Status, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if !won {
		return failure.Conflict("booking status changed, please reload") // nolint:wrapcheck
	}

	s.afterTransition(ctx, booking.ListingID, id, booking.Status.InHonoredSet())

	intent := notification.Intent{
		Kind:      notification.KindCancelled,
		Recipient: booking.RenterID,
		BookingID: id,
		ListingID: booking.ListingID,
	}
	if byRenter {
		intent.Kind = notification.KindCancelledByRenter
		intent.Recipient = listing.OwnerID
	}

	s.dispatch(ctx, intent)

	return nil
}

// RequestAmendment lets the owner propose a change to booking logistics. The
// booking leaves the occupancy and honored sets until the renter responds.
func (s *serviceImpl) RequestAmendment(ctx context.Context, id string, req dto.AmendmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RequestAmendment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	listing, err := s.getListing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	if listing.OwnerID != user {
		return failure.Forbidden("only the listing owner can request an amendment") // nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(model.StatusAmendmentRequested) {
		return failure.Conflictf("booking in status %s cannot be amended", booking.Status) // nolint:wrapcheck
	}

	patch := map[string]any{
		model.FieldStatus:        model.StatusAmendmentRequested,
		model.FieldAmendment:     model.NullAmendment{Amendment: req.ToModel(model.AmendmentByOwner), Valid: true},
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	won, err := s.repo.UpdateStatusConditional(ctx, id, booking.Status, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to request booking amendment")

		return fmt.Errorf("failed to request booking amendment: %w", err)
	}

	if !won {
		return failure.Conflict("booking status changed, please reload") // nolint:wrapcheck
	}

	s.afterTransition(ctx, booking.ListingID, id, booking.Status.InHonoredSet())
	s.dispatch(ctx, notification.Intent{
		Kind:      notification.KindAmendmentRequested,
		Recipient: booking.RenterID,
		BookingID: id,
		ListingID: booking.ListingID,
		Payload:   map[string]string{"message": req.Message},
	})

	return nil
}

// Update is the renter's answer to an amendment request: it applies the new
// logistics, clears the stored amendment, resets the expiry deadline and puts
// the booking back in PENDING for the owner to re-confirm. The total price
// stays frozen at its creation-time value.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.RenterID != user {
		return failure.Forbidden("only the renter can update a booking") // nolint:wrapcheck
	}

	if booking.Status != model.StatusAmendmentRequested {
		return failure.Conflictf("booking in status %s cannot be updated", booking.Status) // nolint:wrapcheck
	}

	start, end, err := req.ParseDates()
	if err != nil {
		return err
	}

	newStart, newEnd := booking.StartDate, booking.EndDate
	if !start.IsZero() {
		newStart = start
	}

	if !end.IsZero() {
		newEnd = end
	}

	if !newEnd.After(newStart) {
		return failure.BadRequestFromString("end_date must be after start_date") // nolint:wrapcheck
	}

	listing, err := s.getListing(ctx, booking.ListingID)
	if err != nil {
		return err
	}

	admissible, err := s.IsAdmissible(ctx, booking.ListingID, newStart, newEnd, id)
	if err != nil {
		return err
	}

	if !admissible {
		return failure.Conflict("booking dates are no longer available") // nolint:wrapcheck
	}

	patch := shared.TransformFields(req, user)
	patch[model.FieldStatus] = model.StatusPending
	patch[model.FieldStartDate] = newStart
	patch[model.FieldEndDate] = newEnd
	patch[model.FieldAmendment] = model.NullAmendment{}
	patch[model.FieldExpiresAt] = s.clock.Now().Add(time.Duration(s.cfg.Booking.ExpiryHours) * time.Hour)

	won, err := s.repo.UpdateStatusConditional(ctx, id, model.StatusAmendmentRequested, patch)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if !won {
		return failure.Conflict("booking status changed, please reload") // nolint:wrapcheck
	}

	s.afterTransition(ctx, booking.ListingID, id, false)
	s.dispatch(ctx, notification.Intent{
		Kind:      notification.KindBookingUpdated,
		Recipient: listing.OwnerID,
		BookingID: id,
		ListingID: booking.ListingID,
	})

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getListing(ctx context.Context, id string) (listingModel.Listing, error) {
	listing, err := s.listingRepo.Get(ctx, shared.FilterByID(id, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get listing")

		return listing, fmt.Errorf("failed to get listing: %w", err)
	}

	if listing.ID == constant.Empty {
		return listing, failure.NotFound("listing") // nolint:wrapcheck
	}

	return listing, nil
}

// dispatch emits a notification intent without blocking or failing the
// transition that produced it.
func (s *serviceImpl) dispatch(ctx context.Context, intent notification.Intent) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.Notify(c, intent); err != nil {
			log.Error().Err(err).Str("kind", string(intent.Kind)).Str("bookingID", intent.BookingID).Msg("failed to emit notification")
		}
	}()
}

// afterTransition refreshes the listing aggregates when the transition
// touched the honored set, and drops the stale cache entries.
func (s *serviceImpl) afterTransition(ctx context.Context, listingID, bookingID string, touchedHonored bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		if touchedHonored {
			if err := s.RecomputeListingStats(c, listingID); err != nil {
				log.Error().Err(err).Str("listingID", listingID).Msg("failed to recompute listing stats")
			}
		}

		if bookingID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
