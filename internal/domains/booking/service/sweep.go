package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"eke/internal/domains/booking/model"
	"eke/internal/notification"
	"eke/shared"
	"eke/shared/constant"
	"eke/shared/timezone"
)

// Sweep expires every pending booking whose deadline has passed and returns
// the ids it transitioned. Each expiry is a conditional PENDING to EXPIRED
// write, so concurrent sweeps or a racing confirmation resolve cleanly: only
// the writer that wins the row emits the notification, and a booking that
// was confirmed in the meantime is left alone. A failure on one booking is
// logged and the batch continues.
func (s *serviceImpl) Sweep(ctx context.Context, now time.Time) (expired []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".booking.Sweep")
	defer scope.End()
	defer scope.TraceIfError(err)

	candidates, err := s.repo.ListExpired(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired bookings")

		return nil, fmt.Errorf("failed to list expired bookings: %w", err)
	}

	for i := range candidates {
		booking := candidates[i]

		patch := map[string]any{
			model.FieldStatus:        model.StatusExpired,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: constant.SystemActor,
		}

		won, uerr := s.repo.UpdateStatusConditional(ctx, booking.ID, model.StatusPending, patch)
		if uerr != nil {
			log.Error().Err(uerr).Str("bookingID", booking.ID).Msg("failed to expire booking")

			continue
		}

		if !won {
			continue
		}

		expired = append(expired, booking.ID)

		if nerr := s.notifier.Notify(ctx, notification.Intent{
			Kind:      notification.KindExpired,
			Recipient: booking.RenterID,
			BookingID: booking.ID,
			ListingID: booking.ListingID,
		}); nerr != nil {
			log.Error().Err(nerr).Str("bookingID", booking.ID).Msg("failed to emit expiry notification")
		}
	}

	if len(expired) > 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			for _, id := range expired {
				if derr := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); derr != nil {
					log.Error().Err(derr).Str("bookingID", id).Msg("failed to delete booking from cache")
				}
			}

			shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
			shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		}()
	}

	return expired, nil
}
