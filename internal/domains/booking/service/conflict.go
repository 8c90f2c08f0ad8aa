package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"eke/internal/domains/booking/model"
	"eke/shared/constant"
	"eke/shared/failure"
)

// IsAdmissible reports whether [start, end] is free of occupying bookings on
// the listing. Only confirmed bookings occupy dates; pending requests never
// block one another. excludeBookingID lets a booking re-validate a range
// without colliding with itself. Pure read; the authoritative re-check
// happens inside the conditional confirmation write.
func (s *serviceImpl) IsAdmissible(ctx context.Context, listingID string, start, end time.Time, excludeBookingID string) (admissible bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.IsAdmissible")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !end.After(start) {
		return false, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	occupying, err := s.repo.ListByListing(ctx, listingID, model.OccupancySet)
	if err != nil {
		log.Error().Err(err).Msg("failed to list occupying bookings")

		return false, err
	}

	for i := range occupying {
		if occupying[i].ID == excludeBookingID {
			continue
		}

		if occupying[i].Overlaps(start, end) {
			return false, nil
		}
	}

	return true, nil
}
