package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"eke/internal/domains/booking/model"
	"eke/internal/domains/booking/pricing"
	listingModel "eke/internal/domains/listing/model"
	listingService "eke/internal/domains/listing/service"
	"eke/shared"
	"eke/shared/constant"
	"eke/shared/timezone"
)

// ListingStats are the booking-derived aggregates cached on a listing row.
type ListingStats struct {
	BookingCount    int
	TotalEarnings   decimal.Decimal
	AvgEarnings     decimal.Decimal
	AvgDurationDays float64
}

// ComputeListingStats folds the honored bookings of a listing into its
// aggregate stats. The fold is pure and idempotent: feeding it the same set
// twice yields the same result, which is what makes full recomputation
// self-healing after crashes or concurrent writes.
func ComputeListingStats(bookings []model.Booking) ListingStats {
	stats := ListingStats{
		TotalEarnings: decimal.Zero,
		AvgEarnings:   decimal.Zero,
	}

	daySum := 0

	for i := range bookings {
		if !bookings[i].Status.InHonoredSet() {
			continue
		}

		stats.BookingCount++
		stats.TotalEarnings = stats.TotalEarnings.Add(bookings[i].TotalPrice)
		daySum += pricing.DurationDays(bookings[i].StartDate, bookings[i].EndDate)
	}

	if stats.BookingCount > 0 {
		stats.AvgEarnings = stats.TotalEarnings.DivRound(decimal.NewFromInt(int64(stats.BookingCount)), 2)
		stats.AvgDurationDays = float64(daySum) / float64(stats.BookingCount)
	}

	return stats
}

// RecomputeListingStats re-derives the listing's cached aggregates from the
// full honored booking set and writes them back. Always a full fold, never an
// incremental counter update.
func (s *serviceImpl) RecomputeListingStats(ctx context.Context, listingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.RecomputeListingStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.ListByListing(ctx, listingID, model.HonoredSet)
	if err != nil {
		log.Error().Err(err).Msg("failed to list honored bookings")

		return fmt.Errorf("failed to list honored bookings: %w", err)
	}

	stats := ComputeListingStats(bookings)

	patch := map[string]any{
		listingModel.FieldBookingCount:  stats.BookingCount,
		listingModel.FieldTotalEarnings: stats.TotalEarnings,
		listingModel.FieldAvgEarnings:   stats.AvgEarnings,
		listingModel.FieldAvgDuration:   stats.AvgDurationDays,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        constant.SystemActor,
	}

	filter := shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName)

	if err = s.listingRepo.Update(ctx, patch, filter); err != nil {
		log.Error().Err(err).Msg("failed to write listing stats")

		return fmt.Errorf("failed to write listing stats: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if derr := s.cache.Delete(c, shared.BuildCacheKey(listingService.CacheGetListing, listingID)); derr != nil {
			log.Error().Err(derr).Msg("failed to delete listing from cache")
		}

		shared.InvalidateCaches(c, s.cache, listingService.CacheGetAllListing)
	}()

	return nil
}
