package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"eke/config"
	"eke/infras/otel"
	listingModel "eke/internal/domains/listing/model"
	listingRepo "eke/internal/domains/listing/repository"
	listingService "eke/internal/domains/listing/service"
	"eke/internal/domains/rating/model"
	"eke/internal/domains/rating/model/dto"
	"eke/internal/domains/rating/repository"
	"eke/shared"
	"eke/shared/cache"
	"eke/shared/constant"
	gDto "eke/shared/dto"
	"eke/shared/failure"
	"eke/shared/timezone"
)

const (
	cacheGetAllRating = "rating:gets"
	cacheCountRating  = "rating:count"
)

type Rating interface {
	Submit(ctx context.Context, req dto.SubmitRatingRequest) (dto.RatingResponse, error)
	GetByListing(ctx context.Context, listingID string, params gDto.QueryParams) (dto.GetRatingsResponse, error)
	RecomputeRatingStats(ctx context.Context, listingID string) error
}

type serviceImpl struct {
	repo        repository.Rating
	listingRepo listingRepo.Listing
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Rating, listingRepo listingRepo.Listing, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Rating {
	return &serviceImpl{
		repo:        repo,
		listingRepo: listingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Submit records a renter's score for a listing and folds the full rating set
// back into the listing's cached average. Multiple ratings from the same
// renter are allowed.
func (s *serviceImpl) Submit(ctx context.Context, req dto.SubmitRatingRequest) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rating.Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	renter, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.listingRepo.Exist(ctx, shared.FilterByID(req.ListingID, listingModel.FieldID, listingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if listing exists")

		return res, fmt.Errorf("failed to check if listing exists: %w", err)
	}

	if !exists {
		return res, failure.NotFound("listing") // nolint:wrapcheck
	}

	rating := req.ToModel(renter)

	if err = s.repo.Insert(ctx, rating); err != nil {
		log.Error().Err(err).Msg("failed to submit rating")

		return res, fmt.Errorf("failed to submit rating: %w", err)
	}

	if err = s.RecomputeRatingStats(ctx, req.ListingID); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
		shared.InvalidateCaches(c, s.cache, cacheCountRating)
	}()

	res.FromModel(rating)

	return res, nil
}

func (s *serviceImpl) GetByListing(ctx context.Context, listingID string, params gDto.QueryParams) (res dto.GetRatingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rating.GetByListing")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(listingID, model.FieldListingID, model.TableName)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRating, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ratings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ratings")

		return res, fmt.Errorf("failed to count ratings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ratings")

		return res, fmt.Errorf("failed to get ratings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ratings to cache")
		}
	}()

	return res, nil
}

// ComputeRatingStats folds a rating set into its count and mean score,
// rounded to two places. Pure and idempotent like the booking stats fold.
func ComputeRatingStats(ratings []model.Rating) (count int, average decimal.Decimal) {
	average = decimal.Zero

	sum := 0
	for i := range ratings {
		sum += ratings[i].Score
	}

	count = len(ratings)
	if count > 0 {
		average = decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(count)), 2)
	}

	return count, average
}

// RecomputeRatingStats re-derives the listing's cached rating average and
// review count from the full rating set and writes them back.
func (s *serviceImpl) RecomputeRatingStats(ctx context.Context, listingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".rating.RecomputeRatingStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	ratings, err := s.repo.ListByListing(ctx, listingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list ratings")

		return fmt.Errorf("failed to list ratings: %w", err)
	}

	count, average := ComputeRatingStats(ratings)

	patch := map[string]any{
		listingModel.FieldRating:      average,
		listingModel.FieldReviewCount: count,
		constant.FieldModifiedAt:      timezone.Now(),
		constant.FieldModifiedBy:      constant.SystemActor,
	}

	filter := shared.FilterByID(listingID, listingModel.FieldID, listingModel.TableName)

	if err = s.listingRepo.Update(ctx, patch, filter); err != nil {
		log.Error().Err(err).Msg("failed to write rating stats")

		return fmt.Errorf("failed to write rating stats: %w", err)
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
