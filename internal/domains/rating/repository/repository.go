package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"eke/infras/otel"
	"eke/infras/postgres"
	"eke/internal/domains/rating/model"
	gDto "eke/shared/dto"
	gRepo "eke/shared/repository"
)

type Rating interface {
	Insert(ctx context.Context, model model.Rating) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rating, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rating, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ListByListing(ctx context.Context, listingID string) ([]model.Rating, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rating]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rating {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rating](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ListByListing returns every rating for the listing, unpaged, for the
// rating fold.
func (repo *repositoryImpl) ListByListing(ctx context.Context, listingID string) ([]model.Rating, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldListingID,
				Value:    listingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter)
}
