package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"eke/infras/otel"
	"eke/infras/postgres"
	"eke/internal/domains/booking/model"
	"eke/shared/constant"
	gDto "eke/shared/dto"
	"eke/shared/logger"
	gRepo "eke/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStatusConditional(ctx context.Context, id string, expected model.Status, patch map[string]any) (bool, error)
	ConfirmConditional(ctx context.Context, id string, expected model.Status, patch map[string]any) (bool, error)
	ListByListing(ctx context.Context, listingID string, statuses []model.Status) ([]model.Booking, error)
	ListExpired(ctx context.Context, now time.Time) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateStatusConditional applies the patch only while the booking still has
// the expected status. A false return means another writer got there first.
func (repo *repositoryImpl) UpdateStatusConditional(ctx context.Context, id string, expected model.Status, patch map[string]any) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    model.FieldStatus,
				Value:    expected,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return repo.UpdateConditional(ctx, patch, filter)
}

// ConfirmConditional applies the patch only while the booking still has the
// expected status AND no occupying booking overlaps its date range. The
// overlap check and the write run in one statement, so two concurrent
// confirmations over overlapping ranges resolve to exactly one winner.
func (repo *repositoryImpl) ConfirmConditional(ctx context.Context, id string, expected model.Status, patch map[string]any) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ConfirmConditional", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	set := make([]string, 0, len(patch))
	args := map[string]any{
		"id":              id,
		"expected_status": expected,
		"occupied":        model.StatusStrings(model.OccupancySet),
	}

	for col, val := range patch {
		set = append(set, fmt.Sprintf("%s = :%s", col, col))
		args[col] = val
	}

	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s
		WHERE %[1]s.id = :id AND %[1]s.status = :expected_status
		AND NOT EXISTS (
			SELECT 1 FROM %[1]s other
			WHERE other.listing_id = %[1]s.listing_id
			AND other.id <> %[1]s.id
			AND other.status IN (:occupied)
			AND other.start_date <= %[1]s.end_date
			AND %[1]s.start_date <= other.end_date
		)`, model.TableName, strings.Join(set, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	query, inArgs, err := sqlx.Named(query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to bind confirm query (%s): %w", model.EntityName, err)
	}

	query, inArgs, err = sqlx.In(query, inArgs...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to expand confirm query (%s): %w", model.EntityName, err)
	}

	query = repo.db.Write.Rebind(query)

	res, err := repo.db.Write.ExecContext(ctx, query, inArgs...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to confirm booking (%s): %w", model.EntityName, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

// ListByListing returns the listing's bookings in the given statuses,
// unpaged, for overlap checks and aggregate recomputation.
func (repo *repositoryImpl) ListByListing(ctx context.Context, listingID string, statuses []model.Status) ([]model.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldListingID,
				Value:    listingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusStrings(statuses),
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter)
}

// ListExpired returns pending bookings whose expiry deadline has passed.
// The cutoff is strict: a booking expiring exactly at now is still live,
// matching the confirmation deadline guard.
func (repo *repositoryImpl) ListExpired(ctx context.Context, now time.Time) ([]model.Booking, error) {
	return repo.GetAll(ctx, gDto.QueryParams{}, expiredFilter(now))
}

func expiredFilter(now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusPending,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldExpiresAt,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldExpiresAt,
				Value:    now,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}
}
