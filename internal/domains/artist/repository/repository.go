package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/artist/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/logger"
	gRepo "studio/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Artist interface {
	Insert(ctx context.Context, artist model.Artist) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Artist, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Artist, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	IncrementEarningsTx(ctx context.Context, tx *sqlx.Tx, artistID string, amount decimal.Decimal, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Artist]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Artist {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Artist](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IncrementEarningsTx adds amount to the artist's monthly earnings with a single
// UPDATE; callers never read-modify-write earnings.
func (r *repositoryImpl) IncrementEarningsTx(ctx context.Context, tx *sqlx.Tx, artistID string, amount decimal.Decimal, at time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".artist.IncrementEarningsTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + :amount, %s = :modified_at WHERE %s = :id",
		model.TableName, model.FieldMonthlyEarnings, model.FieldMonthlyEarnings, constant.FieldModifiedAt, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"amount":      amount,
		"modified_at": at,
		"id":          artistID,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.Storage(fmt.Errorf("failed to increment artist earnings: %w", err)) // nolint:wrapcheck
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return failure.Storage(fmt.Errorf("failed to read affected rows: %w", err)) // nolint:wrapcheck
	}

	if affected == 0 {
		return failure.NotFound("artist not found") // nolint:wrapcheck
	}

	return nil
}
