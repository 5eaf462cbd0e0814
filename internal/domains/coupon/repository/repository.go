package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/coupon/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/logger"
	gRepo "studio/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrCodeTaken     = failure.Conflict("coupon code already exists")
	ErrUnknownArtist = failure.NotFound("artist not found")
)

type Coupon interface {
	Insert(ctx context.Context, coupon model.Coupon) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Coupon, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Coupon, error)
	MarkUsedTx(ctx context.Context, tx *sqlx.Tx, couponID, usedByUserID string, usedAt time.Time) error
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Coupon]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Coupon {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Coupon](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, coupon model.Coupon) error {
	err := r.Repository.Insert(ctx, coupon)
	if postgres.IsUniqueViolation(err, model.ConstraintCode) {
		return ErrCodeTaken
	}

	// coupons.artist_id is the only foreign key on the table.
	if postgres.IsForeignKeyViolation(err) {
		return ErrUnknownArtist
	}

	return err //nolint:wrapcheck
}

// MarkUsedTx moves an ACTIVE coupon to USED. It fails with CouponAlreadyUsed
// when the coupon is no longer ACTIVE, so a code is consumed at most once.
func (r *repositoryImpl) MarkUsedTx(ctx context.Context, tx *sqlx.Tx, couponID, usedByUserID string, usedAt time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".coupon.MarkUsedTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :used, %s = :used_by, %s = :used_at, %s = :used_at, %s = :used_by WHERE %s = :id AND %s = :active",
		model.TableName,
		model.FieldStatus, model.FieldUsedByUserID, model.FieldUsedAt, constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"used":    model.StatusUsed,
		"used_by": usedByUserID,
		"used_at": usedAt,
		"id":      couponID,
		"active":  model.StatusActive,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return failure.Storage(fmt.Errorf("failed to mark coupon used: %w", err)) // nolint:wrapcheck
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return failure.Storage(fmt.Errorf("failed to read affected rows: %w", err)) // nolint:wrapcheck
	}

	if affected == 0 {
		return failure.CouponAlreadyUsed
	}

	return nil
}

// ExpireBefore marks every ACTIVE coupon whose expiry has passed as EXPIRED.
func (r *repositoryImpl) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".coupon.ExpireBefore")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :expired, %s = :now WHERE %s = :active AND %s IS NOT NULL AND %s < :now",
		model.TableName,
		model.FieldStatus, constant.FieldModifiedAt,
		model.FieldStatus, model.FieldExpiresAt, model.FieldExpiresAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, map[string]any{
		"expired": model.StatusExpired,
		"active":  model.StatusActive,
		"now":     now,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, failure.Storage(fmt.Errorf("failed to expire coupons: %w", err)) // nolint:wrapcheck
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, failure.Storage(fmt.Errorf("failed to read affected rows: %w", err)) // nolint:wrapcheck
	}

	return affected, nil
}
