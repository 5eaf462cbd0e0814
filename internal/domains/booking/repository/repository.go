package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/booking/model"
	slotModel "studio/internal/domains/slot/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/logger"
	gRepo "studio/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	ListEligible(ctx context.Context, artistID string, now time.Time) ([]model.Booking, error)
	AttachSettlementTx(ctx context.Context, tx *sqlx.Tx, settlementID, artistID string, bookingIDs []string, now time.Time) (Attached, error)
}

// Attached summarizes the bookings bound to a settlement.
type Attached struct {
	Count       int
	ArtistShare decimal.Decimal
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

// eligibleClause admits completed bookings, and bookings whose slot ended
// before :now unless they were cancelled.
var eligibleClause = fmt.Sprintf(
	"%[1]s.%[2]s = '%[3]s' OR (%[1]s.%[2]s <> '%[4]s' AND EXISTS (SELECT 1 FROM %[5]s WHERE %[5]s.%[6]s = %[1]s.%[7]s AND %[5]s.%[8]s < :now))",
	model.TableName, model.FieldStatus, model.StatusCompleted, model.StatusCancelled,
	slotModel.TableName, slotModel.FieldID, model.FieldSlotID, slotModel.FieldEndTime,
)

func eligibleFilter(artistID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldArtistID,
				Operator: gDto.FilterOperatorEq,
				Value:    artistID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldSettlementID,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    eligibleClause,
			},
		},
	}
}

// attachFilter narrows the eligible bookings of an artist to bookingIDs.
func attachFilter(artistID string, bookingIDs []string) gDto.FilterGroup {
	filter := eligibleFilter(artistID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		ArgName:  "booking_id",
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorIn,
		Value:    bookingIDs,
		Table:    model.TableName,
	})

	return filter
}

// InsertTx stores a booking. The partial unique index on active bookings per
// slot surfaces as SlotConflict.
func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	err := r.Repository.InsertTx(ctx, tx, booking)
	if err == nil {
		return nil
	}

	if postgres.IsUniqueViolation(err, model.ConstraintActiveSlot) {
		return failure.SlotConflict
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) ListEligible(ctx context.Context, artistID string, now time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListEligible")
	defer scope.End()

	where, args := r.BuildWhereClause(eligibleFilter(artistID))
	args["now"] = now

	query := fmt.Sprintf("SELECT %s FROM %s %s ORDER BY %s.%s",
		r.SelectColumns(), model.TableName, where, model.TableName, model.FieldScheduledFor)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to prepare eligible bookings query: %w", err)) // nolint:wrapcheck
	}
	defer prepare.Close()

	bookings := []model.Booking{}
	if err = prepare.SelectContext(ctx, &bookings, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to list eligible bookings: %w", err)) // nolint:wrapcheck
	}

	return bookings, nil
}

// AttachSettlementTx binds the eligible bookings among bookingIDs to the
// settlement and returns how many were bound and their artist share total.
// Callers compare the count against len(bookingIDs).
func (r *repositoryImpl) AttachSettlementTx(
	ctx context.Context,
	tx *sqlx.Tx,
	settlementID, artistID string,
	bookingIDs []string,
	now time.Time,
) (attached Attached, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.AttachSettlementTx")
	defer scope.End()

	attached.ArtistShare = decimal.Zero

	if len(bookingIDs) == 0 {
		return attached, nil
	}

	where, args := r.BuildWhereClause(attachFilter(artistID, bookingIDs))
	args["now"] = now
	args["new_settlement_id"] = settlementID
	args["modified_at"] = now

	query := fmt.Sprintf("UPDATE %s SET %s = :new_settlement_id, %s = :modified_at %s RETURNING %s.%s",
		model.TableName, model.FieldSettlementID, constant.FieldModifiedAt, where, model.TableName, model.FieldArtistShare)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, tx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return attached, failure.Storage(fmt.Errorf("failed to attach bookings: %w", err)) // nolint:wrapcheck
	}
	defer rows.Close()

	for rows.Next() {
		var share decimal.Decimal
		if err = rows.Scan(&share); err != nil {
			scope.TraceError(err)

			return attached, failure.Storage(fmt.Errorf("failed to scan attached booking: %w", err)) // nolint:wrapcheck
		}

		attached.Count++
		attached.ArtistShare = attached.ArtistShare.Add(share)
	}

	if err = rows.Err(); err != nil {
		scope.TraceError(err)

		return attached, failure.Storage(fmt.Errorf("failed to iterate attached bookings: %w", err)) // nolint:wrapcheck
	}

	return attached, nil
}
