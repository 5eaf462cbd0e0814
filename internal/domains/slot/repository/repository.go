package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"studio/infras/otel"
	"studio/infras/postgres"
	bookingModel "studio/internal/domains/booking/model"
	"studio/internal/domains/slot/model"
	"studio/internal/domains/slot/model/dto"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/logger"
	gRepo "studio/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Slot interface {
	Insert(ctx context.Context, slot model.Slot) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Slot, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Slot, error)
	FindAvailable(ctx context.Context, criteria dto.Criteria) iter.Seq2[model.Slot, error]
	IsAvailable(ctx context.Context, slotID string) (bool, error)
	IsAvailableTx(ctx context.Context, tx *sqlx.Tx, slotID string) (bool, error)
	Board(ctx context.Context, criteria dto.Criteria) ([]model.BoardEntry, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Slot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Slot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Slot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// activeBookingJoin matches the booking that currently holds a slot.
var activeBookingJoin = fmt.Sprintf(
	"%s.%s = %s.%s AND %s.%s <> '%s'",
	bookingModel.TableName, bookingModel.FieldSlotID, model.TableName, model.FieldID,
	bookingModel.TableName, bookingModel.FieldStatus, bookingModel.StatusCancelled,
)

// FindAvailable streams active slots without an active booking, ordered by start time.
// The query runs on the first range; the sequence is single-use.
func (r *repositoryImpl) FindAvailable(ctx context.Context, criteria dto.Criteria) iter.Seq2[model.Slot, error] {
	consumed := false

	return func(yield func(model.Slot, error) bool) {
		if consumed {
			return
		}

		consumed = true

		ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.FindAvailable")
		defer scope.End()

		filter := criteria.Filter()
		filter.Filters = append(filter.Filters, gDto.Filter{
			Operator: gDto.FilterNotExists,
			Value:    fmt.Sprintf("SELECT 1 FROM %s WHERE %s", bookingModel.TableName, activeBookingJoin),
		})

		where, args := r.BuildWhereClause(filter)

		var sb strings.Builder
		fmt.Fprintf(&sb, "SELECT %s FROM %s %s ORDER BY %s.%s, %s.%s",
			r.SelectColumns(), model.TableName, where, model.TableName, model.FieldStartTime, model.TableName, model.FieldStation)

		if criteria.Limit > 0 {
			args["limit"] = criteria.Limit

			sb.WriteString(" LIMIT :limit")
		}

		query := sb.String()
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		rows, err := r.db.Read.NamedQueryContext(ctx, query, args)
		if err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			yield(model.Slot{}, failure.Storage(fmt.Errorf("failed to find available slots: %w", err)))

			return
		}
		defer rows.Close()

		for rows.Next() {
			var slot model.Slot
			if err := rows.StructScan(&slot); err != nil {
				scope.TraceError(err)

				yield(model.Slot{}, failure.Storage(fmt.Errorf("failed to scan slot: %w", err)))

				return
			}

			if !yield(slot, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			scope.TraceError(err)

			yield(model.Slot{}, failure.Storage(fmt.Errorf("failed to iterate slots: %w", err)))
		}
	}
}

func (r *repositoryImpl) isAvailable(ctx context.Context, db sqlx.QueryerContext, slotID string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.isAvailable")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT NOT EXISTS (SELECT 1 FROM %s WHERE %s.%s = $1 AND %s.%s <> '%s')",
		bookingModel.TableName,
		bookingModel.TableName, bookingModel.FieldSlotID,
		bookingModel.TableName, bookingModel.FieldStatus, bookingModel.StatusCancelled,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var available bool
	if err := sqlx.GetContext(ctx, db, &available, query, slotID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, failure.Storage(fmt.Errorf("failed to check slot availability: %w", err)) // nolint:wrapcheck
	}

	return available, nil
}

func (r *repositoryImpl) IsAvailable(ctx context.Context, slotID string) (bool, error) {
	return r.isAvailable(ctx, r.db.Read, slotID)
}

func (r *repositoryImpl) IsAvailableTx(ctx context.Context, tx *sqlx.Tx, slotID string) (bool, error) {
	return r.isAvailable(ctx, tx, slotID)
}

// Board lists slots in the window together with the booking holding each of them.
func (r *repositoryImpl) Board(ctx context.Context, criteria dto.Criteria) ([]model.BoardEntry, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".slot.Board")
	defer scope.End()

	where, args := r.BuildWhereClause(criteria.Filter())

	query := fmt.Sprintf(
		"SELECT %s, %s.%s AS booking_id, %s.%s AS booking_status FROM %s LEFT JOIN %s ON %s %s ORDER BY %s.%s, %s.%s",
		r.SelectColumns(),
		bookingModel.TableName, bookingModel.FieldID,
		bookingModel.TableName, bookingModel.FieldStatus,
		model.TableName, bookingModel.TableName, activeBookingJoin,
		where,
		model.TableName, model.FieldStation, model.TableName, model.FieldStartTime,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := r.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to prepare board query: %w", err)) // nolint:wrapcheck
	}
	defer prepare.Close()

	var entries []model.BoardEntry
	if err = prepare.SelectContext(ctx, &entries, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to load board: %w", err)) // nolint:wrapcheck
	}

	return entries, nil
}
