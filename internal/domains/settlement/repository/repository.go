package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/settlement/model"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/logger"
	gRepo "studio/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

type Settlement interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, settlement model.Settlement) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Settlement, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (model.Settlement, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

// Job is the settlement validation queue.
type Job interface {
	EnqueueTx(ctx context.Context, tx *sqlx.Tx, job model.Job) error
	Claim(ctx context.Context, now, leaseUntil time.Time, limit int) ([]model.Job, error)
	MarkDoneTx(ctx context.Context, tx *sqlx.Tx, jobID string, now time.Time) error
	Retry(ctx context.Context, jobID string, nextRunAt time.Time, lastError string) error
	Fail(ctx context.Context, jobID string, lastError string) error
}

type settlementRepository struct {
	gRepo.Repository[model.Settlement]
}

func New(db *postgres.Connection, otel otel.Otel) Settlement {
	return &settlementRepository{
		Repository: gRepo.NewRepository[model.Settlement](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type jobRepository struct {
	gRepo.Repository[model.Job]
	db   *postgres.Connection
	otel otel.Otel
}

func NewJob(db *postgres.Connection, otel otel.Otel) Job {
	return &jobRepository{
		Repository: gRepo.NewRepository[model.Job](model.JobEntityName, model.JobTableName, model.JobFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *jobRepository) EnqueueTx(ctx context.Context, tx *sqlx.Tx, job model.Job) error {
	return r.InsertTx(ctx, tx, job)
}

// Claim leases up to limit due jobs and counts the attempt. Rows locked by
// another worker are skipped; a leased job becomes due again at leaseUntil
// if its worker dies before reporting back.
func (r *jobRepository) Claim(ctx context.Context, now, leaseUntil time.Time, limit int) ([]model.Job, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".settlement_validation_job.Claim")
	defer scope.End()

	query := fmt.Sprintf(
		`UPDATE %[1]s SET %[2]s = %[2]s + 1, %[3]s = :lease_until, %[4]s = :now
		WHERE %[5]s IN (
			SELECT %[5]s FROM %[1]s WHERE %[6]s = :pending AND %[3]s <= :now
			ORDER BY %[3]s LIMIT :limit FOR UPDATE SKIP LOCKED
		) RETURNING %[7]s`,
		model.JobTableName, model.JobFieldAttempts, model.JobFieldNextRunAt, constant.FieldModifiedAt,
		model.JobFieldID, model.JobFieldStatus, r.SelectColumns(),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, r.db.Write, query, map[string]any{
		"lease_until": leaseUntil,
		"now":         now,
		"pending":     model.JobPending,
		"limit":       limit,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to claim validation jobs: %w", err)) // nolint:wrapcheck
	}
	defer rows.Close()

	jobs := []model.Job{}

	for rows.Next() {
		var job model.Job
		if err = rows.StructScan(&job); err != nil {
			scope.TraceError(err)

			return nil, failure.Storage(fmt.Errorf("failed to scan validation job: %w", err)) // nolint:wrapcheck
		}

		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		scope.TraceError(err)

		return nil, failure.Storage(fmt.Errorf("failed to iterate validation jobs: %w", err)) // nolint:wrapcheck
	}

	return jobs, nil
}

func byJobID(jobID string) gDto.FilterGroup {
	return shared.FilterByID(jobID, model.JobFieldID, model.JobTableName)
}

func (r *jobRepository) MarkDoneTx(ctx context.Context, tx *sqlx.Tx, jobID string, now time.Time) error {
	return r.UpdateTx(ctx, tx, map[string]any{
		model.JobFieldStatus:     model.JobDone,
		model.JobFieldLastError:  nil,
		constant.FieldModifiedAt: now,
	}, byJobID(jobID))
}

func (r *jobRepository) Retry(ctx context.Context, jobID string, nextRunAt time.Time, lastError string) error {
	return r.Update(ctx, map[string]any{
		model.JobFieldNextRunAt:  nextRunAt,
		model.JobFieldLastError:  lastError,
		constant.FieldModifiedAt: time.Now(),
	}, byJobID(jobID))
}

func (r *jobRepository) Fail(ctx context.Context, jobID string, lastError string) error {
	return r.Update(ctx, map[string]any{
		model.JobFieldStatus:     model.JobFailed,
		model.JobFieldLastError:  lastError,
		constant.FieldModifiedAt: time.Now(),
	}, byJobID(jobID))
}
