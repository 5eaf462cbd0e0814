package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Settlement=MockSettlementService

import (
	"context"
	"fmt"
	"path"
	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/infras/s3"
	artistModel "studio/internal/domains/artist/model"
	artistRepo "studio/internal/domains/artist/repository"
	bookingModel "studio/internal/domains/booking/model"
	bookingRepo "studio/internal/domains/booking/repository"
	"studio/internal/domains/settlement/model"
	"studio/internal/domains/settlement/model/dto"
	"studio/internal/domains/settlement/repository"
	"studio/internal/domains/settlement/validator"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Settlement interface {
	PendingRevenue(ctx context.Context, artistID string) (dto.PendingRevenueResponse, error)
	Create(ctx context.Context, req dto.CreateSettlementRequest) (dto.SettlementResponse, error)
	Get(ctx context.Context, id string) (dto.SettlementResponse, error)
	Review(ctx context.Context, id string, req dto.ReviewRequest) (dto.SettlementResponse, error)
	UploadProof(ctx context.Context, req dto.UploadProofRequest) (dto.UploadProofResponse, error)
	ClaimJobs(ctx context.Context, limit int) ([]model.Job, error)
	ProcessJob(ctx context.Context, job model.Job) error
}

type serviceImpl struct {
	repo        repository.Settlement
	jobRepo     repository.Job
	bookingRepo bookingRepo.Booking
	artistRepo  artistRepo.Artist
	validator   validator.ProofValidator
	storage     s3.S3
	transactor  postgres.Transactor
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	clock       timezone.Clock
}

func New(
	repo repository.Settlement,
	jobRepo repository.Job,
	bookingRepo bookingRepo.Booking,
	artistRepo artistRepo.Artist,
	validator validator.ProofValidator,
	storage s3.S3,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
) Settlement {
	return &serviceImpl{
		repo:        repo,
		jobRepo:     jobRepo,
		bookingRepo: bookingRepo,
		artistRepo:  artistRepo,
		validator:   validator,
		storage:     storage,
		transactor:  transactor,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		clock:       clock,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) requireArtist(ctx context.Context, artistID string) error {
	exist, err := s.artistRepo.Exist(ctx, shared.FilterByID(artistID, artistModel.FieldID, artistModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check artist")

		return fmt.Errorf("failed to check artist: %w", err)
	}

	if !exist {
		return failure.NotFound("artist not found") // nolint:wrapcheck
	}

	return nil
}

// PendingRevenue lists the bookings an artist could settle right now.
func (s *serviceImpl) PendingRevenue(ctx context.Context, artistID string) (res dto.PendingRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PendingRevenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireArtist(ctx, artistID); err != nil {
		return res, err
	}

	bookings, err := s.bookingRepo.ListEligible(ctx, artistID, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to list eligible bookings")

		return res, fmt.Errorf("failed to list eligible bookings: %w", err)
	}

	res.FromModels(artistID, bookings)

	return res, nil
}

// Create attaches the bookings and stores the settlement with its validation
// job in one transaction. Any booking that is foreign, already settled or not
// yet eligible rolls the whole request back.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSettlementRequest) (res dto.SettlementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	bookingIDs := req.UniqueBookingIDs()

	if err = s.requireArtist(ctx, req.ArtistID); err != nil {
		return res, err
	}

	var settlement model.Settlement

	now := s.clock.Now()

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		id := uuid.NewString()

		attached, err := s.bookingRepo.AttachSettlementTx(ctx, tx, id, req.ArtistID, bookingIDs, now)
		if err != nil {
			log.Error().Err(err).Msg("failed to attach bookings to settlement")

			return fmt.Errorf("failed to attach bookings to settlement: %w", err)
		}

		if attached.Count != len(bookingIDs) {
			return failure.AlreadySettled
		}

		if req.TotalValue != nil && !req.TotalValue.Equal(attached.ArtistShare) {
			return failure.BadRequestFromString(fmt.Sprintf( // nolint:wrapcheck
				"total value %s does not match the artist share %s of the bookings",
				req.TotalValue.StringFixed(constant.MoneyPrecision), attached.ArtistShare.StringFixed(constant.MoneyPrecision),
			))
		}

		if !attached.ArtistShare.IsPositive() {
			return failure.BadRequestFromString("settlement total must be positive") // nolint:wrapcheck
		}

		settlement = req.ToModel(id, user, attached.ArtistShare, now)

		if err = s.repo.InsertTx(ctx, tx, settlement); err != nil {
			log.Error().Err(err).Msg("failed to insert settlement")

			return fmt.Errorf("failed to insert settlement: %w", err)
		}

		job := dto.NewJob(id, user, s.cfg.Settlement.Worker.MaxAttempts, now)
		if err = s.jobRepo.EnqueueTx(ctx, tx, job); err != nil {
			log.Error().Err(err).Msg("failed to enqueue settlement validation")

			return fmt.Errorf("failed to enqueue settlement validation: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(settlement, nil)

	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range bookingIDs {
			if err := s.cache.Delete(c, shared.BuildCacheKey(bookingModel.CacheKeyGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to invalidate booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, bookingModel.CacheKeyGetAll)
	}()

	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.SettlementCreated, kafka.Message{
		Key: settlement.ID,
		Value: kafka.NewEvent(s.cfg.Kafka.Topics.SettlementCreated, now, dto.CreatedEvent{
			SettlementID: settlement.ID,
			ArtistID:     settlement.ArtistID,
			TotalValue:   settlement.TotalValue,
			BookingIDs:   bookingIDs,
		}),
	})

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SettlementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for settlement")

		return res, nil
	}

	settlement, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get settlement")

		return res, fmt.Errorf("failed to get settlement: %w", err)
	}

	if settlement.ID == constant.Empty {
		return res, failure.NotFound("settlement not found") // nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldSettlementID,
				Operator: gDto.FilterOperatorEq,
				Value:    settlement.ID,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get settlement bookings")

		return res, fmt.Errorf("failed to get settlement bookings: %w", err)
	}

	res.FromModel(settlement, bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settlement to cache")
		}
	}()

	return res, nil
}

// Review records a human decision on a settlement still awaiting one.
func (s *serviceImpl) Review(ctx context.Context, id string, req dto.ReviewRequest) (res dto.SettlementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var settlement model.Settlement

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, byID(id))
		if err != nil {
			log.Error().Err(err).Msg("failed to lock settlement")

			return fmt.Errorf("failed to lock settlement: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("settlement not found") // nolint:wrapcheck
		}

		if !locked.Status.Reviewable() {
			return failure.InvalidTransition
		}

		now := s.clock.Now()

		if err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldStatus:        req.Status,
			model.FieldReviewNote:    req.Note,
			model.FieldReviewedBy:    user,
			model.FieldReviewedAt:    now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}, byID(id)); err != nil {
			log.Error().Err(err).Msg("failed to review settlement")

			return fmt.Errorf("failed to review settlement: %w", err)
		}

		settlement = locked
		settlement.Status = req.Status
		settlement.ReviewNote = &req.Note
		settlement.ReviewedBy = &user
		settlement.ReviewedAt = &now
		settlement.ModifiedAt = now
		settlement.ModifiedBy = user

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(settlement, nil)

	s.invalidate(ctx, id)

	return res, nil
}

// UploadProof stores a proof file under a generated name and returns the URL
// to pass as proof_url.
func (s *serviceImpl) UploadProof(ctx context.Context, req dto.UploadProofRequest) (res dto.UploadProofResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadProof")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fileName := uuid.NewString() + path.Ext(req.Proof.Filename)

	url, err := s.storage.UploadFile(ctx, constant.Empty, s.cfg.Settlement.ProofDirectory, req.ProofFile, req.Proof, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload settlement proof")

		return res, fmt.Errorf("failed to upload settlement proof: %w", err)
	}

	res.URL = url
	res.FileName = fileName

	return res, nil
}

// ClaimJobs leases due validation jobs for one worker pass. The lease covers
// a full attempt, after which an unreported job is claimed again.
func (s *serviceImpl) ClaimJobs(ctx context.Context, limit int) (jobs []model.Job, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ClaimJobs")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()
	leaseUntil := now.Add(2 * s.attemptTimeout())

	jobs, err = s.jobRepo.Claim(ctx, now, leaseUntil, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to claim validation jobs")

		return nil, fmt.Errorf("failed to claim validation jobs: %w", err)
	}

	return jobs, nil
}

func (s *serviceImpl) attemptTimeout() time.Duration {
	return time.Duration(s.cfg.Settlement.Worker.TimeoutSeconds) * time.Second
}

// ProcessJob runs one validation attempt. A validator error schedules a retry,
// or fails the job once attempts run out; the settlement then stays PENDING.
// The returned error reports only bookkeeping that could not be written.
func (s *serviceImpl) ProcessJob(ctx context.Context, job model.Job) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessJob")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	settlement, err := s.repo.Get(ctx, byID(job.SettlementID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get settlement for validation")

		return s.retry(ctx, job, err)
	}

	if settlement.ID == constant.Empty || settlement.Status != model.StatusPending {
		log.Warn().Str("settlement", job.SettlementID).Msg("settlement no longer awaits validation")

		return s.apply(ctx, job, nil)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout())
	defer cancel()

	verdict, err := s.validator.Validate(attemptCtx, settlement)
	if err != nil {
		log.Warn().Err(err).Str("settlement", settlement.ID).Int("attempt", job.Attempts).Msg("settlement validation failed")

		return s.retry(ctx, job, err)
	}

	return s.apply(ctx, job, &verdict)
}

func (s *serviceImpl) retry(ctx context.Context, job model.Job, cause error) error {
	if job.Exhausted() {
		log.Error().Err(cause).Str("settlement", job.SettlementID).Msg("settlement validation gave up")

		if err := s.jobRepo.Fail(ctx, job.ID, cause.Error()); err != nil {
			log.Error().Err(err).Msg("failed to mark validation job failed")

			return fmt.Errorf("failed to mark validation job failed: %w", err)
		}

		return nil
	}

	backoff := time.Duration(s.cfg.Settlement.Worker.BackoffSeconds) * time.Second

	if err := s.jobRepo.Retry(ctx, job.ID, job.RetryAt(s.clock.Now(), backoff), cause.Error()); err != nil {
		log.Error().Err(err).Msg("failed to schedule validation retry")

		return fmt.Errorf("failed to schedule validation retry: %w", err)
	}

	return nil
}

// apply records the verdict on a still PENDING settlement and closes the job.
// A nil verdict only closes the job.
func (s *serviceImpl) apply(ctx context.Context, job model.Job, verdict *model.Verdict) error {
	var (
		applied bool
		status  model.Status
	)

	now := s.clock.Now()

	err := s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if verdict != nil {
			settlement, err := s.repo.GetForUpdateTx(ctx, tx, byID(job.SettlementID))
			if err != nil {
				log.Error().Err(err).Msg("failed to lock settlement")

				return fmt.Errorf("failed to lock settlement: %w", err)
			}

			if settlement.Status == model.StatusPending {
				status = verdict.Outcome(s.cfg.Settlement.ApprovalThreshold)

				if err = s.repo.UpdateTx(ctx, tx, map[string]any{
					model.FieldStatus:        status,
					model.FieldConfidence:    verdict.Confidence,
					model.FieldFeedback:      verdict.Feedback,
					model.FieldValidatedAt:   now,
					constant.FieldModifiedAt: now,
				}, byID(settlement.ID)); err != nil {
					log.Error().Err(err).Msg("failed to record settlement validation")

					return fmt.Errorf("failed to record settlement validation: %w", err)
				}

				applied = true
			}
		}

		if err := s.jobRepo.MarkDoneTx(ctx, tx, job.ID, now); err != nil {
			log.Error().Err(err).Msg("failed to complete validation job")

			return fmt.Errorf("failed to complete validation job: %w", err)
		}

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !applied {
		return nil
	}

	log.Info().Str("settlement", job.SettlementID).Str("status", string(status)).Float64("confidence", verdict.Confidence).Msg("settlement validated")

	s.invalidate(ctx, job.SettlementID)

	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.SettlementValidated, kafka.Message{
		Key: job.SettlementID,
		Value: kafka.NewEvent(s.cfg.Kafka.Topics.SettlementValidated, now, dto.ValidatedEvent{
			SettlementID: job.SettlementID,
			Status:       status,
			Confidence:   verdict.Confidence,
			Feedback:     verdict.Feedback,
		}),
	})

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate settlement cache")
		}
	}()
}
