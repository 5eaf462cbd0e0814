package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Slot=MockSlotService

import (
	"context"
	"fmt"
	"iter"
	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/slot/model"
	"studio/internal/domains/slot/model/dto"
	"studio/internal/domains/slot/repository"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	"studio/shared/failure"

	"github.com/rs/zerolog/log"
)

type Slot interface {
	Create(ctx context.Context, req dto.CreateSlotRequest) (dto.SlotResponse, error)
	Get(ctx context.Context, id string) (dto.SlotResponse, error)
	FindAvailable(ctx context.Context, criteria dto.Criteria) iter.Seq2[model.Slot, error]
	IsAvailable(ctx context.Context, id string) (bool, error)
	Board(ctx context.Context, criteria dto.Criteria) (dto.BoardResponse, error)
}

type serviceImpl struct {
	repo  repository.Slot
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Slot, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create stores a slot. Overlaps with other slots are allowed; exclusivity is
// enforced when a booking binds to the slot.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSlotRequest) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.EndTime.After(req.StartTime) {
		return res, failure.BadRequestFromString("end_time must be after start_time") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot := req.ToModel(user)
	if err = s.repo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to create slot")

		return res, fmt.Errorf("failed to create slot: %w", err)
	}

	res.FromModel(slot)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slot")

		return res, nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return res, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("slot not found") // nolint:wrapcheck
	}

	res.FromModel(slot)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) FindAvailable(ctx context.Context, criteria dto.Criteria) iter.Seq2[model.Slot, error] {
	return s.repo.FindAvailable(ctx, criteria)
}

func (s *serviceImpl) IsAvailable(ctx context.Context, id string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get slot")

		return false, fmt.Errorf("failed to get slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return false, failure.NotFound("slot not found") // nolint:wrapcheck
	}

	if !slot.IsActive {
		return false, nil
	}

	available, err = s.repo.IsAvailable(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}

	return available, nil
}

func (s *serviceImpl) Board(ctx context.Context, criteria dto.Criteria) (res dto.BoardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Board")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !criteria.From.IsZero() && !criteria.To.IsZero() && !criteria.To.After(criteria.From) {
		return res, failure.BadRequestFromString("to must be after from") // nolint:wrapcheck
	}

	entries, err := s.repo.Board(ctx, criteria)
	if err != nil {
		log.Error().Err(err).Msg("failed to load slot board")

		return res, fmt.Errorf("failed to load slot board: %w", err)
	}

	res.FromModels(entries)

	return res, nil
}
