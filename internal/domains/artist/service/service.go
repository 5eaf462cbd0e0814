package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Artist=MockArtistService

import (
	"context"
	"fmt"
	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/artist/model"
	"studio/internal/domains/artist/model/dto"
	"studio/internal/domains/artist/repository"
	"studio/internal/domains/commission"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	"studio/shared/failure"

	"github.com/rs/zerolog/log"
)

type Artist interface {
	Create(ctx context.Context, req dto.CreateArtistRequest) (dto.ArtistResponse, error)
	Get(ctx context.Context, id string) (dto.ArtistResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, id string) error
}

type serviceImpl struct {
	repo   repository.Artist
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	policy commission.Policy
}

func New(repo repository.Artist, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, policy commission.Policy) Artist {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		policy: policy,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateArtistRequest) (res dto.ArtistResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	artist := req.ToModel(user)
	if err = s.repo.Insert(ctx, artist); err != nil {
		log.Error().Err(err).Msg("failed to create artist")

		return res, fmt.Errorf("failed to create artist: %w", err)
	}

	res.FromModel(artist, s.policy.Rate(artist.Plan, artist.MonthlyEarnings, artist.CommissionRate))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ArtistResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for artist")

		return res, nil
	}

	artist, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get artist")

		return res, fmt.Errorf("failed to get artist: %w", err)
	}

	if artist.ID == constant.Empty {
		return res, failure.NotFound("artist not found") // nolint:wrapcheck
	}

	res.FromModel(artist, s.policy.Rate(artist.Plan, artist.MonthlyEarnings, artist.CommissionRate))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save artist to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if artist exists")

		return fmt.Errorf("failed to check if artist exists: %w", err)
	}

	if !exist {
		return failure.NotFound("artist not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update artist settings")

		return fmt.Errorf("failed to update artist settings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete artist cache")
		}
	}()

	return nil
}
