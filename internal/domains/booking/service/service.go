package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/postgres"
	artistModel "studio/internal/domains/artist/model"
	artistRepo "studio/internal/domains/artist/repository"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/repository"
	"studio/internal/domains/commission"
	couponDto "studio/internal/domains/coupon/model/dto"
	couponService "studio/internal/domains/coupon/service"
	slotModel "studio/internal/domains/slot/model"
	slotRepo "studio/internal/domains/slot/repository"
	"studio/shared"
	"studio/shared/cache"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req dto.ListRequest) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Transition(ctx context.Context, id string, req dto.TransitionRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	artistRepo artistRepo.Artist
	slotRepo   slotRepo.Slot
	coupons    couponService.Coupon
	transactor postgres.Transactor
	kafka      kafka.Client
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	clock      timezone.Clock
	policy     commission.Policy
}

func New(
	repo repository.Booking,
	artistRepo artistRepo.Artist,
	slotRepo slotRepo.Slot,
	coupons couponService.Coupon,
	transactor postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock timezone.Clock,
	policy commission.Policy,
) Booking {
	return &serviceImpl{
		repo:       repo,
		artistRepo: artistRepo,
		slotRepo:   slotRepo,
		coupons:    coupons,
		transactor: transactor,
		kafka:      kafka,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		clock:      clock,
		policy:     policy,
	}
}

// Create books a slot. Artist, slot and coupon are locked in that order, and
// the booking, the coupon redemption and the earnings credit commit together.
// A coupon that does not validate is skipped and reported in CouponRejection.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.ClientID == constant.Empty {
		req.ClientID = user
	}

	if req.ClientID == constant.Empty {
		return res, failure.BadRequestFromString("client is required") // nolint:wrapcheck
	}

	minimum := decimal.NewFromFloat(s.cfg.Booking.MinimumValue)
	if req.Value.LessThan(minimum) {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking value must be at least %s", minimum.StringFixed(constant.MoneyPrecision))) // nolint:wrapcheck
	}

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		res.CouponRejection = constant.Empty

		artist, err := s.lockArtist(ctx, tx, req.ArtistID)
		if err != nil {
			return err
		}

		slot, err := s.lockSlot(ctx, tx, req.SlotID)
		if err != nil {
			return err
		}

		coupon, err := s.resolveCoupon(ctx, tx, req.CouponCode, artist.ID)
		if err != nil {
			return err
		}

		if !coupon.Valid && req.CouponCode != constant.Empty {
			res.CouponRejection = coupon.Reason

			log.Warn().Str("code", coupon.Code).Str("reason", coupon.Reason).Msg("coupon skipped for booking")
		}

		quote := s.quote(req.Value, artist, coupon)

		duration := req.Duration
		if duration == 0 {
			duration = slot.Minutes()
		}

		booking = req.ToModel(user, quote, slot.StartTime, duration, s.clock.Now())

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			log.Error().Err(err).Msg("failed to insert booking")

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if coupon.Valid && !coupon.Lead {
			if err = s.coupons.RedeemTx(ctx, tx, coupon, req.ClientID); err != nil {
				log.Error().Err(err).Msg("failed to redeem coupon for booking")

				return fmt.Errorf("failed to redeem coupon for booking: %w", err)
			}
		}

		if err = s.artistRepo.IncrementEarningsTx(ctx, tx, artist.ID, booking.ArtistShare, booking.CreatedAt); err != nil {
			log.Error().Err(err).Msg("failed to credit artist earnings")

			return fmt.Errorf("failed to credit artist earnings: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(artistModel.CacheKeyGet, booking.ArtistID)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate artist cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyGetAll)
	}()

	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.BookingCreated, kafka.Message{
		Key:   booking.ID,
		Value: kafka.NewEvent(s.cfg.Kafka.Topics.BookingCreated, s.clock.Now(), res.BookingResponse),
	})

	return res, nil
}

func (s *serviceImpl) lockArtist(ctx context.Context, tx *sqlx.Tx, id string) (artistModel.Artist, error) {
	artist, err := s.artistRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, artistModel.FieldID, artistModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock artist")

		return artist, fmt.Errorf("failed to lock artist: %w", err)
	}

	if artist.ID == constant.Empty {
		return artist, failure.NotFound("artist not found") // nolint:wrapcheck
	}

	if !artist.IsActive {
		return artist, failure.BadRequestFromString("artist is inactive") // nolint:wrapcheck
	}

	return artist, nil
}

func (s *serviceImpl) lockSlot(ctx context.Context, tx *sqlx.Tx, id string) (slotModel.Slot, error) {
	slot, err := s.slotRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, slotModel.FieldID, slotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock slot")

		return slot, fmt.Errorf("failed to lock slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return slot, failure.NotFound("slot not found") // nolint:wrapcheck
	}

	if !slot.IsActive {
		return slot, failure.SlotConflict
	}

	available, err := s.slotRepo.IsAvailableTx(ctx, tx, slot.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return slot, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if !available {
		return slot, failure.SlotConflict
	}

	return slot, nil
}

func (s *serviceImpl) resolveCoupon(ctx context.Context, tx *sqlx.Tx, code, artistID string) (couponDto.ValidationResult, error) {
	if code == constant.Empty {
		return couponDto.ValidationResult{}, nil
	}

	result, err := s.coupons.ResolveTx(ctx, tx, code, artistID)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve coupon")

		return result, fmt.Errorf("failed to resolve coupon: %w", err)
	}

	return result, nil
}

// quote prices the booking with the artist's state as locked.
func (s *serviceImpl) quote(value decimal.Decimal, artist artistModel.Artist, coupon couponDto.ValidationResult) dto.Quote {
	quote := dto.Quote{
		Value:         value,
		DiscountValue: decimal.Zero,
	}

	if coupon.Valid {
		quote.DiscountValue = commission.Discount(value, coupon.DiscountPercent)
		quote.CouponCode = &coupon.Code

		if coupon.CouponID != constant.Empty {
			quote.CouponID = &coupon.CouponID
		}
	}

	quote.FinalValue = value.Sub(quote.DiscountValue)
	quote.CommissionRate = s.policy.Rate(artist.Plan, artist.MonthlyEarnings, artist.CommissionRate)

	split := commission.Divide(quote.FinalValue, quote.CommissionRate)
	quote.ArtistShare = split.ArtistShare
	quote.StudioShare = split.StudioShare

	return quote
}

func (s *serviceImpl) GetAll(ctx context.Context, req dto.ListRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := req.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheKeyGetAll, req.QueryParams, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req.QueryParams, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheKeyGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Transition moves a booking along the status table. Cancelling does not
// reverse the earnings credited at creation.
func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.TransitionRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking  model.Booking
		previous model.Status
	)

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if locked.Status.IsTerminal() {
			return fmt.Errorf("booking is already %s: %w", locked.Status, failure.InvalidTransition)
		}

		if !locked.Status.CanTransitionTo(req.Status) {
			return fmt.Errorf("cannot move booking from %s to %s: %w", locked.Status, req.Status, failure.InvalidTransition)
		}

		now := s.clock.Now()
		fields := map[string]any{
			model.FieldStatus:        req.Status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}

		previous = locked.Status
		booking = locked
		booking.Status = req.Status
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate booking cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyGetAll)
	}()

	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.BookingStatusChanged, kafka.Message{
		Key: booking.ID,
		Value: kafka.NewEvent(s.cfg.Kafka.Topics.BookingStatusChanged, s.clock.Now(), dto.StatusChangedEvent{
			BookingID: booking.ID,
			ArtistID:  booking.ArtistID,
			From:      previous,
			To:        booking.Status,
		}),
	})

	return res, nil
}
