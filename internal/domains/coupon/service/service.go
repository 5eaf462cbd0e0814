package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Coupon=MockCouponService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"studio/config"
	"studio/infras/otel"
	"studio/infras/postgres"
	artistModel "studio/internal/domains/artist/model"
	artistRepo "studio/internal/domains/artist/repository"
	"studio/internal/domains/coupon/model"
	"studio/internal/domains/coupon/model/dto"
	"studio/internal/domains/coupon/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gModel "studio/shared/model"
	"studio/shared/timezone"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	referralSuffixLength = 3
	referralMaxAttempts  = 3
	referralFallbackName = "CLIENT"
)

type Coupon interface {
	Create(ctx context.Context, req dto.CreateCouponRequest) (dto.CouponResponse, error)
	Validate(ctx context.Context, code, scopeArtistID string) (dto.ValidationResult, error)
	ResolveTx(ctx context.Context, tx *sqlx.Tx, code, scopeArtistID string) (dto.ValidationResult, error)
	Redeem(ctx context.Context, couponID, usedByUserID string) (dto.RedeemResponse, error)
	RedeemTx(ctx context.Context, tx *sqlx.Tx, result dto.ValidationResult, usedByUserID string) error
	IssueReferral(ctx context.Context, req dto.IssueReferralRequest) (dto.CouponResponse, error)
	Expire(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo       repository.Coupon
	artistRepo artistRepo.Artist
	transactor postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
	clock      timezone.Clock
}

func New(
	repo repository.Coupon,
	artistRepo artistRepo.Artist,
	transactor postgres.Transactor,
	cfg *config.Config,
	otel otel.Otel,
	clock timezone.Clock,
) Coupon {
	return &serviceImpl{
		repo:       repo,
		artistRepo: artistRepo,
		transactor: transactor,
		cfg:        cfg,
		otel:       otel,
		clock:      clock,
	}
}

func filterByCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) isLead(code string) bool {
	prefix := dto.NormalizeCode(s.cfg.Coupon.LeadPrefix)

	return prefix != constant.Empty && strings.HasPrefix(code, prefix)
}

func (s *serviceImpl) lead(code string) dto.ValidationResult {
	return dto.ValidationResult{
		Valid:           true,
		Code:            code,
		DiscountPercent: s.cfg.Coupon.LeadDiscountPercent,
		Lead:            true,
	}
}

// check applies the rules in order: status, expiry, artist scope. A coupon
// swept to EXPIRED reads the same as one whose expiry has just passed.
func (s *serviceImpl) check(coupon model.Coupon, scopeArtistID string) dto.ValidationResult {
	if coupon.ID == constant.Empty {
		return dto.Rejected(coupon.Code, dto.ReasonNotFound)
	}

	switch coupon.Status {
	case model.StatusActive:
	case model.StatusExpired:
		return dto.Rejected(coupon.Code, dto.ReasonExpired)
	default:
		return dto.Rejected(coupon.Code, dto.ReasonInactive)
	}

	if coupon.IsExpired(s.clock.Now()) {
		return dto.Rejected(coupon.Code, dto.ReasonExpired)
	}

	if scopeArtistID != constant.Empty && coupon.IsReferral() && *coupon.ArtistID != scopeArtistID {
		return dto.Rejected(coupon.Code, dto.ReasonWrongArtist)
	}

	return dto.ValidationResult{
		Valid:           true,
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		CouponID:        coupon.ID,
		ArtistID:        coupon.ArtistID,
	}
}

func byCouponID(couponID string) gDto.FilterGroup {
	return shared.FilterByID(couponID, model.FieldID, model.TableName)
}

// ensureArtist rejects coupons scoped to an artist that does not exist.
func (s *serviceImpl) ensureArtist(ctx context.Context, artistID *string) error {
	if artistID == nil || *artistID == constant.Empty {
		return nil
	}

	exist, err := s.artistRepo.Exist(ctx, shared.FilterByID(*artistID, artistModel.FieldID, artistModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("artist", *artistID).Msg("failed to check coupon artist")

		return fmt.Errorf("failed to check coupon artist: %w", err)
	}

	if !exist {
		return repository.ErrUnknownArtist
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCouponRequest) (res dto.CouponResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	coupon := req.ToModel(user)
	if s.isLead(coupon.Code) {
		return res, failure.BadRequestFromString("coupon code uses a reserved prefix") // nolint:wrapcheck
	}

	if err = s.ensureArtist(ctx, coupon.ArtistID); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, coupon); err != nil {
		log.Error().Err(err).Msg("failed to create coupon")

		return res, fmt.Errorf("failed to create coupon: %w", err)
	}

	res.FromModel(coupon)

	return res, nil
}

// Validate checks a code without reserving it. A non-empty scopeArtistID
// enforces artist-scoped coupons.
func (s *serviceImpl) Validate(ctx context.Context, code, scopeArtistID string) (res dto.ValidationResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code = dto.NormalizeCode(code)
	if s.isLead(code) {
		return s.lead(code), nil
	}

	coupon, err := s.repo.Get(ctx, filterByCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get coupon")

		return res, fmt.Errorf("failed to get coupon: %w", err)
	}

	if coupon.ID == constant.Empty {
		coupon.Code = code
	}

	return s.check(coupon, scopeArtistID), nil
}

// ResolveTx is Validate under a row lock held until tx ends, so the coupon
// cannot be consumed by another transaction before RedeemTx.
func (s *serviceImpl) ResolveTx(ctx context.Context, tx *sqlx.Tx, code, scopeArtistID string) (res dto.ValidationResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code = dto.NormalizeCode(code)
	if s.isLead(code) {
		return s.lead(code), nil
	}

	coupon, err := s.repo.GetForUpdateTx(ctx, tx, filterByCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock coupon")

		return res, fmt.Errorf("failed to lock coupon: %w", err)
	}

	if coupon.ID == constant.Empty {
		coupon.Code = code
	}

	return s.check(coupon, scopeArtistID), nil
}

// RedeemTx consumes a resolved coupon and credits the referral bonus, if any.
// Lead codes are never persisted, so there is nothing to consume.
func (s *serviceImpl) RedeemTx(ctx context.Context, tx *sqlx.Tx, result dto.ValidationResult, usedByUserID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RedeemTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !result.Valid || result.Lead {
		return nil
	}

	if err = s.repo.MarkUsedTx(ctx, tx, result.CouponID, usedByUserID, s.clock.Now()); err != nil {
		log.Error().Err(err).Str("coupon", result.Code).Msg("failed to redeem coupon")

		return fmt.Errorf("failed to redeem coupon: %w", err)
	}

	bonus := decimal.NewFromFloat(s.cfg.Coupon.ReferralBonus)
	if result.ArtistID == nil || !bonus.IsPositive() {
		return nil
	}

	if err = s.artistRepo.IncrementEarningsTx(ctx, tx, *result.ArtistID, bonus, s.clock.Now()); err != nil {
		log.Error().Err(err).Str("artist", *result.ArtistID).Msg("failed to credit referral bonus")

		return fmt.Errorf("failed to credit referral bonus: %w", err)
	}

	return nil
}

func (s *serviceImpl) Redeem(ctx context.Context, couponID, usedByUserID string) (res dto.RedeemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Redeem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	// Artist before coupon, as in booking creation. The unlocked read only
	// finds the referral artist; the locked row is checked again below.
	peek, err := s.repo.Get(ctx, byCouponID(couponID))
	if err != nil {
		log.Error().Err(err).Str("coupon", couponID).Msg("failed to get coupon")

		return res, fmt.Errorf("failed to get coupon: %w", err)
	}

	if peek.ID == constant.Empty {
		return res, s.check(peek, constant.Empty).Failure()
	}

	err = s.transactor.WithTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if peek.IsReferral() {
			artistFilter := shared.FilterByID(*peek.ArtistID, artistModel.FieldID, artistModel.TableName)
			if _, err := s.artistRepo.GetForUpdateTx(ctx, tx, artistFilter); err != nil {
				return fmt.Errorf("failed to lock referral artist: %w", err)
			}
		}

		coupon, err := s.repo.GetForUpdateTx(ctx, tx, byCouponID(couponID))
		if err != nil {
			return fmt.Errorf("failed to lock coupon: %w", err)
		}

		result := s.check(coupon, constant.Empty)
		if !result.Valid {
			return result.Failure()
		}

		if err := s.RedeemTx(ctx, tx, result, usedByUserID); err != nil {
			return err
		}

		res = dto.RedeemResponse{
			CouponID:        coupon.ID,
			Code:            coupon.Code,
			DiscountPercent: coupon.DiscountPercent,
			UsedByUserID:    usedByUserID,
			UsedAt:          timezone.Format(s.clock.Now(), constant.DateFormat),
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("coupon", couponID).Msg("failed to redeem coupon")

		return res, err //nolint:wrapcheck
	}

	return res, nil
}

// IssueReferral returns the client's active referral coupon, creating one when
// none exists. Codes look like <PREFIX>-<FIRSTNAME>-<XYZ>.
func (s *serviceImpl) IssueReferral(ctx context.Context, req dto.IssueReferralRequest) (res dto.CouponResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IssueReferral")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOriginClientID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.OriginClientID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusActive,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to look up referral coupon")

		return res, fmt.Errorf("failed to look up referral coupon: %w", err)
	}

	if existing.ID != constant.Empty {
		res.FromModel(existing)

		return res, nil
	}

	if err = s.ensureArtist(ctx, req.ArtistID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	origin := req.OriginClientID

	for range referralMaxAttempts {
		coupon := model.Coupon{
			ID:              uuid.NewString(),
			Code:            s.referralCode(req.ClientName),
			DiscountPercent: s.cfg.Coupon.ReferralDiscountPercent,
			Status:          model.StatusActive,
			ArtistID:        req.ArtistID,
			OriginClientID:  &origin,
			Metadata:        gModel.NewMetadata(user, s.clock.Now()),
		}

		err = s.repo.Insert(ctx, coupon)
		if err == nil {
			res.FromModel(coupon)

			return res, nil
		}

		if !errors.Is(err, repository.ErrCodeTaken) {
			log.Error().Err(err).Msg("failed to issue referral coupon")

			return res, fmt.Errorf("failed to issue referral coupon: %w", err)
		}

		log.Warn().Str("code", coupon.Code).Msg("referral code collision, retrying")
	}

	return res, failure.Conflict("could not allocate a unique referral code") // nolint:wrapcheck
}

func (s *serviceImpl) referralCode(clientName string) string {
	firstName := referralFallbackName

	if fields := strings.Fields(clientName); len(fields) > 0 {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToUpper(r)
			}

			return -1
		}, fields[0])

		if cleaned != constant.Empty {
			firstName = cleaned
		}
	}

	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:referralSuffixLength]

	return dto.NormalizeCode(fmt.Sprintf("%s-%s-%s", s.cfg.Coupon.ReferralPrefix, firstName, suffix))
}

// Expire marks ACTIVE coupons past their expiry as EXPIRED.
func (s *serviceImpl) Expire(ctx context.Context) (expired int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Expire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	expired, err = s.repo.ExpireBefore(ctx, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to expire coupons")

		return 0, fmt.Errorf("failed to expire coupons: %w", err)
	}

	if expired > 0 {
		log.Info().Int64("count", expired).Msg("expired coupons")
	}

	return expired, nil
}
