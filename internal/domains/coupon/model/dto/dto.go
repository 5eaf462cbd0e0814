package dto

import (
	"strings"
	"studio/internal/domains/coupon/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gModel "studio/shared/model"
	"studio/shared/timezone"
	"time"

	"github.com/google/uuid"
)

// Rejection reasons reported by coupon validation.
const (
	ReasonNotFound    = "not found"
	ReasonInactive    = "used or inactive"
	ReasonExpired     = "expired"
	ReasonWrongArtist = "not valid for this artist"
)

// NormalizeCode is the canonical, case-insensitive form of a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CreateCouponRequest struct {
	Code            string     `json:"code"             validate:"required,max=64"`
	DiscountPercent int        `json:"discount_percent" validate:"required,gt=0,lte=100"`
	ArtistID        *string    `json:"artist_id"        validate:"omitempty,uuid"`
	ExpiresAt       *time.Time `json:"expires_at"       validate:"omitempty"`
}

func (c *CreateCouponRequest) ToModel(user string) model.Coupon {
	return model.Coupon{
		ID:              uuid.NewString(),
		Code:            NormalizeCode(c.Code),
		DiscountPercent: c.DiscountPercent,
		Status:          model.StatusActive,
		ArtistID:        c.ArtistID,
		ExpiresAt:       c.ExpiresAt,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

type ValidateCouponRequest struct {
	Code     string `json:"code"      validate:"required,max=64"`
	ArtistID string `json:"artist_id" validate:"omitempty,uuid"`
}

type RedeemCouponRequest struct {
	UsedByUserID string `json:"used_by_user_id" validate:"required,max=64"`
}

type IssueReferralRequest struct {
	OriginClientID string  `json:"origin_client_id" validate:"required,max=64"`
	ClientName     string  `json:"client_name"      validate:"required,max=120"`
	ArtistID       *string `json:"artist_id"        validate:"omitempty,uuid"`
}

// ValidationResult is the outcome of checking a code. Invalid results carry a
// Reason and are not errors.
type ValidationResult struct {
	Valid           bool    `json:"valid"`
	Code            string  `json:"code"`
	DiscountPercent int     `json:"discount_percent"`
	Reason          string  `json:"reason,omitempty"`
	Lead            bool    `json:"lead"`
	CouponID        string  `json:"coupon_id,omitempty"`
	ArtistID        *string `json:"-"`
}

func Rejected(code, reason string) ValidationResult {
	return ValidationResult{Code: code, Reason: reason}
}

// Failure maps a rejected result to its error.
func (v ValidationResult) Failure() error {
	switch v.Reason {
	case constant.Empty:
		return nil
	case ReasonNotFound:
		return failure.NotFound("coupon not found") // nolint:wrapcheck
	case ReasonInactive:
		return failure.CouponAlreadyUsed
	case ReasonExpired:
		return failure.CouponExpired
	default:
		return failure.BadRequestFromString("coupon " + v.Reason) // nolint:wrapcheck
	}
}

type CouponResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	DiscountPercent int     `json:"discount_percent"`
	Status          string  `json:"status"`
	ArtistID        *string `json:"artist_id,omitempty"`
	OriginClientID  *string `json:"origin_client_id,omitempty"`
	ExpiresAt       string  `json:"expires_at,omitempty"`
	UsedByUserID    *string `json:"used_by_user_id,omitempty"`
	UsedAt          string  `json:"used_at,omitempty"`
	gDto.Metadata
}

func (r *CouponResponse) FromModel(model model.Coupon) {
	r.ID = model.ID
	r.Code = model.Code
	r.DiscountPercent = model.DiscountPercent
	r.Status = string(model.Status)
	r.ArtistID = model.ArtistID
	r.OriginClientID = model.OriginClientID
	r.UsedByUserID = model.UsedByUserID
	r.Metadata.FromModel(model.Metadata)

	if model.ExpiresAt != nil {
		r.ExpiresAt = timezone.Format(*model.ExpiresAt, constant.DateFormat)
	}

	if model.UsedAt != nil {
		r.UsedAt = timezone.Format(*model.UsedAt, constant.DateFormat)
	}
}

type RedeemResponse struct {
	CouponID        string `json:"coupon_id"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	UsedByUserID    string `json:"used_by_user_id"`
	UsedAt          string `json:"used_at"`
}
