package dto

import (
	"studio/internal/domains/artist/model"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateArtistRequest struct {
	Name           string           `json:"name"            validate:"required,max=120"`
	Plan           model.Plan       `json:"plan"            validate:"required,oneof=GUEST RESIDENT"`
	CommissionRate *decimal.Decimal `json:"commission_rate" validate:"omitempty,rate"`
}

func (c *CreateArtistRequest) ToModel(user string) model.Artist {
	return model.Artist{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Plan:            c.Plan,
		CommissionRate:  c.CommissionRate,
		MonthlyEarnings: decimal.Zero,
		IsActive:        true,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateSettingsRequest carries administrative settings. Monthly earnings are
// not settable here; only bookings and referral bonuses move them.
type UpdateSettingsRequest struct {
	Plan           model.Plan       `db:"plan"            json:"plan"            validate:"omitempty,oneof=GUEST RESIDENT"`
	CommissionRate *decimal.Decimal `db:"commission_rate" json:"commission_rate" validate:"omitempty,rate"`
	IsActive       *bool            `db:"is_active"       json:"is_active"       validate:"omitempty"`
}

func (u UpdateSettingsRequest) IsEmpty() bool {
	return u.Plan == "" && u.CommissionRate == nil && u.IsActive == nil
}

type ArtistResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Plan            model.Plan       `json:"plan"`
	CommissionRate  *decimal.Decimal `json:"commission_rate,omitempty"`
	EffectiveRate   decimal.Decimal  `json:"effective_rate"`
	MonthlyEarnings decimal.Decimal  `json:"monthly_earnings"`
	IsActive        bool             `json:"is_active"`
	gDto.Metadata
}

func (r *ArtistResponse) FromModel(model model.Artist, effectiveRate decimal.Decimal) {
	r.ID = model.ID
	r.Name = model.Name
	r.Plan = model.Plan
	r.CommissionRate = model.CommissionRate
	r.EffectiveRate = effectiveRate
	r.MonthlyEarnings = model.MonthlyEarnings
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}
