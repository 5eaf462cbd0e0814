// Package commission computes the studio's share of a booking.
//
// All functions are pure: the same plan, earnings and override always yield
// the same rate, and splits always sum back to the final value exactly.
package commission

import (
	"studio/config"
	artistModel "studio/internal/domains/artist/model"
	"studio/shared/constant"

	"github.com/shopspring/decimal"
)

var (
	defaultGuestRate           = decimal.RequireFromString("0.30")
	defaultResidentInitialRate = decimal.RequireFromString("0.30")
	defaultResidentReducedRate = decimal.RequireFromString("0.20")
	defaultResidentThreshold   = decimal.NewFromInt(10000)
)

// Policy holds the tier table. Rates are the studio's share, in [0, 1].
type Policy struct {
	GuestRate           decimal.Decimal
	ResidentInitialRate decimal.Decimal
	ResidentReducedRate decimal.Decimal
	ResidentThreshold   decimal.Decimal
}

// Split is the division of a final value between artist and studio.
type Split struct {
	ArtistShare decimal.Decimal
	StudioShare decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		GuestRate:           defaultGuestRate,
		ResidentInitialRate: defaultResidentInitialRate,
		ResidentReducedRate: defaultResidentReducedRate,
		ResidentThreshold:   defaultResidentThreshold,
	}
}

// NewPolicy builds a Policy from configured values. Rates outside [0, 1] and
// a non-positive threshold fall back to the defaults; a rate of 0 is kept.
func NewPolicy(guestRate, residentInitialRate, residentReducedRate, residentThreshold float64) Policy {
	policy := DefaultPolicy()

	if rate := decimal.NewFromFloat(guestRate); validRate(rate) {
		policy.GuestRate = rate
	}

	if rate := decimal.NewFromFloat(residentInitialRate); validRate(rate) {
		policy.ResidentInitialRate = rate
	}

	if rate := decimal.NewFromFloat(residentReducedRate); validRate(rate) {
		policy.ResidentReducedRate = rate
	}

	if threshold := decimal.NewFromFloat(residentThreshold); threshold.IsPositive() {
		policy.ResidentThreshold = threshold
	}

	return policy
}

// NewPolicyFromConfig reads the tier table from COMMISSION_*.
func NewPolicyFromConfig(cfg *config.Config) Policy {
	return NewPolicy(
		cfg.Commission.GuestRate,
		cfg.Commission.ResidentInitialRate,
		cfg.Commission.ResidentReducedRate,
		cfg.Commission.ResidentThreshold,
	)
}

// Rate returns the studio rate. An override always wins, then the plan tier.
func (p Policy) Rate(plan artistModel.Plan, monthlyEarnings decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}

	if plan == artistModel.PlanGuest {
		return p.GuestRate
	}

	if monthlyEarnings.GreaterThanOrEqual(p.ResidentThreshold) {
		return p.ResidentReducedRate
	}

	return p.ResidentInitialRate
}

// Divide splits finalValue at rate. The studio share is rounded half-even to
// cents and the artist takes the remainder.
func Divide(finalValue, rate decimal.Decimal) Split {
	studioShare := finalValue.Mul(rate).RoundBank(constant.MoneyPrecision)

	return Split{
		ArtistShare: finalValue.Sub(studioShare),
		StudioShare: studioShare,
	}
}

// Discount returns grossValue * percent / 100, rounded half-even to cents.
func Discount(grossValue decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return decimal.Zero
	}

	return grossValue.
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(constant.PercentBase)).
		RoundBank(constant.MoneyPrecision)
}

func validRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(1))
}
