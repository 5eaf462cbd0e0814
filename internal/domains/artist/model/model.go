package model

import (
	"studio/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "artists"
	EntityName = "artist"

	FieldID              = "id"
	FieldName            = "name"
	FieldPlan            = "plan"
	FieldCommissionRate  = "commission_rate"
	FieldMonthlyEarnings = "monthly_earnings"
	FieldIsActive        = "is_active"

	CacheKeyGet = "artist:get"
)

type Plan string

const (
	PlanGuest    Plan = "GUEST"
	PlanResident Plan = "RESIDENT"
)

func (p Plan) Valid() bool {
	return p == PlanGuest || p == PlanResident
}

type Artist struct {
	ID              string           `db:"id"`
	Name            string           `db:"name"`
	Plan            Plan             `db:"plan"`
	CommissionRate  *decimal.Decimal `db:"commission_rate"`
	MonthlyEarnings decimal.Decimal  `db:"monthly_earnings"`
	IsActive        bool             `db:"is_active"`
	model.Metadata
}
