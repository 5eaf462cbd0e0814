package model

import (
	"slices"
	"studio/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldArtistID       = "artist_id"
	FieldClientID       = "client_id"
	FieldSlotID         = "slot_id"
	FieldValue          = "value"
	FieldDiscountValue  = "discount_value"
	FieldFinalValue     = "final_value"
	FieldCommissionRate = "commission_rate"
	FieldArtistShare    = "artist_share"
	FieldStudioShare    = "studio_share"
	FieldStatus         = "status"
	FieldCouponID       = "coupon_id"
	FieldCouponCode     = "coupon_code"
	FieldSettlementID   = "settlement_id"
	FieldScheduledFor   = "scheduled_for"
	FieldDuration       = "duration"

	CacheKeyGet    = "booking:get"
	CacheKeyGetAll = "booking:gets"

	// ConstraintActiveSlot is the partial unique index allowing one non-cancelled booking per slot.
	ConstraintActiveSlot = "bookings_active_slot_key"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusOpen:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

type Booking struct {
	ID             string          `db:"id"`
	ArtistID       string          `db:"artist_id"`
	ClientID       string          `db:"client_id"`
	SlotID         string          `db:"slot_id"`
	Value          decimal.Decimal `db:"value"`
	DiscountValue  decimal.Decimal `db:"discount_value"`
	FinalValue     decimal.Decimal `db:"final_value"`
	CommissionRate decimal.Decimal `db:"commission_rate"`
	ArtistShare    decimal.Decimal `db:"artist_share"`
	StudioShare    decimal.Decimal `db:"studio_share"`
	Status         Status          `db:"status"`
	CouponID       *string         `db:"coupon_id"`
	CouponCode     *string         `db:"coupon_code"`
	SettlementID   *string         `db:"settlement_id"`
	ScheduledFor   time.Time       `db:"scheduled_for"`
	Duration       int             `db:"duration"`
	model.Metadata
}
