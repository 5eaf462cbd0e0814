package model

import (
	"studio/shared/model"
	"time"
)

const (
	TableName  = "coupons"
	EntityName = "coupon"

	FieldID              = "id"
	FieldCode            = "code"
	FieldDiscountPercent = "discount_percent"
	FieldStatus          = "status"
	FieldArtistID        = "artist_id"
	FieldOriginClientID  = "origin_client_id"
	FieldExpiresAt       = "expires_at"
	FieldUsedByUserID    = "used_by_user_id"
	FieldUsedAt          = "used_at"

	ConstraintCode = "coupons_code_key"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusUsed    Status = "USED"
	StatusExpired Status = "EXPIRED"
)

type Coupon struct {
	ID              string     `db:"id"`
	Code            string     `db:"code"`
	DiscountPercent int        `db:"discount_percent"`
	Status          Status     `db:"status"`
	ArtistID        *string    `db:"artist_id"`
	OriginClientID  *string    `db:"origin_client_id"`
	ExpiresAt       *time.Time `db:"expires_at"`
	UsedByUserID    *string    `db:"used_by_user_id"`
	UsedAt          *time.Time `db:"used_at"`
	model.Metadata
}

// IsExpired reports whether the coupon's expiry has passed at now, whatever its stored status.
func (c Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsReferral reports whether redemption credits an artist.
func (c Coupon) IsReferral() bool {
	return c.ArtistID != nil && *c.ArtistID != ""
}
