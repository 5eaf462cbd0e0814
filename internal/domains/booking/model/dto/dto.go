package dto

import (
	"studio/internal/domains/booking/model"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	ArtistID   string          `json:"artist_id"   validate:"required,uuid"`
	ClientID   string          `json:"client_id"   validate:"omitempty,max=64"`
	SlotID     string          `json:"slot_id"     validate:"required,uuid"`
	Value      decimal.Decimal `json:"value"       validate:"money"`
	CouponCode string          `json:"coupon_code" validate:"omitempty,max=64"`
	Duration   int             `json:"duration"    validate:"omitempty,gt=0"`
}

// Quote is the priced outcome of a booking request, before it is stored.
type Quote struct {
	Value          decimal.Decimal
	DiscountValue  decimal.Decimal
	FinalValue     decimal.Decimal
	CommissionRate decimal.Decimal
	ArtistShare    decimal.Decimal
	StudioShare    decimal.Decimal
	CouponID       *string
	CouponCode     *string
}

func (c *CreateBookingRequest) ToModel(user string, quote Quote, scheduledFor time.Time, duration int, now time.Time) model.Booking {
	return model.Booking{
		ID:             uuid.NewString(),
		ArtistID:       c.ArtistID,
		ClientID:       c.ClientID,
		SlotID:         c.SlotID,
		Value:          quote.Value,
		DiscountValue:  quote.DiscountValue,
		FinalValue:     quote.FinalValue,
		CommissionRate: quote.CommissionRate,
		ArtistShare:    quote.ArtistShare,
		StudioShare:    quote.StudioShare,
		Status:         model.StatusOpen,
		CouponID:       quote.CouponID,
		CouponCode:     quote.CouponCode,
		ScheduledFor:   scheduledFor,
		Duration:       duration,
		Metadata:       gModel.NewMetadata(user, now),
	}
}

type TransitionRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=OPEN CONFIRMED COMPLETED CANCELLED"`
}

// ListRequest filters booking listings. Empty fields are ignored.
type ListRequest struct {
	gDto.QueryParams
	ArtistID string
	ClientID string
	SlotID   string
	Status   model.Status
}

func (l ListRequest) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	fields := []struct {
		field string
		value string
	}{
		{model.FieldArtistID, l.ArtistID},
		{model.FieldClientID, l.ClientID},
		{model.FieldSlotID, l.SlotID},
		{model.FieldStatus, string(l.Status)},
	}

	for _, f := range fields {
		if f.value == constant.Empty {
			continue
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    f.field,
			Operator: gDto.FilterOperatorEq,
			Value:    f.value,
			Table:    model.TableName,
		})
	}

	return filter
}

type BookingResponse struct {
	ID             string          `json:"id"`
	ArtistID       string          `json:"artist_id"`
	ClientID       string          `json:"client_id"`
	SlotID         string          `json:"slot_id"`
	Value          decimal.Decimal `json:"value"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	FinalValue     decimal.Decimal `json:"final_value"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	ArtistShare    decimal.Decimal `json:"artist_share"`
	StudioShare    decimal.Decimal `json:"studio_share"`
	Status         model.Status    `json:"status"`
	CouponID       *string         `json:"coupon_id,omitempty"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	SettlementID   *string         `json:"settlement_id,omitempty"`
	ScheduledFor   string          `json:"scheduled_for"`
	Duration       int             `json:"duration"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ArtistID = model.ArtistID
	r.ClientID = model.ClientID
	r.SlotID = model.SlotID
	r.Value = model.Value
	r.DiscountValue = model.DiscountValue
	r.FinalValue = model.FinalValue
	r.CommissionRate = model.CommissionRate
	r.ArtistShare = model.ArtistShare
	r.StudioShare = model.StudioShare
	r.Status = model.Status
	r.CouponID = model.CouponID
	r.CouponCode = model.CouponCode
	r.SettlementID = model.SettlementID
	r.ScheduledFor = timezone.Format(model.ScheduledFor, constant.DateFormat)
	r.Duration = model.Duration
	r.Metadata.FromModel(model.Metadata)
}

type CreateBookingResponse struct {
	BookingResponse
	CouponRejection string `json:"coupon_rejection,omitempty"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// StatusChangedEvent is published on every transition.
type StatusChangedEvent struct {
	BookingID string       `json:"booking_id"`
	ArtistID  string       `json:"artist_id"`
	From      model.Status `json:"from"`
	To        model.Status `json:"to"`
}
