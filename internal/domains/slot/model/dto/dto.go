package dto

import (
	"net/http"
	"strconv"
	bookingModel "studio/internal/domains/booking/model"
	"studio/internal/domains/slot/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gModel "studio/shared/model"
	"studio/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	Station   int       `json:"station"    validate:"required,gt=0"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time"   validate:"required,gtfield=StartTime"`
}

func (c *CreateSlotRequest) ToModel(user string) model.Slot {
	return model.Slot{
		ID:        uuid.NewString(),
		Station:   c.Station,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		IsActive:  true,
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}
}

// Criteria narrows slot searches. Zero values mean "no bound".
type Criteria struct {
	Station int
	From    time.Time
	To      time.Time
	Limit   int
}

// FromRequest reads station, from and to (RFC 3339) and limit from the query.
func (c *Criteria) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	if station := query.Get(constant.RequestParamStation); station != constant.Empty {
		value, err := strconv.Atoi(station)
		if err != nil || value <= 0 {
			return failure.BadRequestFromString("station must be a positive number") // nolint:wrapcheck
		}

		c.Station = value
	}

	for param, target := range map[string]*time.Time{
		constant.RequestParamFrom: &c.From,
		constant.RequestParamTo:   &c.To,
	} {
		raw := query.Get(param)
		if raw == constant.Empty {
			continue
		}

		value, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return failure.BadRequestFromString(param + " must be an RFC 3339 timestamp") // nolint:wrapcheck
		}

		*target = value
	}

	if limit, err := strconv.Atoi(query.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		c.Limit = limit
	}

	return nil
}

func (c Criteria) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	if c.Station > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStation,
			Operator: gDto.FilterOperatorEq,
			Value:    c.Station,
			Table:    model.TableName,
		})
	}

	if !c.From.IsZero() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "from",
			Field:    model.FieldStartTime,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    c.From,
			Table:    model.TableName,
		})
	}

	if !c.To.IsZero() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "to",
			Field:    model.FieldEndTime,
			Operator: gDto.FilterOperatorLessEq,
			Value:    c.To,
			Table:    model.TableName,
		})
	}

	return filter
}

type SlotResponse struct {
	ID        string `json:"id"`
	Station   int    `json:"station"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
	gDto.Metadata
}

func (r *SlotResponse) FromModel(model model.Slot) {
	r.ID = model.ID
	r.Station = model.Station
	r.StartTime = timezone.Format(model.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateFormat)
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetSlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func (r *GetSlotsResponse) FromModels(models []model.Slot) {
	r.Slots = make([]SlotResponse, len(models))
	for i, mod := range models {
		r.Slots[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	SlotID    string `json:"slot_id"`
	Available bool   `json:"available"`
}

type BoardSlotResponse struct {
	SlotResponse
	Status    model.DisplayStatus `json:"status"`
	BookingID *string             `json:"booking_id,omitempty"`
}

func (r *BoardSlotResponse) FromModel(entry model.BoardEntry) {
	r.SlotResponse.FromModel(entry.Slot)
	r.BookingID = entry.BookingID
	r.Status = DisplayStatusOf(entry)
}

// DisplayStatusOf maps the active booking of a slot to its board status.
func DisplayStatusOf(entry model.BoardEntry) model.DisplayStatus {
	if entry.BookingStatus == nil {
		return model.DisplayAvailable
	}

	switch bookingModel.Status(*entry.BookingStatus) {
	case bookingModel.StatusOpen:
		return model.DisplayReserved
	case bookingModel.StatusCancelled:
		return model.DisplayAvailable
	default:
		return model.DisplayOccupied
	}
}

type BoardResponse struct {
	Slots []BoardSlotResponse `json:"slots"`
}

func (r *BoardResponse) FromModels(entries []model.BoardEntry) {
	r.Slots = make([]BoardSlotResponse, len(entries))
	for i, entry := range entries {
		r.Slots[i].FromModel(entry)
	}
}
