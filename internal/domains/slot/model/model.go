package model

import (
	"studio/shared/model"
	"time"
)

const (
	TableName  = "slots"
	EntityName = "slot"

	FieldID        = "id"
	FieldStation   = "station"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldIsActive  = "is_active"

	CacheKeyGet = "slot:get"
)

type Slot struct {
	ID        string    `db:"id"`
	Station   int       `db:"station"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	IsActive  bool      `db:"is_active"`
	model.Metadata
}

// Minutes is the slot length, truncated to whole minutes.
func (s Slot) Minutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}

// BoardEntry is a slot joined with its active booking, if any.
type BoardEntry struct {
	Slot
	BookingID     *string `db:"booking_id"`
	BookingStatus *string `db:"booking_status"`
}

// DisplayStatus is how a slot appears on the schedule board.
type DisplayStatus string

const (
	DisplayAvailable DisplayStatus = "AVAILABLE"
	DisplayReserved  DisplayStatus = "RESERVED"
	DisplayOccupied  DisplayStatus = "OCCUPIED"
)
