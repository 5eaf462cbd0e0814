package dto

import (
	"mime/multipart"
	bookingModel "studio/internal/domains/booking/model"
	bookingDto "studio/internal/domains/booking/model/dto"
	"studio/internal/domains/settlement/model"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	gModel "studio/shared/model"
	"studio/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSettlementRequest struct {
	ArtistID   string           `json:"artist_id"   validate:"required,uuid"`
	BookingIDs []string         `json:"booking_ids" validate:"required,min=1,dive,uuid"`
	TotalValue *decimal.Decimal `json:"total_value" validate:"omitempty,money"`
	ProofURL   string           `json:"proof_url"   validate:"required,url"`
}

// UniqueBookingIDs drops repeated identifiers, keeping the first occurrence.
func (c CreateSettlementRequest) UniqueBookingIDs() []string {
	seen := make(map[string]struct{}, len(c.BookingIDs))
	ids := make([]string, 0, len(c.BookingIDs))

	for _, id := range c.BookingIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}

func (c CreateSettlementRequest) ToModel(id, user string, total decimal.Decimal, now time.Time) model.Settlement {
	return model.Settlement{
		ID:         id,
		ArtistID:   c.ArtistID,
		TotalValue: total,
		Status:     model.StatusPending,
		ProofURL:   c.ProofURL,
		Metadata:   gModel.NewMetadata(user, now),
	}
}

// NewJob queues the first validation attempt to run immediately.
func NewJob(settlementID, user string, maxAttempts int, now time.Time) model.Job {
	return model.Job{
		ID:           uuid.NewString(),
		SettlementID: settlementID,
		Status:       model.JobPending,
		MaxAttempts:  maxAttempts,
		NextRunAt:    now,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type ReviewRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Note   string       `json:"note"   validate:"omitempty,max=500"`
}

type UploadProofRequest struct {
	Proof     *multipart.FileHeader `json:"proof" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg image/webp application/pdf,maxfilesize=10"`
	ProofFile multipart.File        `json:"-"`
}

type UploadProofResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type SettlementResponse struct {
	ID          string                       `json:"id"`
	ArtistID    string                       `json:"artist_id"`
	TotalValue  decimal.Decimal              `json:"total_value"`
	Status      model.Status                 `json:"status"`
	ProofURL    string                       `json:"proof_url"`
	Confidence  *float64                     `json:"confidence,omitempty"`
	Feedback    *string                      `json:"feedback,omitempty"`
	ValidatedAt string                       `json:"validated_at,omitempty"`
	ReviewNote  *string                      `json:"review_note,omitempty"`
	ReviewedBy  *string                      `json:"reviewed_by,omitempty"`
	ReviewedAt  string                       `json:"reviewed_at,omitempty"`
	Bookings    []bookingDto.BookingResponse `json:"bookings,omitempty"`
	gDto.Metadata
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

func (r *SettlementResponse) FromModel(model model.Settlement, bookings []bookingModel.Booking) {
	r.ID = model.ID
	r.ArtistID = model.ArtistID
	r.TotalValue = model.TotalValue
	r.Status = model.Status
	r.ProofURL = model.ProofURL
	r.Confidence = model.Confidence
	r.Feedback = model.Feedback
	r.ValidatedAt = formatOptional(model.ValidatedAt)
	r.ReviewNote = model.ReviewNote
	r.ReviewedBy = model.ReviewedBy
	r.ReviewedAt = formatOptional(model.ReviewedAt)
	r.Metadata.FromModel(model.Metadata)

	r.Bookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
	}
}

type PendingRevenueResponse struct {
	ArtistID         string                       `json:"artist_id"`
	Bookings         []bookingDto.BookingResponse `json:"bookings"`
	TotalArtistShare decimal.Decimal              `json:"total_artist_share"`
	Count            int                          `json:"count"`
}

func (r *PendingRevenueResponse) FromModels(artistID string, bookings []bookingModel.Booking) {
	r.ArtistID = artistID
	r.Count = len(bookings)
	r.TotalArtistShare = decimal.Zero

	r.Bookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
		r.TotalArtistShare = r.TotalArtistShare.Add(booking.ArtistShare)
	}
}

// CreatedEvent is published once a settlement and its validation job are stored.
type CreatedEvent struct {
	SettlementID string          `json:"settlement_id"`
	ArtistID     string          `json:"artist_id"`
	TotalValue   decimal.Decimal `json:"total_value"`
	BookingIDs   []string        `json:"booking_ids"`
}

// ValidatedEvent is published when the background validation settles a status.
type ValidatedEvent struct {
	SettlementID string       `json:"settlement_id"`
	Status       model.Status `json:"status"`
	Confidence   float64      `json:"confidence"`
	Feedback     string       `json:"feedback"`
}
