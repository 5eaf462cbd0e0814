package model

import (
	"studio/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "settlements"
	EntityName = "settlement"

	FieldID          = "id"
	FieldArtistID    = "artist_id"
	FieldTotalValue  = "total_value"
	FieldStatus      = "status"
	FieldProofURL    = "proof_url"
	FieldConfidence  = "confidence"
	FieldFeedback    = "feedback"
	FieldValidatedAt = "validated_at"
	FieldReviewNote  = "review_note"
	FieldReviewedBy  = "reviewed_by"
	FieldReviewedAt  = "reviewed_at"

	CacheKeyGet = "settlement:get"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusReview   Status = "REVIEW"
	StatusRejected Status = "REJECTED"
)

// Reviewable reports whether a human decision may still be recorded.
func (s Status) Reviewable() bool {
	return s == StatusPending || s == StatusReview
}

type Settlement struct {
	ID          string          `db:"id"`
	ArtistID    string          `db:"artist_id"`
	TotalValue  decimal.Decimal `db:"total_value"`
	Status      Status          `db:"status"`
	ProofURL    string          `db:"proof_url"`
	Confidence  *float64        `db:"confidence"`
	Feedback    *string         `db:"feedback"`
	ValidatedAt *time.Time      `db:"validated_at"`
	ReviewNote  *string         `db:"review_note"`
	ReviewedBy  *string         `db:"reviewed_by"`
	ReviewedAt  *time.Time      `db:"reviewed_at"`
	model.Metadata
}

// Verdict is what a proof validator concludes about a settlement.
type Verdict struct {
	Approved   bool
	Confidence float64
	Feedback   string
}

// Outcome is APPROVED only for an approved verdict at or above threshold.
func (v Verdict) Outcome(threshold float64) Status {
	if v.Approved && v.Confidence >= threshold {
		return StatusApproved
	}

	return StatusReview
}

const (
	JobTableName  = "settlement_validation_jobs"
	JobEntityName = "settlement_validation_job"

	JobFieldID           = "id"
	JobFieldSettlementID = "settlement_id"
	JobFieldStatus       = "status"
	JobFieldAttempts     = "attempts"
	JobFieldMaxAttempts  = "max_attempts"
	JobFieldNextRunAt    = "next_run_at"
	JobFieldLastError    = "last_error"
)

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// Job is one queued validation of a settlement's proof.
type Job struct {
	ID           string    `db:"id"`
	SettlementID string    `db:"settlement_id"`
	Status       JobStatus `db:"status"`
	Attempts     int       `db:"attempts"`
	MaxAttempts  int       `db:"max_attempts"`
	NextRunAt    time.Time `db:"next_run_at"`
	LastError    *string   `db:"last_error"`
	model.Metadata
}

// Exhausted reports whether the attempt just made was the last allowed one.
func (j Job) Exhausted() bool {
	return j.Attempts >= j.MaxAttempts
}

// RetryAt schedules the next attempt with linear backoff.
func (j Job) RetryAt(now time.Time, backoff time.Duration) time.Time {
	return now.Add(backoff * time.Duration(max(j.Attempts, 1)))
}
