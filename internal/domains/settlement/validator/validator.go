// Package validator decides whether a settlement's proof of payment can be
// accepted without a human looking at it.
package validator

//go:generate go run go.uber.org/mock/mockgen -source=./validator.go -destination=../mocks/validator_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"studio/infras/otel"
	"studio/infras/s3"
	"studio/internal/domains/settlement/model"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	confidenceMissing  = 0
	confidenceUnknown  = 0.30
	confidenceDocument = 0.65

	feedbackForeign  = "Proof is not stored by the studio"
	feedbackEmpty    = "Proof file is empty"
	feedbackUnknown  = "Unrecognized proof format"
	feedbackDocument = "Needs human review"
)

// ProofValidator returns an error only when the check itself could not run
// and should be retried.
type ProofValidator interface {
	Validate(ctx context.Context, settlement model.Settlement) (model.Verdict, error)
}

type storageValidator struct {
	storage s3.S3
	otel    otel.Otel
}

// New checks proofs against the object storage uploads land in. It never
// approves on its own; the best a stored document earns is a review.
func New(storage s3.S3, otel otel.Otel) ProofValidator {
	return &storageValidator{
		storage: storage,
		otel:    otel,
	}
}

func (v *storageValidator) Validate(ctx context.Context, settlement model.Settlement) (verdict model.Verdict, err error) {
	ctx, scope := v.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".ValidateProof")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := v.storage.ObjectKeyFromURL(constant.Empty, settlement.ProofURL)
	if key == constant.Empty {
		return review(confidenceMissing, feedbackForeign), nil
	}

	info, err := v.storage.Stat(ctx, constant.Empty, key)
	if errors.Is(err, s3.ErrObjectNotFound) {
		log.Warn().Str("settlement", settlement.ID).Str("key", key).Msg("settlement proof not uploaded yet")

		return verdict, fmt.Errorf("settlement proof %s: %w", key, err)
	}

	if err != nil {
		log.Error().Err(err).Str("settlement", settlement.ID).Msg("failed to stat settlement proof")

		return verdict, fmt.Errorf("failed to stat settlement proof: %w", err)
	}

	if info.Size == 0 {
		return review(confidenceMissing, feedbackEmpty), nil
	}

	switch info.ContentType {
	case constant.ContentTypePDF, constant.ContentTypeJPEG, constant.ContentTypePNG, constant.ContentTypeWEBP:
		return review(confidenceDocument, feedbackDocument), nil
	default:
		return review(confidenceUnknown, feedbackUnknown), nil
	}
}

func review(confidence float64, feedback string) model.Verdict {
	return model.Verdict{
		Approved:   false,
		Confidence: confidence,
		Feedback:   feedback,
	}
}
