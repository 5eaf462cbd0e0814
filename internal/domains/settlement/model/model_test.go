package model_test

import (
	"testing"
	"time"

	"studio/internal/domains/settlement/model"

	"github.com/stretchr/testify/assert"
)

func TestVerdict_Outcome(t *testing.T) {
	tests := []struct {
		name    string
		verdict model.Verdict
		want    model.Status
	}{
		{name: "approved above threshold", verdict: model.Verdict{Approved: true, Confidence: 0.99}, want: model.StatusApproved},
		{name: "approved at threshold", verdict: model.Verdict{Approved: true, Confidence: 0.9}, want: model.StatusApproved},
		{name: "approved below threshold", verdict: model.Verdict{Approved: true, Confidence: 0.65}, want: model.StatusReview},
		{name: "confident rejection", verdict: model.Verdict{Approved: false, Confidence: 0.99}, want: model.StatusReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.verdict.Outcome(0.9))
		})
	}
}

func TestStatus_Reviewable(t *testing.T) {
	assert.True(t, model.StatusPending.Reviewable())
	assert.True(t, model.StatusReview.Reviewable())
	assert.False(t, model.StatusApproved.Reviewable())
	assert.False(t, model.StatusRejected.Reviewable())
}

func TestJob_RetryAt(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(30*time.Second), model.Job{Attempts: 1}.RetryAt(now, 30*time.Second))
	assert.Equal(t, now.Add(90*time.Second), model.Job{Attempts: 3}.RetryAt(now, 30*time.Second))
	assert.Equal(t, now.Add(30*time.Second), model.Job{Attempts: 0}.RetryAt(now, 30*time.Second))
}

func TestJob_Exhausted(t *testing.T) {
	assert.False(t, model.Job{Attempts: 4, MaxAttempts: 5}.Exhausted())
	assert.True(t, model.Job{Attempts: 5, MaxAttempts: 5}.Exhausted())
}
