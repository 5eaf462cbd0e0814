package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel/mocks"
	couponMocks "studio/internal/domains/coupon/mocks"
	settlementMocks "studio/internal/domains/settlement/mocks"
	"studio/internal/domains/settlement/model"
	settlementDto "studio/internal/domains/settlement/model/dto"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newWorker(t *testing.T, batchSize int) (*Worker, *settlementMocks.MockSettlementService, *couponMocks.MockCouponService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	settlements := settlementMocks.NewMockSettlementService(ctrl)
	coupons := couponMocks.NewMockCouponService(ctrl)

	cfg := &config.Config{}
	cfg.Settlement.Worker.IntervalSeconds = 3600
	cfg.Settlement.Worker.BatchSize = batchSize

	return New(settlements, coupons, cfg, mocks.NewOtel()), settlements, coupons
}

func jobs(n int) []model.Job {
	out := make([]model.Job, n)
	for i := range out {
		out[i] = model.Job{ID: string(rune('a' + i)), SettlementID: "s-" + string(rune('a'+i)), Attempts: 1, MaxAttempts: 5}
	}

	return out
}

func TestNew_Defaults(t *testing.T) {
	w := New(nil, nil, &config.Config{}, mocks.NewOtel())

	assert.Equal(t, defaultInterval, w.interval)
	assert.Equal(t, defaultBatchSize, w.batchSize)
}

func TestRunOnce(t *testing.T) {
	w, settlements, _ := newWorker(t, 5)

	claimed := jobs(3)
	settlements.EXPECT().ClaimJobs(gomock.Any(), 5).Return(claimed, nil)
	settlements.EXPECT().ProcessJob(gomock.Any(), claimed[0]).Return(nil)
	settlements.EXPECT().ProcessJob(gomock.Any(), claimed[1]).Return(errors.New("retry not recorded"))
	settlements.EXPECT().ProcessJob(gomock.Any(), claimed[2]).Return(nil)

	processed, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, processed)
}

func TestRunOnce_NothingDue(t *testing.T) {
	w, settlements, _ := newWorker(t, 5)

	settlements.EXPECT().ClaimJobs(gomock.Any(), 5).Return([]model.Job{}, nil)

	processed, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestRunOnce_ClaimError(t *testing.T) {
	w, settlements, _ := newWorker(t, 5)

	errClaim := errors.New("connection reset")
	settlements.EXPECT().ClaimJobs(gomock.Any(), 5).Return(nil, errClaim)

	_, err := w.RunOnce(context.Background())

	require.ErrorIs(t, err, errClaim)
}

func TestPass_DrainsFullBatches(t *testing.T) {
	w, settlements, coupons := newWorker(t, 2)

	first, second := jobs(2), jobs(1)

	gomock.InOrder(
		settlements.EXPECT().ClaimJobs(gomock.Any(), 2).Return(first, nil),
		settlements.EXPECT().ClaimJobs(gomock.Any(), 2).Return(second, nil),
	)
	settlements.EXPECT().ProcessJob(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	coupons.EXPECT().Expire(gomock.Any()).Return(int64(4), nil)

	w.pass(context.Background())
}

func TestPass_SweepRunsAfterClaimError(t *testing.T) {
	w, settlements, coupons := newWorker(t, 2)

	settlements.EXPECT().ClaimJobs(gomock.Any(), 2).Return(nil, errors.New("connection reset"))
	coupons.EXPECT().Expire(gomock.Any()).Return(int64(0), errors.New("connection reset"))

	w.pass(context.Background())
}

func TestWake_NeverBlocks(t *testing.T) {
	w, _, _ := newWorker(t, 2)

	w.Wake()
	w.Wake()
	w.Wake()

	assert.Len(t, w.wake, 1)
}

func TestRun_WakeTriggersPass(t *testing.T) {
	w, settlements, coupons := newWorker(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := make(chan struct{})

	settlements.EXPECT().ClaimJobs(gomock.Any(), 2).Return([]model.Job{}, nil)
	coupons.EXPECT().Expire(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		close(swept)

		return 0, nil
	})

	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	w.Wake()

	select {
	case <-swept:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not run a pass after Wake")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestHandleSettlementCreated(t *testing.T) {
	w, _, _ := newWorker(t, 2)

	value, err := json.Marshal(kafka.NewEvent("settlement.created", time.Now(), settlementDto.CreatedEvent{SettlementID: "s1"}))
	require.NoError(t, err)

	w.HandleSettlementCreated(kafkaGo.Message{Key: []byte("s1"), Value: value})
	assert.Len(t, w.wake, 1)

	<-w.wake

	w.HandleSettlementCreated(kafkaGo.Message{Key: []byte("s2"), Value: []byte("{")})
	assert.Len(t, w.wake, 1)
}
