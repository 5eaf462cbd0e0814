// Package settlement runs the settlement validation queue and the coupon
// expiry sweep.
package settlement

import (
	"context"
	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	couponService "studio/internal/domains/coupon/service"
	settlementDto "studio/internal/domains/settlement/model/dto"
	settlementService "studio/internal/domains/settlement/service"
	"studio/shared/constant"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

const (
	defaultInterval  = 15 * time.Second
	defaultBatchSize = 10
)

type Worker struct {
	settlements settlementService.Settlement
	coupons     couponService.Coupon
	otel        otel.Otel
	interval    time.Duration
	batchSize   int
	wake        chan struct{}
}

func New(settlements settlementService.Settlement, coupons couponService.Coupon, cfg *config.Config, otel otel.Otel) *Worker {
	interval := time.Duration(cfg.Settlement.Worker.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultInterval
	}

	batchSize := cfg.Settlement.Worker.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Worker{
		settlements: settlements,
		coupons:     coupons,
		otel:        otel,
		interval:    interval,
		batchSize:   batchSize,
		wake:        make(chan struct{}, 1),
	}
}

// Wake asks for a pass before the next tick. It never blocks.
func (w *Worker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run polls until ctx is done. Each pass drains due validation jobs, then
// expires coupons.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Int("batchSize", w.batchSize).Msg("settlement worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("settlement worker stopped")

			return nil
		case <-ticker.C:
			w.pass(ctx)
		case <-w.wake:
			w.pass(ctx)
		}
	}
}

func (w *Worker) pass(ctx context.Context) {
	for ctx.Err() == nil {
		processed, err := w.RunOnce(ctx)
		if err != nil {
			log.Error().Err(err).Msg("settlement validation pass failed")

			break
		}

		if processed < w.batchSize {
			break
		}
	}

	if _, err := w.ExpireCoupons(ctx); err != nil {
		log.Error().Err(err).Msg("coupon expiry sweep failed")
	}
}

// RunOnce claims one batch and processes it concurrently. A job whose
// bookkeeping fails is logged; its lease runs out and it is claimed again.
func (w *Worker) RunOnce(ctx context.Context) (processed int, err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".settlement.RunOnce")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	jobs, err := w.settlements.ClaimJobs(ctx, w.batchSize)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	var failed atomic.Int32

	group := errgroup.Group{}

	for _, job := range jobs {
		group.Go(func() error {
			if err := w.settlements.ProcessJob(ctx, job); err != nil {
				failed.Add(1)

				log.Error().Err(err).Str("job", job.ID).Str("settlement", job.SettlementID).Msg("failed to process validation job")
			}

			return nil
		})
	}

	_ = group.Wait()

	scope.SetAttributes(map[string]any{
		"claimed": len(jobs),
		"failed":  int(failed.Load()),
	})

	log.Info().Int("claimed", len(jobs)).Int32("failed", failed.Load()).Msg("settlement validation batch done")

	return len(jobs), nil
}

// ExpireCoupons marks ACTIVE coupons past their expiry as EXPIRED.
func (w *Worker) ExpireCoupons(ctx context.Context) (int64, error) {
	expired, err := w.coupons.Expire(ctx)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	if expired > 0 {
		log.Info().Int64("expired", expired).Msg("expired coupons")
	}

	return expired, nil
}

// HandleSettlementCreated is the settlement.created consumer. The job is
// already queued, so an undecodable message still wakes the worker.
func (w *Worker) HandleSettlementCreated(msg kafkaGo.Message) {
	_, event, err := kafka.DecodeKafkaMessage[kafka.Event[settlementDto.CreatedEvent]](msg)
	if err != nil {
		log.Warn().Err(err).Msg("undecodable settlement.created message")
	} else {
		log.Debug().Str("settlement", event.Data.SettlementID).Msg("settlement created, waking validation worker")
	}

	w.Wake()
}
