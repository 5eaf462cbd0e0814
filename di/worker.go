package di

import (
	"studio/config"
	"studio/infras/kafka"
	settlementWorker "studio/internal/workers/settlement"
)

// WorkerApp is everything cmd/worker runs: the job loop and the consumer that wakes it.
type WorkerApp struct {
	Config *config.Config
	Kafka  kafka.Client
	Worker *settlementWorker.Worker
}
