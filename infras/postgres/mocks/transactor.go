package mocks

import (
	"context"
	"studio/infras/postgres"
	"sync"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
	mu *sync.Mutex
}

// WithTx implements postgres.Transactor. fn receives a nil *sqlx.Tx.
func (t *transactorImpl) WithTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	if t.mu != nil {
		t.mu.Lock()
		defer t.mu.Unlock()
	}

	return fn(ctx, nil)
}

// NewTransactor runs units of work directly, without a database.
func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}

// NewSerialTransactor runs one unit of work at a time, standing in for row locks.
func NewSerialTransactor() postgres.Transactor {
	return &transactorImpl{mu: &sync.Mutex{}}
}
