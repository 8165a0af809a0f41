package main

import (
	"context"
	"time"

	"fname-registry/internal/transfers/service"
	dErrors "fname-registry/pkg/domain-errors"
)

const defaultTransferTxTimeout = 5 * time.Second

// boundedTxStore caps how long a transfer transaction may hold its locks.
type boundedTxStore struct {
	service.Store
	timeout time.Duration
}

func newBoundedTxStore(inner service.Store) *boundedTxStore {
	return &boundedTxStore{Store: inner}
}

func (s *boundedTxStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := s.timeout
	if timeout == 0 {
		timeout = defaultTransferTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.Store.RunInTx(ctx, fn)
}
