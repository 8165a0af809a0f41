package store

import (
	"context"
	"errors"
	"sync"

	"fname-registry/internal/transfers/models"
	"fname-registry/pkg/platform/sentinel"
)

// InMemoryStore keeps the transfer log in process memory. Transactions are
// serialized by a single lock and rolled back by truncating the log.
type InMemoryStore struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	transfers []*models.Transfer
	nextID    int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

type memTxKey struct{}

// RunInTx runs fn while holding the store's write lock. Records inserted by
// fn are discarded when it returns an error or panics.
func (s *InMemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(memTxKey{}) == s {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	mark := len(s.transfers)
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.truncate(mark)
			panic(p)
		}
		if err != nil {
			s.truncate(mark)
		}
	}()

	return fn(context.WithValue(ctx, memTxKey{}, s))
}

func (s *InMemoryStore) truncate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = s.transfers[:n]
}

func (s *InMemoryStore) Insert(_ context.Context, t *models.Transfer) (int64, error) {
	if t == nil {
		return 0, errors.New("transfer is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := cloneTransfer(t)
	stored.ID = s.nextID
	s.nextID++
	s.transfers = append(s.transfers, stored)
	return stored.ID, nil
}

func (s *InMemoryStore) Latest(_ context.Context, username string) (*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Transfer
	for _, t := range s.transfers {
		if t.Username != username {
			continue
		}
		if latest == nil || newer(t, latest) {
			latest = t
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return cloneTransfer(latest), nil
}

func (s *InMemoryStore) CurrentUsername(_ context.Context, fid uint64) (string, error) {
	if fid == 0 {
		return "", sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Transfer
	for _, t := range s.transfers {
		if t.From != fid && t.To != fid {
			continue
		}
		if latest == nil || newer(t, latest) {
			latest = t
		}
	}
	if latest == nil || latest.To != fid {
		return "", sentinel.ErrNotFound
	}
	return latest.Username, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transfers {
		if t.ID == id {
			return cloneTransfer(t), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) History(_ context.Context, filter models.HistoryFilter) ([]*models.Transfer, error) {
	s.mu.RLock()
	matched := make([]*models.Transfer, 0)
	for _, t := range s.transfers {
		if filter.Matches(t) {
			matched = append(matched, cloneTransfer(t))
		}
	}
	s.mu.RUnlock()

	sortForCursor(matched, filter.Cursor())
	if len(matched) > models.PageSize {
		matched = matched[:models.PageSize]
	}
	return matched, nil
}
