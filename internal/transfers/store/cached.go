package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"

	"fname-registry/internal/transfers/models"
	"fname-registry/pkg/requestcontext"
)

const cacheKeyPrefix = "fname:transfer:"

type backend interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Insert(ctx context.Context, t *models.Transfer) (int64, error)
	Latest(ctx context.Context, username string) (*models.Transfer, error)
	CurrentUsername(ctx context.Context, fid uint64) (string, error)
	FindByID(ctx context.Context, id int64) (*models.Transfer, error)
	History(ctx context.Context, filter models.HistoryFilter) ([]*models.Transfer, error)
}

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedStore fronts another store with a Redis read-through cache for
// FindByID. Transfers are immutable once written, so entries are never
// invalidated; they only expire. Cache failures fall through to the backend.
type CachedStore struct {
	backend
	client cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(inner backend, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CachedStore{backend: inner, client: client, ttl: ttl, logger: logger}
}

type cachedTransfer struct {
	ID              int64          `json:"id"`
	Timestamp       int64          `json:"timestamp"`
	Username        string         `json:"username"`
	Owner           common.Address `json:"owner"`
	From            uint64         `json:"from"`
	To              uint64         `json:"to"`
	UserSignature   []byte         `json:"user_signature"`
	ServerSignature []byte         `json:"server_signature"`
}

func (s *CachedStore) FindByID(ctx context.Context, id int64) (*models.Transfer, error) {
	key := cacheKeyPrefix + strconv.FormatInt(id, 10)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedTransfer
		if err := json.Unmarshal(raw, &entry); err == nil {
			t := models.Transfer(entry)
			return &t, nil
		}
		s.logger.WarnContext(ctx, "discarding unreadable transfer cache entry",
			"request_id", requestcontext.RequestID(ctx),
			"transfer_id", id,
		)
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "transfer cache read failed",
			"request_id", requestcontext.RequestID(ctx),
			"transfer_id", id,
			"error", err,
		)
	}

	t, err := s.backend.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedTransfer(*t))
	if err == nil {
		err = s.client.Set(ctx, key, payload, s.ttl).Err()
	}
	if err != nil {
		s.logger.WarnContext(ctx, "transfer cache write failed",
			"request_id", requestcontext.RequestID(ctx),
			"transfer_id", id,
			"error", err,
		)
	}
	return t, nil
}
