package signature

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"

	"fname-registry/internal/transfers/codec"
)

// DefaultCustodyKey is the hash an external indexer fills with fid -> custody address.
const DefaultCustodyKey = "fname:custody"

type hashGetter interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

// RedisCustodyResolver reads custody addresses from a Redis hash.
type RedisCustodyResolver struct {
	client hashGetter
	key    string
}

func NewRedisCustodyResolver(client redis.Cmdable, key string) *RedisCustodyResolver {
	if key == "" {
		key = DefaultCustodyKey
	}
	return &RedisCustodyResolver{client: client, key: key}
}

// CustodyAddress implements CustodyResolver.
func (r *RedisCustodyResolver) CustodyAddress(ctx context.Context, fid uint64) (common.Address, bool, error) {
	raw, err := r.client.HGet(ctx, r.key, strconv.FormatUint(fid, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return common.Address{}, false, nil
	}
	if err != nil {
		return common.Address{}, false, fmt.Errorf("read custody address for fid %d: %w", fid, err)
	}
	addr, err := codec.DecodeAddress(raw)
	if err != nil {
		return common.Address{}, false, fmt.Errorf("custody address for fid %d: %w", fid, err)
	}
	return addr, true, nil
}
