package signature

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"fname-registry/internal/transfers/codec"
)

// AllowList is a static fid to signer map loaded from configuration.
type AllowList map[uint64]common.Address

// Lookup implements Authorizer.
func (l AllowList) Lookup(_ context.Context, fid uint64) (common.Address, bool, error) {
	addr, ok := l[fid]
	return addr, ok, nil
}

// ParseAdminKeys parses "fid=0xaddress" pairs separated by commas.
// An empty string yields an empty list.
func ParseAdminKeys(raw string) (AllowList, error) {
	list := AllowList{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		fidPart, addrPart, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("admin key %q: expected fid=address", pair)
		}
		fid, err := strconv.ParseUint(strings.TrimSpace(fidPart), 10, 64)
		if err != nil || fid == 0 {
			return nil, fmt.Errorf("admin key %q: invalid fid", pair)
		}
		addr, err := codec.DecodeAddress(strings.TrimSpace(addrPart))
		if err != nil {
			return nil, fmt.Errorf("admin key %q: %w", pair, err)
		}
		list[fid] = addr
	}
	return list, nil
}

// CustodyResolver looks up the custody address registered for an fid.
type CustodyResolver interface {
	CustodyAddress(ctx context.Context, fid uint64) (common.Address, bool, error)
}

// OpenRegistration authorizes admins first, then any fid's own custody address.
type OpenRegistration struct {
	admins  AllowList
	custody CustodyResolver
}

func NewOpenRegistration(admins AllowList, custody CustodyResolver) *OpenRegistration {
	return &OpenRegistration{admins: admins, custody: custody}
}

// Lookup implements Authorizer.
func (o *OpenRegistration) Lookup(ctx context.Context, fid uint64) (common.Address, bool, error) {
	if addr, ok := o.admins[fid]; ok {
		return addr, true, nil
	}
	if fid == 0 || o.custody == nil {
		return common.Address{}, false, nil
	}
	return o.custody.CustodyAddress(ctx, fid)
}
