package signature

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"fname-registry/pkg/requestcontext"
)

const signatureLength = 65

// Authorizer resolves the address permitted to sign for an fid.
// ok is false when the fid has no authorized address.
type Authorizer interface {
	Lookup(ctx context.Context, fid uint64) (addr common.Address, ok bool, err error)
}

// Authority verifies user signatures and co-signs accepted attestations with
// the registry's key. It is safe for concurrent use.
type Authority struct {
	key        *ecdsa.PrivateKey
	address    common.Address
	authorizer Authorizer
	logger     *slog.Logger
}

// Option configures an Authority.
type Option func(*Authority)

// WithLogger sets the logger used for authorizer lookup failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authority) {
		a.logger = logger
	}
}

// NewAuthority builds an Authority signing with key and resolving verifiers via authorizer.
func NewAuthority(key *ecdsa.PrivateKey, authorizer Authorizer, opts ...Option) (*Authority, error) {
	if key == nil {
		return nil, errors.New("signing key is required")
	}
	if authorizer == nil {
		return nil, errors.New("authorizer is required")
	}
	a := &Authority{
		key:        key,
		address:    crypto.PubkeyToAddress(key.PublicKey),
		authorizer: authorizer,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ParsePrivateKey decodes a hex secp256k1 private key, with or without 0x.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"), "0X")
	if hexKey == "" {
		return nil, errors.New("signing key is empty")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return key, nil
}

// Address is the registry's co-signing address.
func (a *Authority) Address() common.Address {
	return a.address
}

// Verify reports whether sig is a valid signature of att by expected.
// Malformed signatures yield false.
func (a *Authority) Verify(att Attestation, sig []byte, expected common.Address) bool {
	if len(sig) != signatureLength {
		return false
	}
	hash, err := att.Hash()
	if err != nil {
		return false
	}

	normalized := make([]byte, signatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return false
	}

	pub, err := crypto.SigToPub(hash, normalized)
	if err != nil {
		return false
	}
	recovered := crypto.PubkeyToAddress(*pub)
	return bytes.Equal(recovered.Bytes(), expected.Bytes())
}

// CoSign signs att with the registry key. The result is [R || S || V] with V in {27, 28}.
// Signing is deterministic for a given attestation.
func (a *Authority) CoSign(att Attestation) ([]byte, error) {
	hash, err := att.Hash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash, a.key)
	if err != nil {
		return nil, fmt.Errorf("co-sign attestation: %w", err)
	}
	sig[64] += 27
	return sig, nil
}

// AuthorizedVerifier returns the address allowed to sign for fid. Lookup
// failures are logged and reported as absent.
func (a *Authority) AuthorizedVerifier(ctx context.Context, fid uint64) (common.Address, bool) {
	addr, ok, err := a.authorizer.Lookup(ctx, fid)
	if err != nil {
		a.logger.WarnContext(ctx, "authorized verifier lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"fid", fid,
			"error", err,
		)
		return common.Address{}, false
	}
	return addr, ok
}
