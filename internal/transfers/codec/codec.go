// Package codec converts between the registry's 0x-prefixed hex text and raw bytes.
package codec

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrMissingPrefix  = errors.New("hex string must start with 0x")
	ErrEmptySignature = errors.New("signature is empty")
)

// EncodeBytes renders b as 0x-prefixed lowercase hex. Nil and empty both encode to "0x".
func EncodeBytes(b []byte) string {
	return hexutil.Encode(b)
}

// DecodeBytes parses 0x-prefixed hex. "0x" decodes to an empty slice.
func DecodeBytes(s string) ([]byte, error) {
	if !has0xPrefix(s) {
		return nil, ErrMissingPrefix
	}
	if len(s) == 2 {
		return []byte{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return b, nil
}

// DecodeAddress parses a 20-byte 0x-prefixed address.
func DecodeAddress(s string) (common.Address, error) {
	b, err := DecodeBytes(s)
	if err != nil {
		return common.Address{}, err
	}
	if len(b) != common.AddressLength {
		return common.Address{}, fmt.Errorf("address must be %d bytes, got %d", common.AddressLength, len(b))
	}
	return common.BytesToAddress(b), nil
}

// DecodeSignature parses a non-empty 0x-prefixed signature. Length is checked at verification.
func DecodeSignature(s string) ([]byte, error) {
	b, err := DecodeBytes(s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrEmptySignature
	}
	return b, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
