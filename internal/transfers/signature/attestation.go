// Package signature holds the registry's signing authority: the canonical
// attestation digest, signature verification and co-signing, and the strategies
// that resolve which address may sign for an fid.
package signature

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	domainName    = "Farcaster name verification"
	domainVersion = "1"
	domainChainID = 1
	primaryType   = "UserNameProof"
)

// VerifyingContract is the address bound into the attestation domain.
var VerifyingContract = common.HexToAddress("0xe3be01d99baa8db9905b33a3ca391238234b79d1")

var proofTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	primaryType: {
		{Name: "name", Type: "string"},
		{Name: "timestamp", Type: "uint256"},
		{Name: "owner", Type: "address"},
	},
}

// Attestation is the statement both the user and the registry sign.
type Attestation struct {
	Username  string
	Timestamp int64
	Owner     common.Address
}

// Hash returns the 32-byte EIP-712 digest of the attestation.
func (a Attestation) Hash() ([]byte, error) {
	if a.Timestamp < 0 {
		return nil, fmt.Errorf("attestation timestamp must not be negative: %d", a.Timestamp)
	}
	typed := apitypes.TypedData{
		Types:       proofTypes,
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              domainName,
			Version:           domainVersion,
			ChainId:           math.NewHexOrDecimal256(domainChainID),
			VerifyingContract: VerifyingContract.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"name":      a.Username,
			"timestamp": big.NewInt(a.Timestamp),
			"owner":     a.Owner.Hex(),
		},
	}
	hash, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("hash attestation: %w", err)
	}
	return hash, nil
}
