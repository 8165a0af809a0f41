package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// Transfer is one persisted entry of the append-only transfer log.
//
// Invariants:
//   - ID is assigned by storage and strictly increasing
//   - From == 0 marks a mint, To == 0 marks a burn
//   - ServerSignature covers (Username, Timestamp, Owner)
type Transfer struct {
	ID              int64
	Timestamp       int64
	Username        string
	Owner           common.Address
	From            uint64
	To              uint64
	UserSignature   []byte
	ServerSignature []byte
}

// IsMint reports whether the transfer assigns a name out of nothing.
func (t *Transfer) IsMint() bool { return t.From == 0 }

// IsBurn reports whether the transfer releases a name.
func (t *Transfer) IsBurn() bool { return t.To == 0 }

// TransferRequest is a proposed transfer submitted by a client.
// UserFid identifies whose signing address must have produced UserSignature.
type TransferRequest struct {
	Timestamp     int64
	Username      string
	Owner         common.Address
	From          uint64
	To            uint64
	UserSignature []byte
	UserFid       uint64
}

// CreateResult is the outcome of an accepted submission. Duplicate is set
// when the request repeated the current state and nothing was written.
type CreateResult struct {
	Transfer  *Transfer
	Duplicate bool
}
