package models

import (
	"strings"

	"fname-registry/internal/transfers/codec"
	dErrors "fname-registry/pkg/domain-errors"
)

// CreateTransferRequest is the JSON body of POST /transfers.
type CreateTransferRequest struct {
	Name      string `json:"name"`
	From      uint64 `json:"from"`
	To        uint64 `json:"to"`
	Fid       uint64 `json:"fid"`
	Owner     string `json:"owner"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`

	decoded *TransferRequest
}

// Validate checks wire syntax only. Name rules and authorization belong to the
// transfer service so they surface as taxonomy codes.
func (r *CreateTransferRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	r.Owner = strings.TrimSpace(r.Owner)
	r.Signature = strings.TrimSpace(r.Signature)

	if r.Owner == "" {
		return dErrors.New(dErrors.CodeBadRequest, "owner is required")
	}
	if r.Signature == "" {
		return dErrors.New(dErrors.CodeBadRequest, "signature is required")
	}
	if r.Timestamp < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "timestamp must not be negative")
	}

	owner, err := codec.DecodeAddress(r.Owner)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "owner must be a 0x-prefixed 20 byte address")
	}
	sig, err := codec.DecodeSignature(r.Signature)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "signature must be 0x-prefixed hex")
	}

	r.decoded = &TransferRequest{
		Timestamp:     r.Timestamp,
		Username:      r.Name,
		Owner:         owner,
		From:          r.From,
		To:            r.To,
		UserSignature: sig,
		UserFid:       r.Fid,
	}
	return nil
}

// TransferRequest returns the decoded request. Valid only after Validate succeeds.
func (r *CreateTransferRequest) TransferRequest() TransferRequest {
	if r.decoded == nil {
		return TransferRequest{}
	}
	return *r.decoded
}
