package models

import "fname-registry/internal/transfers/codec"

// TransferResponse is the wire form of a Transfer.
type TransferResponse struct {
	ID              int64  `json:"id"`
	Timestamp       int64  `json:"timestamp"`
	Username        string `json:"username"`
	Owner           string `json:"owner"`
	From            uint64 `json:"from"`
	To              uint64 `json:"to"`
	UserSignature   string `json:"user_signature"`
	ServerSignature string `json:"server_signature"`
}

func NewTransferResponse(t *Transfer) TransferResponse {
	return TransferResponse{
		ID:              t.ID,
		Timestamp:       t.Timestamp,
		Username:        t.Username,
		Owner:           codec.EncodeBytes(t.Owner.Bytes()),
		From:            t.From,
		To:              t.To,
		UserSignature:   codec.EncodeBytes(t.UserSignature),
		ServerSignature: codec.EncodeBytes(t.ServerSignature),
	}
}

// TransferEnvelope wraps a single transfer.
type TransferEnvelope struct {
	Transfer TransferResponse `json:"transfer"`
}

// TransfersEnvelope wraps a history page.
type TransfersEnvelope struct {
	Transfers []TransferResponse `json:"transfers"`
}

func NewTransfersEnvelope(transfers []*Transfer) TransfersEnvelope {
	out := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, NewTransferResponse(t))
	}
	return TransfersEnvelope{Transfers: out}
}

// SignerResponse exposes the registry's co-signing address.
type SignerResponse struct {
	Signer string `json:"signer"`
}
