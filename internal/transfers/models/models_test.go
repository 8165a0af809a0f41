package models

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "fname-registry/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func TestHistoryFilterCursor(t *testing.T) {
	assert.Equal(t, CursorByID, HistoryFilter{}.Cursor())
	assert.Equal(t, CursorByID, HistoryFilter{FromID: ptr(int64(3))}.Cursor())
	assert.Equal(t, CursorByTimestamp, HistoryFilter{FromTs: ptr(int64(10))}.Cursor())
}

func TestHistoryFilterMatches(t *testing.T) {
	tr := &Transfer{ID: 5, Timestamp: 100, Username: "alice", From: 0, To: 7}

	assert.True(t, HistoryFilter{}.Matches(tr))
	assert.True(t, HistoryFilter{FromID: ptr(int64(4)), Name: "alice", Fid: ptr(uint64(7))}.Matches(tr))
	assert.False(t, HistoryFilter{FromID: ptr(int64(5))}.Matches(tr))
	assert.False(t, HistoryFilter{FromTs: ptr(int64(100))}.Matches(tr))
	assert.False(t, HistoryFilter{Name: "bob"}.Matches(tr))
	assert.False(t, HistoryFilter{Fid: ptr(uint64(8))}.Matches(tr))
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "Validation error: USERNAME_TAKEN", Reject(CodeUsernameTaken).Error())
}

func TestCreateTransferRequestValidate(t *testing.T) {
	valid := func() *CreateTransferRequest {
		return &CreateTransferRequest{
			Name:      "alice",
			To:        1,
			Fid:       1,
			Owner:     "0x8773442740c17c9d0f0b87022c722f9a136206ed",
			Timestamp: 1_700_000_000,
			Signature: "0x0102",
		}
	}

	t.Run("decodes hex fields", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
		decoded := req.TransferRequest()
		assert.Equal(t, common.HexToAddress("0x8773442740c17c9d0f0b87022c722f9a136206ed"), decoded.Owner)
		assert.Equal(t, []byte{1, 2}, decoded.UserSignature)
		assert.Equal(t, uint64(1), decoded.UserFid)
		assert.Equal(t, "alice", decoded.Username)
	})

	cases := map[string]func(r *CreateTransferRequest){
		"missing owner":      func(r *CreateTransferRequest) { r.Owner = "" },
		"short owner":        func(r *CreateTransferRequest) { r.Owner = "0x1234" },
		"owner no prefix":    func(r *CreateTransferRequest) { r.Owner = "8773442740c17c9d0f0b87022c722f9a136206ed" },
		"missing signature":  func(r *CreateTransferRequest) { r.Signature = "" },
		"empty signature":    func(r *CreateTransferRequest) { r.Signature = "0x" },
		"negative timestamp": func(r *CreateTransferRequest) { r.Timestamp = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid()
			mutate(req)
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func TestNewTransferResponse(t *testing.T) {
	resp := NewTransferResponse(&Transfer{
		ID:              1,
		Timestamp:       2,
		Username:        "alice",
		Owner:           common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		To:              3,
		UserSignature:   []byte{0xab},
		ServerSignature: nil,
	})
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", resp.Owner)
	assert.Equal(t, "0xab", resp.UserSignature)
	assert.Equal(t, "0x", resp.ServerSignature)
}
