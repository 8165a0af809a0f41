package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fname-registry/internal/transfers/models"
)

func TestInMemoryStoreContract(t *testing.T) {
	runStoreContract(t, func(*testing.T) transferStore { return NewInMemory() })
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	s := NewInMemory()
	ids := seed(t, s, transfer("alice", 1, 0, 1))

	got, err := s.FindByID(context.Background(), ids[0])
	require.NoError(t, err)
	got.Username = "mallory"
	got.UserSignature[0] = 0xff

	again, err := s.FindByID(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Username)
	assert.Equal(t, byte(0x01), again.UserSignature[0])
}

func TestInMemoryStoreRollsBackOnPanic(t *testing.T) {
	s := NewInMemory()
	assert.Panics(t, func() {
		_ = s.RunInTx(context.Background(), func(ctx context.Context) error {
			_, _ = s.Insert(ctx, transfer("ghost", 1, 0, 1))
			panic("kaboom")
		})
	})
	page, err := s.History(context.Background(), models.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestInMemoryStoreSerializesTransactions(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	// Each transaction mints only when the name is still free; serialization
	// means exactly one succeeds.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(fid uint64) {
			defer wg.Done()
			_ = s.RunInTx(ctx, func(ctx context.Context) error {
				if _, err := s.Latest(ctx, "alice"); err == nil {
					return nil
				}
				_, err := s.Insert(ctx, transfer("alice", 1, 0, fid))
				return err
			})
		}(uint64(i + 1))
	}
	wg.Wait()

	page, err := s.History(ctx, models.HistoryFilter{Name: "alice"})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
