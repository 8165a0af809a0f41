package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fname-registry/internal/transfers/models"
	"fname-registry/pkg/platform/sentinel"
)

// transferStore is the surface every store implementation shares.
type transferStore interface {
	backend
}

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, s transferStore, transfers ...*models.Transfer) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(transfers))
	err := s.RunInTx(context.Background(), func(ctx context.Context) error {
		for _, tr := range transfers {
			id, err := s.Insert(ctx, tr)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	require.NoError(t, err)
	return ids
}

func transfer(name string, ts int64, from, to uint64) *models.Transfer {
	return &models.Transfer{
		Timestamp:       ts,
		Username:        name,
		Owner:           common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		From:            from,
		To:              to,
		UserSignature:   []byte{0x01},
		ServerSignature: []byte{0x02},
	}
}

// runStoreContract exercises behaviour every store must share. newStore must
// return an empty store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) transferStore) {
	ctx := context.Background()

	t.Run("latest returns not found for unknown name", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Latest(ctx, "nobody")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("latest orders by timestamp then id", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s,
			transfer("alice", 10, 0, 1),
			transfer("alice", 30, 1, 2),
			transfer("alice", 20, 2, 3),
			transfer("alice", 30, 2, 4),
		)
		latest, err := s.Latest(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, ids[3], latest.ID)
		assert.Equal(t, uint64(4), latest.To)
	})

	t.Run("insert round trips every field", func(t *testing.T) {
		s := newStore(t)
		want := transfer("bob", 42, 0, 9)
		want.UserSignature = []byte{0xde, 0xad}
		want.ServerSignature = []byte{0xbe, 0xef}
		ids := seed(t, s, want)

		got, err := s.FindByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, ids[0], got.ID)
		assert.Equal(t, want.Timestamp, got.Timestamp)
		assert.Equal(t, want.Username, got.Username)
		assert.Equal(t, want.Owner, got.Owner)
		assert.Equal(t, want.From, got.From)
		assert.Equal(t, want.To, got.To)
		assert.Equal(t, want.UserSignature, got.UserSignature)
		assert.Equal(t, want.ServerSignature, got.ServerSignature)

		_, err = s.FindByID(ctx, ids[0]+1000)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("current username follows the most recent involvement", func(t *testing.T) {
		s := newStore(t)

		_, err := s.CurrentUsername(ctx, 0)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		seed(t, s, transfer("alice", 1, 0, 1))
		name, err := s.CurrentUsername(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", name)

		seed(t, s, transfer("alice", 2, 1, 2))
		_, err = s.CurrentUsername(ctx, 1)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		name, err = s.CurrentUsername(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "alice", name)

		seed(t, s, transfer("alice", 3, 2, 0))
		_, err = s.CurrentUsername(ctx, 2)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.CurrentUsername(ctx, 0)
		assert.ErrorIs(t, err, sentinel.ErrNotFound, "fid 0 never owns a name even after a burn")
	})

	t.Run("history applies every filter", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s,
			transfer("alice", 10, 0, 1),
			transfer("bob", 11, 0, 2),
			transfer("alice", 12, 1, 3),
			transfer("carol", 13, 0, 3),
		)

		all, err := s.History(ctx, models.HistoryFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		byName, err := s.History(ctx, models.HistoryFilter{Name: "alice"})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[0], ids[2]}, transferIDs(byName))

		byFid, err := s.History(ctx, models.HistoryFilter{Fid: ptr(uint64(3))})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[2], ids[3]}, transferIDs(byFid))

		byID, err := s.History(ctx, models.HistoryFilter{FromID: ptr(ids[1])})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[2], ids[3]}, transferIDs(byID))

		combined, err := s.History(ctx, models.HistoryFilter{FromTs: ptr(int64(10)), Name: "alice", Fid: ptr(uint64(1))})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[2]}, transferIDs(combined))
	})

	t.Run("history by timestamp orders by timestamp then id", func(t *testing.T) {
		s := newStore(t)
		ids := seed(t, s,
			transfer("a", 50, 0, 1),
			transfer("b", 20, 0, 2),
			transfer("c", 20, 0, 3),
			transfer("d", 5, 0, 4),
		)
		page, err := s.History(ctx, models.HistoryFilter{FromTs: ptr(int64(10))})
		require.NoError(t, err)
		assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, transferIDs(page))
	})

	t.Run("paging by id visits every record exactly once", func(t *testing.T) {
		s := newStore(t)
		batch := make([]*models.Transfer, 0, 2*models.PageSize+37)
		for i := 0; i < cap(batch); i++ {
			batch = append(batch, transfer("n", int64(i%7), 0, uint64(i+1)))
		}
		want := seed(t, s, batch...)

		var (
			got    []int64
			cursor *int64
			pages  int
		)
		for {
			page, err := s.History(ctx, models.HistoryFilter{FromID: cursor})
			require.NoError(t, err)
			require.LessOrEqual(t, len(page), models.PageSize)
			if len(page) == 0 {
				break
			}
			pages++
			got = append(got, transferIDs(page)...)
			cursor = ptr(page[len(page)-1].ID)
		}
		assert.Equal(t, want, got)
		assert.Equal(t, 3, pages)
	})

	t.Run("failed transaction leaves no trace", func(t *testing.T) {
		s := newStore(t)
		boom := errors.New("boom")
		err := s.RunInTx(ctx, func(ctx context.Context) error {
			if _, err := s.Insert(ctx, transfer("ghost", 1, 0, 1)); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = s.Latest(ctx, "ghost")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func transferIDs(transfers []*models.Transfer) []int64 {
	ids := make([]int64, 0, len(transfers))
	for _, t := range transfers {
		ids = append(ids, t.ID)
	}
	return ids
}
