// Package store persists the append-only transfer log and answers the history
// queries the transfer service needs.
//
// Reads return sentinel.ErrNotFound when nothing matches. Records are ordered
// newest-first by (timestamp DESC, id DESC) for point lookups and oldest-first
// by the filter's cursor strategy for history pages.
package store

import (
	"sort"

	"fname-registry/internal/transfers/models"
)

func cloneTransfer(t *models.Transfer) *models.Transfer {
	if t == nil {
		return nil
	}
	c := *t
	c.UserSignature = append([]byte(nil), t.UserSignature...)
	c.ServerSignature = append([]byte(nil), t.ServerSignature...)
	return &c
}

// newer reports whether a sorts before b in (timestamp DESC, id DESC) order.
func newer(a, b *models.Transfer) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}
	return a.ID > b.ID
}

func sortForCursor(transfers []*models.Transfer, cursor models.CursorStrategy) {
	sort.Slice(transfers, func(i, j int) bool {
		a, b := transfers[i], transfers[j]
		if cursor == models.CursorByTimestamp && a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.ID < b.ID
	})
}
