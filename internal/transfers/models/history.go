package models

// PageSize caps every history page.
const PageSize = 100

// CursorStrategy selects the ordering a history page is read in.
type CursorStrategy int

const (
	// CursorByID orders by the append-only id.
	CursorByID CursorStrategy = iota
	// CursorByTimestamp orders by timestamp, then id.
	CursorByTimestamp
)

func (c CursorStrategy) String() string {
	switch c {
	case CursorByTimestamp:
		return "timestamp"
	default:
		return "id"
	}
}

// HistoryFilter narrows a history page. Nil or empty fields do not filter;
// set fields are AND'd together.
type HistoryFilter struct {
	FromID *int64
	FromTs *int64
	Name   string
	Fid    *uint64
}

// Cursor picks the ordering for the filter: timestamp ordering when paging by
// timestamp, id ordering otherwise.
func (f HistoryFilter) Cursor() CursorStrategy {
	if f.FromTs != nil {
		return CursorByTimestamp
	}
	return CursorByID
}

// Matches reports whether t passes every set filter.
func (f HistoryFilter) Matches(t *Transfer) bool {
	if f.FromID != nil && t.ID <= *f.FromID {
		return false
	}
	if f.FromTs != nil && t.Timestamp <= *f.FromTs {
		return false
	}
	if f.Name != "" && t.Username != f.Name {
		return false
	}
	if f.Fid != nil && t.From != *f.Fid && t.To != *f.Fid {
		return false
	}
	return true
}
