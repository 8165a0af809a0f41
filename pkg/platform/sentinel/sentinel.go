package sentinel

import "errors"

// Infrastructure facts returned (optionally wrapped) by stores and clients.
// Services translate them; they never reach the HTTP layer as-is.
//
// - ErrNotFound: no record matches the lookup
// - ErrUnavailable: a backing service could not be reached
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
