package tableorder

import (
	"context"
)

// Store defines the local persistence used by the table session: the active
// table token and the last fetched menu snapshot. Implementations are
// key-value shaped; there is no query surface.
type Store interface {
	LoadTable(ctx context.Context) (string, error)
	SaveTable(ctx context.Context, table string) error
	LoadMenu(ctx context.Context) ([]MenuItem, error)
	SaveMenu(ctx context.Context, items []MenuItem) error
}

// MenuFetcher retrieves a fresh menu snapshot from the remote source. The
// exchange is single-shot: one request, one message carrying the full item
// list, connection closed.
type MenuFetcher interface {
	FetchMenu(ctx context.Context) ([]MenuItem, error)
}
