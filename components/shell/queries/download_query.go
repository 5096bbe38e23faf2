package queries

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/export"
)

// ErrDownloadNotFound is returned for unknown or expired tokens.
var ErrDownloadNotFound = errors.New("queries: download not found")

type downloadStore interface {
	Get(token string) (export.File, bool)
}

// DownloadQuery fetches a delivered export by token.
type DownloadQuery struct {
	store downloadStore
}

// NewDownloadQuery builds the query.
func NewDownloadQuery(store downloadStore) *DownloadQuery {
	return &DownloadQuery{store: store}
}

var _ gocommand.Querier[string, export.File] = (*DownloadQuery)(nil)

// Query returns the file for token.
func (q *DownloadQuery) Query(_ context.Context, token string) (export.File, error) {
	if q.store == nil {
		return export.File{}, errors.New("download query requires store")
	}
	file, ok := q.store.Get(token)
	if !ok {
		return export.File{}, fmt.Errorf("%w: %s", ErrDownloadNotFound, token)
	}
	return file, nil
}
