package export

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	defaultDownloadTTL     = 10 * time.Minute
	defaultDownloadCleanup = time.Minute
)

// DownloadStore keeps delivered files in memory for a limited time so an
// HTTP host can serve them by token.
type DownloadStore struct {
	files    *cache.Cache
	basePath string
	newToken func() string
}

// DownloadStoreOption customizes a DownloadStore.
type DownloadStoreOption func(*DownloadStore)

// WithDownloadBasePath sets the URL prefix used to build receipt locations.
func WithDownloadBasePath(base string) DownloadStoreOption {
	return func(s *DownloadStore) {
		s.basePath = strings.TrimRight(base, "/")
	}
}

// WithTokenGenerator overrides token generation.
func WithTokenGenerator(fn func() string) DownloadStoreOption {
	return func(s *DownloadStore) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// NewDownloadStore builds a store whose entries expire after ttl.
func NewDownloadStore(ttl time.Duration, opts ...DownloadStoreOption) *DownloadStore {
	if ttl <= 0 {
		ttl = defaultDownloadTTL
	}
	cleanup := defaultDownloadCleanup
	if ttl < cleanup {
		cleanup = ttl
	}
	store := &DownloadStore{
		files:    cache.New(ttl, cleanup),
		newToken: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Deliver stores the file and returns a receipt carrying its token.
func (s *DownloadStore) Deliver(ctx context.Context, file File) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	token := s.newToken()
	s.files.Set(token, file, cache.DefaultExpiration)
	receipt := Receipt{Token: token, Filename: file.Name, Size: len(file.Data)}
	if s.basePath != "" {
		receipt.Location = s.basePath + "/" + token
	}
	return receipt, nil
}

// Get returns the file stored under token.
func (s *DownloadStore) Get(token string) (File, bool) {
	value, ok := s.files.Get(token)
	if !ok {
		return File{}, false
	}
	file, ok := value.(File)
	return file, ok
}

// Delete drops a stored file.
func (s *DownloadStore) Delete(token string) {
	s.files.Delete(token)
}

// Len reports the number of stored files, including expired ones not yet swept.
func (s *DownloadStore) Len() int {
	return s.files.ItemCount()
}
