// Package library keeps the client's view of the user's documents.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
)

const (
	DeletePrompt = "Are you sure you want to delete this PDF?"

	MsgFetchFailed  = "Failed to fetch PDFs"
	MsgDeleteFailed = "Failed to delete PDF"
	MsgNotFound     = "PDF not found"
	MsgLoadFailed   = "Failed to load PDF"

	metadataCacheSize = 256
)

var (
	ErrFetchFailed    = errors.New("library: fetch failed")
	ErrDeleteFailed   = errors.New("library: delete failed")
	ErrDeleteDeclined = errors.New("library: delete declined")
)

// DocumentAPI is the subset of the pdf api the store talks to.
type DocumentAPI interface {
	List(ctx context.Context) ([]*pdfsdk.Document, error)
	Get(ctx context.Context, id int64) (*pdfsdk.Document, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer gates destructive operations.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// AlwaysConfirm is used for non-interactive deletes (--yes).
var AlwaysConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })

// Store holds the last fetched document list. The server is the source of truth:
// the list is only replaced wholesale by Refresh or shrunk after a confirmed delete.
type Store struct {
	api DocumentAPI

	mu   sync.RWMutex
	docs []*pdfsdk.Document
	ids  mapset.Set[int64]

	cache *lru.Cache[int64, *pdfsdk.Document]
}

func New(api DocumentAPI) (*Store, error) {
	cache, err := lru.New[int64, *pdfsdk.Document](metadataCacheSize)
	if err != nil {
		return nil, fmt.Errorf("metadata cache: %w", err)
	}

	return &Store{
		api:   api,
		ids:   mapset.NewThreadUnsafeSet[int64](),
		cache: cache,
	}, nil
}

// Refresh replaces the cached list with the server's. On failure the previous list is kept.
func (s *Store) Refresh(ctx context.Context) error {
	docs, err := s.api.List(ctx)
	if err != nil {
		slog.Debug("refresh documents", "error", err)
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	ids := mapset.NewThreadUnsafeSetWithSize[int64](len(docs))
	for _, doc := range docs {
		ids.Add(doc.ID)
		s.cache.Add(doc.ID, doc)
	}

	s.mu.Lock()
	s.docs = docs
	s.ids = ids
	s.mu.Unlock()

	return nil
}

// Documents returns a copy of the current list in server order.
func (s *Store) Documents() []*pdfsdk.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*pdfsdk.Document, len(s.docs))
	for i, doc := range s.docs {
		d := *doc
		out[i] = &d
	}
	return out
}

func (s *Store) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.Contains(id)
}

// Lookup returns a document's metadata, from the cache when it has been seen before.
func (s *Store) Lookup(ctx context.Context, id int64) (*pdfsdk.Document, error) {
	if doc, ok := s.cache.Get(id); ok {
		return doc, nil
	}

	doc, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Add(id, doc)
	return doc, nil
}

// Delete asks confirmer first; a declined prompt never reaches the server.
// The local record is removed only after the server confirms.
func (s *Store) Delete(ctx context.Context, id int64, confirmer Confirmer) error {
	ok, err := confirmer.Confirm(DeletePrompt)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrDeleteDeclined
	}

	if err := s.api.Delete(ctx, id); err != nil {
		slog.Debug("delete document", "id", id, "error", err)
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	s.cache.Remove(id)

	s.mu.Lock()
	s.docs = slices.DeleteFunc(slices.Clone(s.docs), func(d *pdfsdk.Document) bool { return d.ID == id })
	s.ids.Remove(id)
	s.mu.Unlock()

	return nil
}

// UserMessage maps store errors to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFetchFailed):
		return MsgFetchFailed
	case errors.Is(err, ErrDeleteFailed):
		return MsgDeleteFailed
	case errors.Is(err, pdfsdk.ErrNotFound):
		return MsgNotFound
	}
	return pdfsdk.ErrorDetail(err, MsgLoadFailed)
}
