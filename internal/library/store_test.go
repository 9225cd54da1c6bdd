package library

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	docs      []*pdfsdk.Document
	listErr   error
	deleteErr error

	listCalls   int
	getCalls    int
	deleteCalls []int64
}

func (f *fakeAPI) List(context.Context) ([]*pdfsdk.Document, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.docs, nil
}

func (f *fakeAPI) Get(_ context.Context, id int64) (*pdfsdk.Document, error) {
	f.getCalls++
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("pdf get: %w", &pdfsdk.APIError{Status: 404, Detail: "PDF not found"})
}

func (f *fakeAPI) Delete(_ context.Context, id int64) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func docs(ids ...int64) []*pdfsdk.Document {
	out := make([]*pdfsdk.Document, 0, len(ids))
	for _, id := range ids {
		out = append(out, &pdfsdk.Document{ID: id, Filename: fmt.Sprintf("doc-%d.pdf", id)})
	}
	return out
}

func ids(list []*pdfsdk.Document) []int64 {
	out := make([]int64, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}

func newTestStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	s, err := New(api)
	require.NoError(t, err)
	return s
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	api := &fakeAPI{docs: docs(1, 2, 3)}
	s := newTestStore(t, api)

	require.NoError(t, s.Refresh(t.Context()))
	assert.Equal(t, []int64{1, 2, 3}, ids(s.Documents()))

	api.docs = docs(4)
	require.NoError(t, s.Refresh(t.Context()))
	assert.Equal(t, []int64{4}, ids(s.Documents()))
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(4))
}

func TestRefresh_FailureKeepsPreviousList(t *testing.T) {
	api := &fakeAPI{docs: docs(1, 2)}
	s := newTestStore(t, api)
	require.NoError(t, s.Refresh(t.Context()))

	api.listErr = pdfsdk.ErrConnection
	err := s.Refresh(t.Context())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, pdfsdk.ErrConnection)
	assert.Equal(t, MsgFetchFailed, UserMessage(err))
	assert.Equal(t, []int64{1, 2}, ids(s.Documents()))
}

func TestDocuments_ReturnsCopies(t *testing.T) {
	s := newTestStore(t, &fakeAPI{docs: docs(1)})
	require.NoError(t, s.Refresh(t.Context()))

	s.Documents()[0].Filename = "mutated"
	assert.Equal(t, "doc-1.pdf", s.Documents()[0].Filename)
}

func TestDelete(t *testing.T) {
	t.Run("declined makes no remote call", func(t *testing.T) {
		api := &fakeAPI{docs: docs(1, 2)}
		s := newTestStore(t, api)
		require.NoError(t, s.Refresh(t.Context()))

		var asked string
		err := s.Delete(t.Context(), 1, ConfirmFunc(func(prompt string) (bool, error) {
			asked = prompt
			return false, nil
		}))
		assert.ErrorIs(t, err, ErrDeleteDeclined)
		assert.Equal(t, DeletePrompt, asked)
		assert.Empty(t, api.deleteCalls)
		assert.Equal(t, []int64{1, 2}, ids(s.Documents()))
	})

	t.Run("confirmed removes exactly that record", func(t *testing.T) {
		api := &fakeAPI{docs: docs(1, 2, 3)}
		s := newTestStore(t, api)
		require.NoError(t, s.Refresh(t.Context()))

		require.NoError(t, s.Delete(t.Context(), 2, AlwaysConfirm))
		assert.Equal(t, []int64{2}, api.deleteCalls)
		assert.Equal(t, []int64{1, 3}, ids(s.Documents()))
		assert.False(t, s.Contains(2))
	})

	t.Run("remote failure leaves the list unchanged", func(t *testing.T) {
		api := &fakeAPI{docs: docs(1, 2), deleteErr: &pdfsdk.APIError{Status: 500}}
		s := newTestStore(t, api)
		require.NoError(t, s.Refresh(t.Context()))

		err := s.Delete(t.Context(), 1, AlwaysConfirm)
		assert.ErrorIs(t, err, ErrDeleteFailed)
		assert.Equal(t, MsgDeleteFailed, UserMessage(err))
		assert.Equal(t, []int64{1, 2}, ids(s.Documents()))
	})

	t.Run("confirmer error", func(t *testing.T) {
		api := &fakeAPI{}
		s := newTestStore(t, api)
		boom := errors.New("tty closed")

		err := s.Delete(t.Context(), 1, ConfirmFunc(func(string) (bool, error) { return false, boom }))
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, api.deleteCalls)
	})
}

func TestLookup_UsesCache(t *testing.T) {
	api := &fakeAPI{docs: docs(1, 2)}
	s := newTestStore(t, api)

	doc, err := s.Lookup(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.ID)

	_, err = s.Lookup(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, api.getCalls)

	// refreshed records are cached too
	require.NoError(t, s.Refresh(t.Context()))
	_, err = s.Lookup(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, api.getCalls)
}

func TestLookup_NotFound(t *testing.T) {
	s := newTestStore(t, &fakeAPI{})

	_, err := s.Lookup(t.Context(), 99)
	assert.ErrorIs(t, err, pdfsdk.ErrNotFound)
	assert.Equal(t, MsgNotFound, UserMessage(err))
}
