// Package render loads documents through their locator URL and describes their pages.
// Painting page content is out of scope; the engine reports structure only.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imroc/req/v3"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/utils"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	MsgLoadFailed = "Failed to load PDF. Please try again."

	defaultTimeout = 60 * time.Second
)

var (
	ErrFetch   = errors.New("render: fetch failed")
	ErrParse   = errors.New("render: not a readable pdf")
	ErrNoPages = errors.New("render: document has no pages")
)

// Signals receives the outcome of a load: exactly one of the two is called.
type Signals interface {
	SetTotalPages(n int)
	SetLoadError(msg string)
}

// Engine fetches a document with a plain GET. It never sees the API client's
// Authorization header; the credential travels inside the locator URL.
type Engine struct {
	client     *req.Client
	conf       *model.Configuration
	maskedKeys []string
}

type EngineOption func(*Engine)

// WithMaskedKeys sets the query keys hidden whenever a document url is logged
// or returned in an error.
func WithMaskedKeys(keys ...string) EngineOption {
	return func(e *Engine) {
		e.maskedKeys = keys
	}
}

// NewEngine masks the locator's credential keys unless told otherwise.
func NewEngine(opts ...EngineOption) *Engine {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	client := req.C().
		SetTimeout(defaultTimeout).
		SetUserAgent(pdfsdk.UserAgent)

	e := &Engine{
		client:     client,
		conf:       conf,
		maskedKeys: new(pdfsdk.Locator).MaskedKeys(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches and parses the document at url.
func (e *Engine) Load(ctx context.Context, url string) (*Document, error) {
	masked := utils.MaskURL(url, e.maskedKeys...)

	res, err := e.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, masked, err)
	}
	if res.IsErrorState() {
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, masked, res.GetStatusCode())
	}

	body := res.Bytes()
	dims, err := api.PageDims(bytes.NewReader(body), e.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(dims) == 0 {
		return nil, ErrNoPages
	}

	slog.Debug("document loaded", "url", masked, "pages", len(dims), "bytes", len(body))

	doc := &Document{pages: make([]PageSize, len(dims))}
	for i, d := range dims {
		doc.pages[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return doc, nil
}

// LoadInto loads url and reports the outcome to sig.
func (e *Engine) LoadInto(ctx context.Context, url string, sig Signals) (*Document, error) {
	doc, err := e.Load(ctx, url)
	if err != nil {
		slog.Warn("document load failed", "error", err)
		sig.SetLoadError(MsgLoadFailed)
		return nil, err
	}

	sig.SetTotalPages(doc.PageCount())
	return doc, nil
}

func (e *Engine) Close() {
	e.client.GetTransport().CloseIdleConnections()
}
