// Package upload sends batches of files to the document service one at a time.
package upload

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openmined/pdfdesk/internal/pdfsdk"
)

// Source is how a batch was assembled. Only dropped batches are filtered client-side.
type Source int

const (
	SourcePicker Source = iota
	SourceDrop
)

func (s Source) String() string {
	if s == SourceDrop {
		return "drop"
	}
	return "picker"
}

type Uploader interface {
	Upload(ctx context.Context, params *pdfsdk.UploadParams) (*pdfsdk.Document, error)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Progress struct {
	Current int
	Total   int
}

// Result is the terminal state of one batch.
type Result struct {
	Uploaded []*pdfsdk.Document
	Errors   []FileError
	Skipped  int
	Notice   string
	Progress Progress

	// Refreshed is false only for batches that never reached a transfer.
	Refreshed  bool
	RefreshErr error

	// AuthErr is the first transfer rejected with a 401, nil otherwise.
	AuthErr error

	noValidFiles bool
}

// Err is ErrNoValidFiles, a *BatchError, or nil.
func (r *Result) Err() error {
	if r.noValidFiles {
		return ErrNoValidFiles
	}
	if len(r.Errors) > 0 {
		return &BatchError{Errors: r.Errors}
	}
	return nil
}

type Orchestrator struct {
	uploader  Uploader
	refresher Refresher
	reporter  Reporter
}

type Option func(*Orchestrator)

func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

func NewOrchestrator(uploader Uploader, refresher Refresher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		uploader:  uploader,
		refresher: refresher,
		reporter:  nopReporter{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run uploads candidates sequentially. Every file is attempted even when earlier ones
// fail or ctx is cancelled; each failure is recorded and the list is refreshed once at the end.
func (o *Orchestrator) Run(ctx context.Context, source Source, candidates []Candidate) *Result {
	res := &Result{}
	if len(candidates) == 0 {
		return res
	}

	batch := candidates
	if source == SourceDrop {
		batch = make([]Candidate, 0, len(candidates))
		for _, c := range candidates {
			if c.IsPDF() {
				batch = append(batch, c)
			}
		}

		res.Skipped = len(candidates) - len(batch)
		if len(batch) == 0 {
			res.noValidFiles = true
			return res
		}
		if res.Skipped > 0 {
			res.Notice = MsgSomeSkipped
		}
	}

	total := len(batch)
	res.Progress = Progress{Total: total}
	slog.Debug("upload batch", "source", source, "files", total, "skipped", res.Skipped)

	o.reporter.Start(total)
	for i, c := range batch {
		doc, err := o.uploader.Upload(ctx, &pdfsdk.UploadParams{
			Name:        c.Name,
			Size:        c.Size,
			ContentType: c.MediaType,
			Open:        c.Open,
		})
		if err != nil {
			slog.Debug("upload failed", "file", c.Name, "error", err)
			if res.AuthErr == nil && errors.Is(err, pdfsdk.ErrUnauthorized) {
				res.AuthErr = err
			}
			res.Errors = append(res.Errors, FileError{
				FileName: c.Name,
				Message:  pdfsdk.ErrorDetail(err, MsgUploadFailed),
			})
		} else {
			res.Uploaded = append(res.Uploaded, doc)
		}

		res.Progress.Current = i + 1
		o.reporter.Update(i+1, c.Name)
	}
	o.reporter.Finish()

	res.Refreshed = true
	if err := o.refresher.Refresh(ctx); err != nil {
		slog.Warn("refresh after upload", "error", err)
		res.RefreshErr = err
	}

	return res
}
