package upload

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives batch progress: Start once, Update after every attempt, Finish once.
type Reporter interface {
	Start(total int)
	Update(current int, name string)
	Finish()
}

// NewReporter returns a progress bar for terminals and a line reporter otherwise.
func NewReporter(w io.Writer, interactive bool) Reporter {
	if interactive {
		return &BarReporter{w: w}
	}
	return &LineReporter{w: w}
}

type BarReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Update(current int, name string) {
	if r.bar != nil {
		r.bar.Describe(name)
		_ = r.bar.Set(current)
	}
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per attempt, for CI logs and pipes.
type LineReporter struct {
	w     io.Writer
	total int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.w, "Uploading %d file(s)\n", total)
}

func (r *LineReporter) Update(current int, name string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, name)
}

func (r *LineReporter) Finish() {}

type nopReporter struct{}

func (nopReporter) Start(int)          {}
func (nopReporter) Update(int, string) {}
func (nopReporter) Finish()            {}
