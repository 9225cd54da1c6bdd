package upload

import (
	"errors"
	"strings"
)

const (
	MsgNoValidFiles = "Please drop valid PDF files"
	MsgSomeSkipped  = "Some files were skipped (only PDF files allowed)"
	MsgUploadFailed = "Upload failed"
)

var ErrNoValidFiles = errors.New(MsgNoValidFiles)

// FileError is one rejected transfer.
type FileError struct {
	FileName string
	Message  string
}

func (e FileError) String() string {
	return e.FileName + ": " + e.Message
}

// BatchError aggregates every failed transfer of one batch.
type BatchError struct {
	Errors []FileError
}

func (e *BatchError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		lines[i] = fe.String()
	}
	return strings.Join(lines, "\n")
}
