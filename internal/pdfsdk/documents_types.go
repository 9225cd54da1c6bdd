package pdfsdk

import "io"

const MediaTypePDF = "application/pdf"

// Document is the server's record of an uploaded PDF. Clients hold read-only copies.
type Document struct {
	ID         int64     `json:"id" yaml:"id"`
	Filename   string    `json:"filename" yaml:"filename"`
	UploadedAt Timestamp `json:"uploaded_at" yaml:"uploaded_at"`
	OwnerID    int64     `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
}

type UploadParams struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}
