package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/utils"
)

// Candidate is one file offered for upload.
type Candidate struct {
	Name      string
	Size      int64
	MediaType string
	Open      func() (io.ReadCloser, error)
}

func (c Candidate) IsPDF() bool {
	return c.MediaType == pdfsdk.MediaTypePDF
}

// FileCandidate stats path and sniffs its media type from content.
func FileCandidate(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, err
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s: is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("detect media type of %s: %w", path, err)
	}

	mediaType := mtype.String()
	if mtype.Is(pdfsdk.MediaTypePDF) {
		mediaType = pdfsdk.MediaTypePDF
	}

	return Candidate{
		Name:      filepath.Base(path),
		Size:      info.Size(),
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// CollectCandidates expands globs and directories into files, keeping the
// argument order and dropping duplicates.
func CollectCandidates(paths []string) ([]Candidate, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	files := make([]string, 0, len(paths))

	add := func(path string) {
		if seen.Add(path) {
			files = append(files, path)
		}
	}

	for _, arg := range paths {
		arg, err := utils.ResolvePath(arg)
		if err != nil {
			return nil, err
		}

		// an existing path is taken literally, even with glob characters in its name
		info, err := os.Stat(arg)
		if errors.Is(err, fs.ErrNotExist) && isPattern(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expand %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%q: no files matched", arg)
			}
			for _, m := range matches {
				add(m)
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(arg), "**", doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		for _, m := range matches {
			add(filepath.Join(arg, filepath.FromSlash(m)))
		}
	}

	candidates := make([]Candidate, 0, len(files))
	for _, path := range files {
		c, err := FileCandidate(path)
		if err != nil {
			// files can disappear between the walk and the stat
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

