package upload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestFileCandidate_SniffsContent(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, filepath.Join(dir, "report.pdf"), minimalPDF)
	// the extension lies, the content decides
	fake := writeFile(t, filepath.Join(dir, "fake.pdf"), "just some text\n")

	c, err := FileCandidate(doc)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", c.Name)
	assert.Equal(t, pdfsdk.MediaTypePDF, c.MediaType)
	assert.Equal(t, int64(len(minimalPDF)), c.Size)
	assert.True(t, c.IsPDF())

	rc, err := c.Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	c, err = FileCandidate(fake)
	require.NoError(t, err)
	assert.False(t, c.IsPDF())

	_, err = FileCandidate(dir)
	assert.Error(t, err)
}

func TestCollectCandidates(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "nested", "b.pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "nested", "deeper", "c.pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "nested", "notes.txt"), "hello")

	t.Run("glob", func(t *testing.T) {
		got, err := CollectCandidates([]string{filepath.Join(dir, "**", "*.pdf")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.pdf", "b.pdf", "c.pdf"}, names(got))
	})

	t.Run("directory walks recursively", func(t *testing.T) {
		got, err := CollectCandidates([]string{filepath.Join(dir, "nested")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"b.pdf", "c.pdf", "notes.txt"}, names(got))
	})

	t.Run("duplicates are dropped and order kept", func(t *testing.T) {
		got, err := CollectCandidates([]string{a, filepath.Join(dir, "nested", "b.pdf"), a})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(got))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CollectCandidates([]string{filepath.Join(dir, "missing.pdf")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("glob without matches", func(t *testing.T) {
		_, err := CollectCandidates([]string{filepath.Join(dir, "*.docx")})
		assert.Error(t, err)
	})
}

func TestCollectCandidates_GlobCharactersInNames(t *testing.T) {
	dir := t.TempDir()
	bracketed := writeFile(t, filepath.Join(dir, "report [final].pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "{draft}", "outline.pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "scans", "page1.pdf"), minimalPDF)
	writeFile(t, filepath.Join(dir, "scans", "page2.pdf"), minimalPDF)

	t.Run("existing file is taken literally", func(t *testing.T) {
		got, err := CollectCandidates([]string{bracketed})
		require.NoError(t, err)
		assert.Equal(t, []string{"report [final].pdf"}, names(got))
	})

	t.Run("existing directory is taken literally", func(t *testing.T) {
		got, err := CollectCandidates([]string{filepath.Join(dir, "{draft}")})
		require.NoError(t, err)
		assert.Equal(t, []string{"outline.pdf"}, names(got))
	})

	t.Run("mixed with a real glob", func(t *testing.T) {
		got, err := CollectCandidates([]string{bracketed, filepath.Join(dir, "scans", "*.pdf")})
		require.NoError(t, err)
		assert.Equal(t, []string{"report [final].pdf", "page1.pdf", "page2.pdf"}, names(got))
	})
}

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)

	r.Start(2)
	r.Update(1, "a.pdf")
	r.Update(2, "b.pdf")
	r.Finish()

	assert.Equal(t, "Uploading 2 file(s)\n[1/2] a.pdf\n[2/2] b.pdf\n", buf.String())
}

func TestBarReporter_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)

	r.Start(1)
	r.Update(1, "a.pdf")
	r.Finish()

	assert.NotEmpty(t, buf.String())
}
