package render

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal well-formed pdf with one page per media box.
func buildPDF(t *testing.T, boxes ...[2]int) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := []int{}
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := range boxes {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, len(boxes)))

	for _, b := range boxes {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Resources << >> >>", b[0], b[1]))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

type recordingSignals struct {
	total  int
	errMsg string
	calls  int
}

func (r *recordingSignals) SetTotalPages(n int)     { r.total = n; r.calls++ }
func (r *recordingSignals) SetLoadError(msg string) { r.errMsg = msg; r.calls++ }

func newTestServer(t *testing.T, pdf []byte) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/pdf/:id/view", func(c *gin.Context) {
		if c.Query("token") != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}
		// the engine must not carry an api credential of its own
		if c.GetHeader("Authorization") != "" {
			c.Status(http.StatusBadRequest)
			return
		}
		if c.Param("id") != "1" {
			c.JSON(http.StatusNotFound, gin.H{"detail": "PDF not found"})
			return
		}
		c.Data(http.StatusOK, "application/pdf", pdf)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoad_ParsesPages(t *testing.T) {
	srv := newTestServer(t, buildPDF(t, [2]int{612, 792}, [2]int{842, 595}))
	e := NewEngine()
	t.Cleanup(e.Close)

	doc, err := e.Load(t.Context(), srv.URL+"/pdf/1/view?token=secret")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())

	f := doc.Describe(2, 1.0)
	assert.Equal(t, 842.0, f.Width)
	assert.Equal(t, 595.0, f.Height)
}

func TestLoadInto_Signals(t *testing.T) {
	srv := newTestServer(t, buildPDF(t, [2]int{612, 792}, [2]int{612, 792}, [2]int{612, 792}))
	e := NewEngine()
	t.Cleanup(e.Close)

	t.Run("success", func(t *testing.T) {
		sig := &recordingSignals{}
		_, err := e.LoadInto(t.Context(), srv.URL+"/pdf/1/view?token=secret", sig)
		require.NoError(t, err)
		assert.Equal(t, 3, sig.total)
		assert.Equal(t, 1, sig.calls)
	})

	t.Run("bad credential", func(t *testing.T) {
		sig := &recordingSignals{}
		_, err := e.LoadInto(t.Context(), srv.URL+"/pdf/1/view?token=nope", sig)
		assert.ErrorIs(t, err, ErrFetch)
		assert.NotContains(t, err.Error(), "nope")
		assert.Equal(t, MsgLoadFailed, sig.errMsg)
		assert.Equal(t, 1, sig.calls)
	})

	t.Run("missing document", func(t *testing.T) {
		sig := &recordingSignals{}
		_, err := e.LoadInto(t.Context(), srv.URL+"/pdf/2/view?token=secret", sig)
		assert.ErrorIs(t, err, ErrFetch)
		assert.Equal(t, MsgLoadFailed, sig.errMsg)
	})
}

func TestLoad_NotAPDF(t *testing.T) {
	srv := newTestServer(t, []byte("hello, world"))
	e := NewEngine()
	t.Cleanup(e.Close)

	_, err := e.Load(t.Context(), srv.URL+"/pdf/1/view?token=secret")
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoad_MaskedKeys(t *testing.T) {
	srv := newTestServer(t, buildPDF(t, [2]int{612, 792}))
	url := srv.URL + "/pdf/1/view?token=wrongcredential&sig=signaturevalue"

	t.Run("locator keys by default", func(t *testing.T) {
		e := NewEngine()
		t.Cleanup(e.Close)

		_, err := e.Load(t.Context(), url)
		require.ErrorIs(t, err, ErrFetch)
		assert.NotContains(t, err.Error(), "wrongcredential")
		assert.Contains(t, err.Error(), "signaturevalue")
	})

	t.Run("explicit keys", func(t *testing.T) {
		e := NewEngine(WithMaskedKeys("token", "sig"))
		t.Cleanup(e.Close)

		_, err := e.Load(t.Context(), url)
		require.ErrorIs(t, err, ErrFetch)
		assert.NotContains(t, err.Error(), "wrongcredential")
		assert.NotContains(t, err.Error(), "signaturevalue")
	})
}
