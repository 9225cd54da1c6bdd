package pdfsdk

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok+en/with=chars"

func newTestServer(t *testing.T, register func(r *gin.Engine)) (*PDFSDK, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	sdk, err := New(srv.URL)
	require.NoError(t, err)
	t.Cleanup(sdk.Close)

	return sdk, srv
}

func requireBearer(c *gin.Context) bool {
	if c.GetHeader("Authorization") != "Bearer "+testToken {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return false
	}
	return true
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("not-a-url")
	assert.ErrorIs(t, err, ErrNoServerURL)
}

func TestLogin_SendsFormAndParsesToken(t *testing.T) {
	sdk, _ := newTestServer(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			assert.Equal(t, "application/x-www-form-urlencoded", c.ContentType())
			if c.PostForm("username") != "alice" || c.PostForm("password") != "hunter22" {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"access_token": testToken, "token_type": "bearer"})
		})
	})

	resp, err := sdk.Auth.Login(t.Context(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, testToken, resp.AccessToken)

	_, err = sdk.Auth.Login(t.Context(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Incorrect username or password", ErrorDetail(err, "fallback"))
}

func TestMe_AttachesBearerAndHeaders(t *testing.T) {
	sdk, _ := newTestServer(t, func(r *gin.Engine) {
		r.GET("/auth/me", func(c *gin.Context) {
			if !requireBearer(c) {
				return
			}
			assert.NotEmpty(t, c.GetHeader(HeaderRequestID))
			assert.NotEmpty(t, c.GetHeader(HeaderDeviceID))
			assert.True(t, strings.HasPrefix(c.GetHeader(HeaderUserAgent), "PDFDesk/"))
			c.JSON(http.StatusOK, gin.H{
				"id":         1,
				"email":      "alice@example.com",
				"username":   "alice",
				"created_at": "2024-05-01T10:20:30.123456",
			})
		})
	})

	_, err := sdk.Auth.Me(t.Context())
	assert.ErrorIs(t, err, ErrUnauthorized)

	sdk.SetToken(testToken)
	user, err := sdk.Auth.Me(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.UTC), user.CreatedAt.Time)

	sdk.SetToken("")
	_, err = sdk.Auth.Me(t.Context())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDocuments_ListGetDelete(t *testing.T) {
	sdk, _ := newTestServer(t, func(r *gin.Engine) {
		r.GET("/pdf/list", func(c *gin.Context) {
			c.JSON(http.StatusOK, []gin.H{
				{"id": 1, "filename": "a.pdf", "uploaded_at": "2024-05-01T10:00:00"},
				{"id": 2, "filename": "b.pdf", "uploaded_at": "2024-05-02T10:00:00Z"},
			})
		})
		r.GET("/pdf/:id", func(c *gin.Context) {
			if c.Param("id") != "1" {
				c.JSON(http.StatusNotFound, gin.H{"detail": "PDF not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"id": 1, "filename": "a.pdf", "uploaded_at": "2024-05-01T10:00:00"})
		})
		r.DELETE("/pdf/:id", func(c *gin.Context) {
			if c.Param("id") != "1" {
				c.JSON(http.StatusNotFound, gin.H{"detail": "PDF not found"})
				return
			}
			c.Status(http.StatusNoContent)
		})
	})

	docs, err := sdk.Documents.List(t.Context())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b.pdf", docs[1].Filename)

	doc, err := sdk.Documents.Get(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.ID)

	_, err = sdk.Documents.Get(t.Context(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrUnauthorized))

	assert.NoError(t, sdk.Documents.Delete(t.Context(), 1))
	assert.ErrorIs(t, sdk.Documents.Delete(t.Context(), 2), ErrNotFound)
}

func TestDocuments_UploadMultipart(t *testing.T) {
	sdk, _ := newTestServer(t, func(r *gin.Engine) {
		r.POST("/pdf/upload", func(c *gin.Context) {
			fh, err := c.FormFile("file")
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
				return
			}
			if fh.Filename == "big.pdf" {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "File size exceeds 10MB limit"})
				return
			}
			f, _ := fh.Open()
			body, _ := io.ReadAll(f)
			assert.Equal(t, "%PDF-1.4 body", string(body))
			c.JSON(http.StatusCreated, gin.H{"id": 7, "filename": fh.Filename, "uploaded_at": "2024-05-01T10:00:00"})
		})
	})

	open := func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("%PDF-1.4 body")), nil
	}

	doc, err := sdk.Documents.Upload(t.Context(), &UploadParams{Name: "a.pdf", Size: 13, Open: open})
	require.NoError(t, err)
	assert.Equal(t, int64(7), doc.ID)
	assert.Equal(t, "a.pdf", doc.Filename)

	_, err = sdk.Documents.Upload(t.Context(), &UploadParams{Name: "big.pdf", Size: 13, Open: open})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "File size exceeds 10MB limit", ErrorDetail(err, "Upload failed"))

	_, err = sdk.Documents.Upload(t.Context(), &UploadParams{Name: "x.pdf"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestHandleAPIError_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	sdk, err := New(url)
	require.NoError(t, err)

	_, err = sdk.Documents.List(t.Context())
	assert.ErrorIs(t, err, ErrConnection)
	assert.Equal(t, "Upload failed", ErrorDetail(err, "Upload failed"))
}

func TestErrorDetail_ValidationList(t *testing.T) {
	body := errorBody{Detail: []any{
		map[string]any{"msg": "field required"},
		map[string]any{"msg": "value is not a valid email address"},
	}}
	assert.Equal(t, "field required; value is not a valid email address", body.message())
	assert.Equal(t, "", (&errorBody{}).message())
}

func TestTimestamp_Formats(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2024-05-01T10:20:30Z"`)))
	assert.Equal(t, 2024, ts.Year())

	require.NoError(t, ts.UnmarshalJSON([]byte(`"2024-05-01 10:20:30"`)))
	assert.Equal(t, time.UTC, ts.Location())

	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
	assert.Error(t, ts.UnmarshalJSON([]byte(`12`)))
}
