package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// memoryStorage records saved and deleted URLs instead of touching disk.
type memoryStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (m *memoryStorage) Save(_ context.Context, folder, filename, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := fmt.Sprintf("/uploads/%s/%d-%s", folder, len(m.saved)+1, filename)
	m.saved = append(m.saved, url)
	return url, nil
}

func (m *memoryStorage) Delete(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *memoryStorage) Saved() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.saved...)
}

func (m *memoryStorage) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

const (
	callerIDHeader   = "X-Test-User-ID"
	callerRoleHeader = "X-Test-Role"
)

// fakeCaller stands in for the JWT middleware: it trusts two test headers.
func fakeCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(callerIDHeader); raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 32)
			c.Set(middleware.UserIDKey, uint(id))
			c.Set(middleware.UserNameKey, "tester-"+raw)
			c.Set(middleware.UserRoleKey, model.UserRole(c.GetHeader(callerRoleHeader)))
		}
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(fakeCaller())
	return router
}

type caller struct {
	id   uint
	role model.UserRole
}

var guest caller

func (c caller) apply(req *http.Request) {
	if c.id == 0 {
		return
	}
	req.Header.Set(callerIDHeader, strconv.FormatUint(uint64(c.id), 10))
	req.Header.Set(callerRoleHeader, string(c.role))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, as caller, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	as.apply(req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type formFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func doMultipart(t *testing.T, router *gin.Engine, path string, as caller, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	as.apply(req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// errorCode returns the "error" field of a failure envelope.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	code, _ := decodeBody(t, w)["error"].(string)
	return code
}

// entityID reads body[key].id as a uint.
func entityID(t *testing.T, w *httptest.ResponseRecorder, key string) uint {
	t.Helper()
	entity, ok := decodeBody(t, w)[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %s", key, w.Body.String())
	id, ok := entity["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func pngFile(field string) formFile {
	return formFile{field: field, filename: "photo.png", contentType: "image/png", content: []byte("\x89PNG fake")}
}
