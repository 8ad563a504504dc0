package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func doGet(t *testing.T, handlerFunc func(echo.Context) error, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, handlerFunc(c))
	return rec
}

func TestHealth(t *testing.T) {
	upstream := fakeCompletionUpstream(t, "ok")
	defer upstream.Close()
	h, _ := newTestHandler(t, upstream.URL)

	rec := doGet(t, h.Health, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "completion", resp["mode"])
	assert.Equal(t, true, resp["vendor_configured"])
	assert.Contains(t, resp, "metrics")
}

func TestStats(t *testing.T) {
	upstream := fakeCompletionUpstream(t, "ok")
	defer upstream.Close()
	h, _ := newTestHandler(t, upstream.URL)

	rec := doChat(t, h, `{"messages":[{"role":"user","content":"travel question"}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec2 := doGet(t, h.Stats, "/stats")
	assert.Equal(t, http.StatusOK, rec2.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp))
	assert.Equal(t, "gpt-4o-mini", resp["model"])
	assert.Equal(t, float64(1), resp["conversations_logged"])

	m, ok := resp["metrics"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(1), m["total_requests"])
}

func TestTestEndpoint(t *testing.T) {
	upstream := fakeCompletionUpstream(t, "ok")
	defer upstream.Close()
	h, _ := newTestHandler(t, upstream.URL)

	rec := doGet(t, h.Test, "/test")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "travdif-concierge", resp["service"])
}
