package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkarvinen/spotadvisor-go/cache"
)

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(slog.Default(), cache.New(time.Minute), "1.2.3")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.NotNil(t, resp.Cache)
	assert.Equal(t, 0, resp.Cache.Entries)
}

func TestHealthHandlerWithoutCache(t *testing.T) {
	handler := NewHealthHandler(slog.Default(), nil, "1.2.3")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Cache)
}
