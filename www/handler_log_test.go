package www

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkarvinen/spotadvisor-go/database"
)

func TestLogHandler(t *testing.T) {
	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.SaveLogEntry(context.Background(), database.LogEntryRow{
		Timestamp: time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
		Level:     int(slog.LevelWarn),
		Message:   "feed slow",
	}))

	handler := NewLogHandler(slog.Default(), db)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/log?page=1&page_size=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []logEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "feed slow", entries[0].Message)
	assert.Equal(t, slog.LevelWarn.String(), entries[0].Level)
}
