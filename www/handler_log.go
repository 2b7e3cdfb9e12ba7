package www

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkarvinen/spotadvisor-go/database"
)

type logEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Attrs     string    `json:"attrs,omitempty"`
}

func NewLogHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "page_size", 50)

		rows, err := db.GetLogEntries(r.Context(), slog.LevelDebug, page, pageSize)
		if err != nil {
			logger.Error("handling log request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		entries := make([]logEntry, len(rows))
		for i, row := range rows {
			entries[i] = logEntry{
				Timestamp: row.Timestamp,
				Level:     slog.Level(row.Level).String(),
				Message:   row.Message,
				Attrs:     row.Attrs,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Error("handling log request", slog.Any("error", err))
		}
	}
}
