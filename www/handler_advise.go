package www

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tkarvinen/spotadvisor-go/config"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// NewAdviseHandler serves the advisory endpoint: parse minutes/lang, run the
// engine, translate typed failures into status codes. The response body is
// the localized advisory as plain text, ready for a voice assistant to read.
func NewAdviseHandler(logger *slog.Logger, cnfg config.AppConfigAdvisor, adv Adviser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		minutes := cnfg.GetDefaultMinutes()
		if v := r.URL.Query().Get("minutes"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				http.Error(w, "minutes must be a positive integer", http.StatusBadRequest)
				return
			}
			minutes = parsed
		}

		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = cnfg.GetDefaultLanguage()
		}

		msg, err := adv.Advise(r.Context(), types.WindowRequest{
			DurationMinutes: minutes,
			Now:             time.Now().UTC(),
			Language:        lang,
		})
		if err != nil {
			logger.Warn("advise request failed",
				slog.Int("minutes", minutes),
				slog.String("lang", lang),
				slog.Any("error", err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, msg)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInsufficientHorizon):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrUpstreamUnavailable), errors.Is(err, types.ErrUpstreamMalformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
