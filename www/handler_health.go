package www

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tkarvinen/spotadvisor-go/cache"
)

type healthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Cache   *cache.Stats `json:"cache,omitempty"`
}

func NewHealthHandler(logger *slog.Logger, priceCache *cache.PriceCache, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Version: version}
		if priceCache != nil {
			stats := priceCache.Stats()
			resp.Cache = &stats
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("handling health request", slog.Any("error", err))
		}
	}
}
