package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tkarvinen/spotadvisor-go/cache"
	"github.com/tkarvinen/spotadvisor-go/config"
	"github.com/tkarvinen/spotadvisor-go/database"
	"github.com/tkarvinen/spotadvisor-go/types"
)

// Adviser is implemented by advisor.Advisor; the indirection keeps handler
// tests free of real upstream fetches.
type Adviser interface {
	Advise(ctx context.Context, req types.WindowRequest) (string, error)
}

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	mux    *http.ServeMux
}

func StartServer(adv Adviser, db *database.Database, priceCache *cache.PriceCache, cnfg *config.AppConfig, version string) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: cnfg.Api,
		mux:    http.NewServeMux(),
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("/", logReqMW(bearerAuth(cnfg.Api.GetToken(), NewAdviseHandler(
		logger.With(slog.String("handler", "advise")),
		cnfg.Advisor,
		adv))))

	s.mux.Handle("/health", logReqMW(NewHealthHandler(
		logger.With(slog.String("handler", "health")),
		priceCache,
		version)))

	s.mux.Handle("/log", logReqMW(bearerAuth(cnfg.Api.GetToken(), NewLogHandler(
		logger.With(slog.String("handler", "log")),
		db))))

	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "address", s.config.Address, "port", s.config.GetPort())
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Address, s.config.GetPort()),
		Handler: s.mux,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error("server error", slog.Any("error", err))
			}
			return

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}
