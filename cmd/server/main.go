// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Gamgom29/multi-tanent-front/internal/auth"
	"github.com/Gamgom29/multi-tanent-front/internal/config"
	"github.com/Gamgom29/multi-tanent-front/internal/gateway"
	"github.com/Gamgom29/multi-tanent-front/internal/handlers"
	"github.com/Gamgom29/multi-tanent-front/internal/middleware"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// --- Load config (config.yaml + env overrides) ---
	cfg := config.Load()

	// --- Token store: Postgres when configured, sqlite otherwise ---
	store, err := newTokenStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("token store init")
	}
	defer store.Close()

	sessions := auth.NewManager(store, cfg.Cookie.Secure)
	api := gateway.New(cfg.API.URL)

	// --- Router ---
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID(cfg.Server.RequestIDHeader))
	mux.Use(middleware.Logger)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.SessionID(cfg.Cookie.Secure))

	allowed := cfg.Cors.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(httprate.Limit(100, time.Minute))

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Method(http.MethodGet, "/metrics", promhttp.Handler())

	handlers.RegisterRoutes(mux, api, sessions)

	// --- Start server ---
	addr := cfg.ListenAddr
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Info().Str("addr", addr).Str("api_url", cfg.API.URL).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}

func newTokenStore(cfg config.Config) (auth.TokenStore, error) {
	if cfg.Database.URL != "" {
		return auth.NewPostgresStore(context.Background(), cfg.Database.URL)
	}
	return auth.NewSQLiteStore(cfg.Session.Path)
}
