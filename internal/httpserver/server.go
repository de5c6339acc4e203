// internal/httpserver/server.go
//
// HTTP server wiring for the Hidden Word Finder.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/" (browser page), "/health", "/debug/words", POST /game/new.
//   - Game endpoints (require the game's token): state, reset, guess, input,
//     delete, and a WebSocket stream of state updates.
//   - Background sweep of idle games.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Tokens are HS256 JWTs scoped to one game ID (see auth.go).

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiddenwords/assets"
	"github.com/robalobadob/hiddenwords/internal/config"
	"github.com/robalobadob/hiddenwords/internal/countdown"
	"github.com/robalobadob/hiddenwords/internal/game"
	"github.com/robalobadob/hiddenwords/internal/store"
)

// Server bundles router, game registry, and the rules new games are built from.
type Server struct {
	r     *chi.Mux
	store store.Store
	rules *game.Rules
	cfg   config.Config
	clock countdown.Clock
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, rules *game.Rules, cfg config.Config) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		store: st,
		rules: rules,
		cfg:   cfg,
		clock: countdown.SystemClock{},
		now:   time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	s.r.Get("/", s.handleIndex)

	// WebSocket streams outlive the request timeout and set their own headers.
	s.r.With(s.requireGameToken).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"words": len(s.rules.Words()), "games": s.store.Len()})
		})

		// Game endpoints: anyone may start one; the rest need its token.
		r.Post("/game/new", s.handleNewGame)

		g := r.With(s.requireGameToken)
		g.Get("/game/{id}", s.handleGetGame)
		g.Post("/game/{id}/reset", s.handleReset)
		g.Post("/game/{id}/guess", s.handleGuess)
		g.Put("/game/{id}/input", s.handleInput)
		g.Delete("/game/{id}", s.handleDeleteGame)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// RunSweeper removes games idle longer than the configured TTL every interval
// until ctx is cancelled.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.now().Add(-s.cfg.IdleTTL)); n > 0 {
				log.Info().Int("removed", n).Int("live", s.store.Len()).Msg("swept idle games")
			}
		}
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- page --------------------------------------

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := assets.IndexHTML()
	if err != nil {
		log.Error().Err(err).Msg("read index.html")
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// ------------------------------- small util --------------------------------

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
