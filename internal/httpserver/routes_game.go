// internal/httpserver/routes_game.go
//
// Game routes: the presentation boundary of the hidden word game.
//   - POST   /game/new         → create a game, return its id, token, and state
//   - GET    /game/{id}        → current state
//   - POST   /game/{id}/reset  → start a new game in the same slot
//   - POST   /game/{id}/guess  → submit a guess
//   - PUT    /game/{id}/input  → record the current input text
//   - DELETE /game/{id}        → stop the countdown and forget the game
//
// Every response that carries state uses game.View, so clients render the
// same shape whether it came from a request or the WebSocket stream.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hiddenwords/internal/daily"
	"github.com/robalobadob/hiddenwords/internal/game"
	"github.com/robalobadob/hiddenwords/internal/puzzle"
	"github.com/robalobadob/hiddenwords/internal/session"
	"github.com/robalobadob/hiddenwords/internal/store"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Daily bool `json:"daily"` // same puzzle for everyone today
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Date      string    `json:"date,omitempty"`
	State     game.View `json:"state"`
}

// handleNewGame creates a game session and its countdown.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body means a regular game.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	rules := s.rules
	var date string
	if req.Daily {
		date = daily.DateKey(s.now())
		salt := s.cfg.DailySalt
		rules = rules.WithSourceFunc(func() puzzle.Source { return daily.Source(s.now(), salt) })
	}

	id := genID()
	logger := log.With().Str("gameId", id).Logger()
	ctrl := session.New(rules, s.clock, session.WithLogger(logger))
	if err := s.store.Save(r.Context(), id, ctrl); err != nil {
		ctrl.Close()
		logger.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signGameToken(id)
	if err != nil {
		_ = s.store.Delete(r.Context(), id)
		logger.Error().Err(err).Msg("sign token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}

	logger.Info().Bool("daily", req.Daily).Msg("game created")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: id, Token: tok, ExpiresAt: exp, Date: date, State: ctrl.View()})
}

// gameFor loads {id} from the store, writing a 404 when it is gone.
func (s *Server) gameFor(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	ctrl, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		} else {
			http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		}
		return nil, false
	}
	return ctrl, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(ctrl.View())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(ctrl.StartNewGame())
}

// guessReq is the payload for POST /game/{id}/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	ctrl, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(ctrl.SubmitGuess(req.Guess))
}

// inputReq is the payload for PUT /game/{id}/input.
type inputReq struct {
	Text string `json:"text"`
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	ctrl, ok := s.gameFor(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(ctrl.UpdateInput(req.Text))
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
		return
	}
	log.Info().Str("gameId", id).Msg("game deleted")
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
