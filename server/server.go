// Package server exposes one engine session over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"geister/agent"
	"geister/engine"
	"geister/game"
	"geister/store"
)

// SessionID is the store key of the served session.
const SessionID = "default"

// Server serializes every call into its session through one mutex.
type Server struct {
	r *chi.Mux

	mu      sync.Mutex
	session *engine.Session
	store   store.Store
}

func New(session *engine.Session, st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), session: session, store: st}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/state", s.handleState)
	s.r.Post("/reset", s.handleReset)
	s.r.Post("/first", s.handleFirst)
	s.r.Post("/move", s.handleMove)
	s.r.Post("/color", s.handleColor)
	s.r.Post("/undo", s.handleUndo)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no route %s", r.URL.Path))
	})
	return s
}

// Restore loads the saved session, if there is one.
func (s *Server) Restore(ctx context.Context) error {
	saved, err := s.store.Load(ctx, SessionID)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Msg("no saved session, starting fresh")
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Restore(saved); err != nil {
		return err
	}
	log.Info().Stringer("phase", s.session.Phase()).Msg("restored session")
	return nil
}

func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ payloads -----------------------------------

type firstReq struct {
	First string `json:"first"` // "self" | "opponent"
}

type moveReq struct {
	X   int    `json:"x"`
	Y   int    `json:"y"`
	Dir string `json:"dir"` // n/e/w/s
}

type colorReq struct {
	Color string `json:"color"` // r/b/red/blue
}

// reply is the automated side's move, also in the opponent's coordinates.
type reply struct {
	Move     game.Move  `json:"move"`
	Notation string     `json:"notation"`
	Reversed string     `json:"reversed"`
	Rule     agent.Rule `json:"rule"`
}

type stepRes struct {
	Move  *game.Move  `json:"move,omitempty"`
	Reply *reply      `json:"reply,omitempty"`
	View  engine.View `json:"view"`
}

type undoRes struct {
	Undone bool        `json:"undone"`
	View   engine.View `json:"view"`
}

// ------------------------------ handlers -----------------------------------

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	view := s.session.View()
	s.mu.Unlock()

	etag := fmt.Sprintf(`"%x"`, uint64(view.Hash))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Reset()
	s.save(r.Context())
	writeJSON(w, http.StatusOK, stepRes{View: s.session.View()})
}

func (s *Server) handleFirst(w http.ResponseWriter, r *http.Request) {
	var req firstReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad json: %w", err))
		return
	}
	first, err := game.ParsePlayer(req.First)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.session.Game().MovesPlayed
	if err := s.session.ChooseFirst(first); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.save(r.Context())
	writeJSON(w, http.StatusOK, stepRes{Reply: s.replySince(before), View: s.session.View()})
}

// handleMove plays the opponent's move and, when the automated side is to
// move next, its reply.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad json: %w", err))
		return
	}
	dir, err := game.ParseDirection(req.Dir)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	move, err := s.session.PlayOpponent(req.X, req.Y, dir)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	res := stepRes{Move: &move}
	if s.session.Phase() == game.AutomatedSideToMove {
		before := s.session.Game().MovesPlayed
		if err := s.session.Advance(); err != nil {
			s.save(r.Context())
			writeError(w, statusFor(err), err)
			return
		}
		res.Reply = s.replySince(before)
	}
	s.save(r.Context())
	res.View = s.session.View()
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	var req colorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("bad json: %w", err))
		return
	}
	color, err := game.ParseColor(req.Color)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.DiscloseColor(color); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	s.save(r.Context())
	writeJSON(w, http.StatusOK, stepRes{View: s.session.View()})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	undone := s.session.Undo()
	s.save(r.Context())
	writeJSON(w, http.StatusOK, undoRes{Undone: undone, View: s.session.View()})
}

// replySince reports the automated move played after the session had seen
// before moves, if there was one.
func (s *Server) replySince(before int) *reply {
	g := s.session.Game()
	if g.MovesPlayed == before || g.LastMove == nil || g.LastMove.Player != game.Self {
		return nil
	}
	return &reply{
		Move:     *g.LastMove,
		Notation: g.LastMove.String(),
		Reversed: g.LastMove.Reversed(),
		Rule:     s.session.LastDecision().Rule,
	}
}

// save persists the session. Failures are logged, the game goes on in memory.
func (s *Server) save(ctx context.Context) {
	if err := s.store.Save(ctx, SessionID, s.session.Export()); err != nil {
		log.Error().Err(err).Msg("save session")
	}
}

// ------------------------------ helpers ------------------------------------

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrWrongPhase):
		return http.StatusConflict
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrNotOpponentPiece),
		errors.Is(err, game.ErrPieceNotFound),
		errors.Is(err, game.ErrInvalidColor):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrInvalidDirection),
		errors.Is(err, game.ErrInvalidPlayer):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
