package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"geister/agent"
	"geister/engine"
	"geister/game"
	"geister/store"
)

func newServer(t *testing.T, st store.Store) *Server {
	session := engine.NewSession(agent.NewRulePolicy(agent.WithSeed(1)))
	s := New(session, st)
	require.NoError(t, s.Restore(context.Background()))
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newServer(t, store.NewMemory())

	rec := do(t, s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestState(t *testing.T) {
	s := newServer(t, store.NewMemory())

	rec := do(t, s, http.MethodGet, "/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	view := decode[engine.View](t, rec)
	require.Equal(t, game.AwaitingFirstPlayerChoice, view.Phase)
	require.Equal(t, game.NewGame().Hash(), view.Hash)
	require.Contains(t, body, `"phase":"awaiting_first_player_choice"`)
	require.Equal(t, body, rec.Body.String(), "Decoding leaves the body readable")

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	s.Router().ServeHTTP(cached, req)
	require.Equal(t, http.StatusNotModified, cached.Code)
}

func TestPlay(t *testing.T) {
	st := store.NewMemory()
	s := newServer(t, st)

	rec := do(t, s, http.MethodPost, "/move", `{"x":1,"y":1,"dir":"s"}`)
	require.Equal(t, http.StatusConflict, rec.Code, "No first player yet")

	rec = do(t, s, http.MethodPost, "/first", `{"first":"opponent"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[stepRes](t, rec)
	require.Nil(t, first.Reply)
	require.Equal(t, game.AwaitingOpponentMove, first.View.Phase)

	rec = do(t, s, http.MethodPost, "/move", `{"x":1,"y":1,"dir":"s"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	step := decode[stepRes](t, rec)
	require.NotNil(t, step.Move)
	require.Equal(t, "(1,1,s)", step.Move.String())
	require.NotNil(t, step.Reply)
	require.Equal(t, game.Self, step.Reply.Move.Player)
	require.Equal(t, agent.RuleAttackRed, step.Reply.Rule)
	require.Equal(t, step.Reply.Move.Reversed(), step.Reply.Reversed)
	require.Equal(t, game.AwaitingOpponentMove, step.View.Phase)
	require.Equal(t, 2, step.View.MovesPlayed)

	saved, err := st.Load(context.Background(), SessionID)
	require.NoError(t, err)
	require.Equal(t, 2, saved.Game.MovesPlayed)

	rec = do(t, s, http.MethodPost, "/color", `{"color":"r"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	undo := decode[undoRes](t, rec)
	require.True(t, undo.Undone)
	require.Equal(t, 0, undo.View.MovesPlayed)
	require.Equal(t, game.AwaitingOpponentMove, undo.View.Phase)

	rec = do(t, s, http.MethodPost, "/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	reset := decode[stepRes](t, rec)
	require.Equal(t, game.AwaitingFirstPlayerChoice, reset.View.Phase)
}

func TestSelfFirst(t *testing.T) {
	s := newServer(t, store.NewMemory())

	rec := do(t, s, http.MethodPost, "/first", `{"first":"f"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[stepRes](t, rec)
	require.NotNil(t, res.Reply)
	require.Equal(t, 1, res.View.MovesPlayed)
	require.Equal(t, game.AwaitingOpponentMove, res.View.Phase)
}

func TestRejections(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/move", `{"x":`, http.StatusBadRequest},
		{"unknown direction", "/move", `{"x":1,"y":1,"dir":"q"}`, http.StatusBadRequest},
		{"self piece", "/move", `{"x":1,"y":4,"dir":"n"}`, http.StatusUnprocessableEntity},
		{"empty square", "/move", `{"x":0,"y":3,"dir":"n"}`, http.StatusUnprocessableEntity},
		{"off the board", "/move", `{"x":1,"y":0,"dir":"n"}`, http.StatusUnprocessableEntity},
		{"unknown player", "/first", `{"first":"both"}`, http.StatusBadRequest},
		{"first twice", "/first", `{"first":"self"}`, http.StatusConflict},
		{"unknown color", "/color", `{"color":"green"}`, http.StatusUnprocessableEntity},
		{"no route", "/nowhere", `{}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newServer(t, store.NewMemory())
			require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/first", `{"first":"opponent"}`).Code)
			before := s.session.Game()

			rec := do(t, s, http.MethodPost, tc.path, tc.body)

			require.Equal(t, tc.status, rec.Code)
			body := decode[map[string]string](t, rec)
			require.NotEmpty(t, body["error"])
			require.Equal(t, before, s.session.Game())
		})
	}
}

func TestCaptureAndDisclose(t *testing.T) {
	// One red left on the board at (1,4), an opponent piece two squares north
	g := game.NewGame()
	g.Phase = game.AwaitingOpponentMove
	g.FirstPlayer = game.Opponent
	for i := 1; i < 4; i++ {
		self := &g.Players[game.Self].Pieces[i]
		self.X, self.Y = game.LocCaptured, game.LocCaptured
	}
	g.Players[game.Opponent].Pieces[0].Y = 2
	g.Players[game.Opponent].Pieces[0].X = 1
	g.Players[game.Opponent].Pieces[4].X = 0 // Clear (1,1)

	st := store.NewMemory()
	require.NoError(t, st.Save(context.Background(), SessionID, engine.Saved{Game: g}))
	s := newServer(t, st)

	rec := do(t, s, http.MethodPost, "/move", `{"x":1,"y":2,"dir":"s"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	step := decode[stepRes](t, rec)
	require.Equal(t, game.AwaitingCapturedPieceColor, step.View.Phase)
	require.Equal(t, "(1,4,n)", step.Reply.Notation)
	require.Equal(t, &game.PieceRef{Owner: game.Opponent, Index: 0}, step.View.LastCaptured)

	rec = do(t, s, http.MethodPost, "/move", `{"x":2,"y":1,"dir":"s"}`)
	require.Equal(t, http.StatusConflict, rec.Code, "Color comes first")

	rec = do(t, s, http.MethodPost, "/color", `{"color":"blue"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[stepRes](t, rec)
	require.Nil(t, res.View.LastCaptured)
	require.Equal(t, 1, res.View.Counts[game.Opponent].CapturedBlue)
	require.Equal(t, game.AwaitingOpponentMove, res.View.Phase)

	undo := decode[undoRes](t, do(t, s, http.MethodPost, "/undo", ""))
	require.Equal(t, game.AwaitingCapturedPieceColor, undo.View.Phase)
}

func TestRestore(t *testing.T) {
	st := store.NewMemory()
	s := newServer(t, st)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/first", `{"first":"opponent"}`).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/move", `{"x":4,"y":1,"dir":"s"}`).Code)

	restarted := newServer(t, st)
	rec := do(t, restarted, http.MethodGet, "/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[engine.View](t, rec)
	require.Equal(t, 2, view.MovesPlayed)
	require.Equal(t, s.session.Game(), restarted.session.Game())

	undo := decode[undoRes](t, do(t, restarted, http.MethodPost, "/undo", ""))
	require.Equal(t, 0, undo.View.MovesPlayed)
}
