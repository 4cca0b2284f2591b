// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Stats endpoints (optional auth): GET /stats/me, POST /stats/reset.
//   - Auth endpoints: /auth/* (see auth.go).
//
// Every request is played on behalf of an owner: the signed-in user, or an
// anonymous cookie for guests. A game may only be played by its owner, and
// all guesses of one owner are serialized (see players.go).

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// Server bundles router, live game sessions, DB handle and word lists.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	words   *words.Dictionary
	cfg     config.Config
	players *players
	daily   *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, dict *words.Dictionary, cfg config.Config) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		words:   dict,
		cfg:     cfg,
		players: newPlayers(stats.NewSQLStore(db)),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-go",
			"endpoints": []string{
				"/health", "/metrics", "POST /game/new", "POST /game/guess",
				"/stats/*", "/daily/*", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Counts()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// Game + stats: guests play under an anonymous cookie.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/stats/me", s.handleStats)
		r.Post("/stats/reset", s.handleResetStats)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	go s.sweepLoop(ctx)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sweepLoop drops idle players and stale games until ctx is cancelled.
func (s *Server) sweepLoop(ctx context.Context) {
	if s.cfg.SessionIdleTTL <= 0 {
		return
	}
	t := time.NewTicker(max(s.cfg.SessionIdleTTL/4, time.Minute))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(now)
		}
	}
}

// sweep evicts state idle since now-SessionIdleTTL, along with daily games
// from earlier dates.
func (s *Server) sweep(now time.Time) {
	ctx := context.Background()
	cutoff := now.Add(-s.cfg.SessionIdleTTL)
	games := s.players.sweep(cutoff)
	for _, id := range games {
		_ = s.store.Delete(ctx, id)
	}
	dailies := s.daily.sweep(now, cutoff)
	activeSessions.Set(float64(s.store.Len()))
	if len(games) > 0 || dailies > 0 {
		log.Debug().Int("games", len(games)).Int("daily", dailies).Msg("swept idle sessions")
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
}

// handleNewGame starts a round for the caller and registers its session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Answer != "" {
		a, err := game.ParseGuess(req.Answer)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		req.Answer = a
	}

	owner := s.ownerID(w, r)
	p := s.players.get(r.Context(), owner)

	p.mu.Lock()
	defer p.mu.Unlock()

	sess := session.New(s.words, p.keeper)
	sess.Owner = owner
	round, err := sess.Start(req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	// One live game per owner: starting a new one abandons the previous.
	if p.current != "" {
		_ = s.store.Delete(r.Context(), p.current)
	}
	p.current = round.ID
	roundsStarted.WithLabelValues(modeClassic).Inc()
	activeSessions.Set(float64(s.store.Len()))

	writeJSON(w, http.StatusOK, newGameRes{GameID: round.ID})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks    []game.Mark          `json:"marks"`
	State    game.Status          `json:"state"`
	Guesses  int                  `json:"guesses"`
	Alphabet map[string]game.Mark `json:"alphabet"`
	Answer   string               `json:"answer,omitempty"` // only once the round is over
}

// handleGuess applies a guess to the caller's session. A finished session
// stays registered (answering 409) until its owner starts another game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	owner := s.ownerID(w, r)
	if err != nil || sess.Owner != owner {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	p := s.players.get(r.Context(), owner)
	p.mu.Lock()
	if p.current != req.GameID {
		// Replaced or evicted since the lookup.
		p.mu.Unlock()
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	res, err := sess.Guess(r.Context(), req.Guess)
	round := sess.Round()
	out := guessRes{
		Marks:    res.Marks,
		State:    round.Status(),
		Guesses:  round.GuessesTaken(),
		Alphabet: sess.Alphabet().Letters(),
	}
	if round.Finished() {
		out.Answer = round.Secret()
	}
	p.mu.Unlock()

	if err != nil {
		guessesTotal.WithLabelValues(resultRejected).Inc()
		writeGameError(w, err)
		return
	}
	guessesTotal.WithLabelValues(resultAccepted).Inc()

	if res.Status.Terminal() {
		roundsFinished.WithLabelValues(modeClassic, round.Status().String()).Inc()
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ STATS --------------------------------------

type statsRes struct {
	stats.Ledger
	WinPercentage float64 `json:"winPercentage"`
	Enabled       bool    `json:"enabled"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	l, enabled := s.players.ledger(r.Context(), s.ownerID(w, r))
	writeJSON(w, http.StatusOK, statsRes{Ledger: l, WinPercentage: l.WinPercentage(), Enabled: enabled})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	p := s.players.get(r.Context(), s.ownerID(w, r))
	p.mu.Lock()
	p.keeper.Reset(r.Context())
	enabled := p.keeper.Enabled()
	p.mu.Unlock()
	if !enabled {
		writeError(w, http.StatusInternalServerError, "stats_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, statsRes{Enabled: true})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeGameError maps game and session errors to status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidGuessLength), errors.Is(err, game.ErrInvalidGuessCharacters):
		writeError(w, http.StatusBadRequest, "invalid_guess")
	case errors.Is(err, game.ErrUnknownWord):
		writeError(w, http.StatusBadRequest, "not_in_word_list")
	case errors.Is(err, game.ErrRoundComplete):
		writeError(w, http.StatusConflict, "round_complete")
	case errors.Is(err, session.ErrNoRound), errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		log.Error().Err(err).Msg("guess")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
