// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily game
//   - GET  /daily/leaderboard → fetch top 20 winners for today (or a given date)
//
// Each owner plays once per day: a finished game (won or lost) is written to
// daily_results, and later /daily/new calls answer played=true. Daily rounds
// do not count towards the classic stats ledger.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/session"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	schedule *daily.Schedule
	now      func() time.Time
	sessions map[string]*dailySession // active sessions keyed by owner|date
	mu       sync.Mutex               // guards sessions
}

// dailySession holds transient in-memory state for an in-progress daily game.
type dailySession struct {
	sess      *session.Session
	date      string
	wordIndex int
	start     time.Time
	seen      time.Time // last request, for idle eviction
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		schedule: daily.NewSchedule(s.cfg.DailySalt, s.words),
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's scheduled word.
func (d *dailyServer) today() daily.Day { return d.schedule.On(d.now()) }

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID string `json:"gameId"`
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the owner already has a DB row for today → return Played=true.
// - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerID(w, r)
	day := d.today()
	date := day.Date

	played, err := d.store.AlreadyPlayed(r.Context(), owner, date)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "storage")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, newRes{Date: date, Played: true})
		return
	}

	key := owner + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if ds, ok := d.sessions[key]; ok {
		ds.seen = d.now()
		writeJSON(w, http.StatusOK, newRes{GameID: ds.sess.Round().ID, Date: date})
		return
	}
	sess := session.New(d.srv.words, nil)
	sess.Owner = owner
	if _, err := sess.Start(day.Word); err != nil {
		log.Error().Err(err).Str("date", date).Msg("daily start")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	start := d.now()
	d.sessions[key] = &dailySession{sess: sess, date: date, wordIndex: day.Index, start: start, seen: start}
	roundsStarted.WithLabelValues(modeDaily).Inc()

	writeJSON(w, http.StatusOK, newRes{GameID: sess.Round().ID, Date: date})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Marks   []game.Mark `json:"marks"`
	State   game.Status `json:"state"`
	Guesses int         `json:"guesses"`
	Answer  string      `json:"answer,omitempty"`
}

// handleGuess applies a guess to today's daily session and records the
// result once the round is over.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	owner := d.srv.ownerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	key := owner + "|" + d.today().Date

	d.mu.Lock()
	defer d.mu.Unlock()
	ds, ok := d.sessions[key]
	if !ok || ds.sess.Round().ID != p.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	ds.seen = d.now()
	res, err := ds.sess.Guess(r.Context(), p.Word)
	if err != nil {
		guessesTotal.WithLabelValues(resultRejected).Inc()
		writeGameError(w, err)
		return
	}
	guessesTotal.WithLabelValues(resultAccepted).Inc()

	round := ds.sess.Round()
	out := dailyGuessRes{Marks: res.Marks, State: res.Status, Guesses: round.GuessesTaken()}
	if res.Status.Terminal() {
		out.Answer = round.Secret()
		roundsFinished.WithLabelValues(modeDaily, res.Status.String()).Inc()
		// The game is over either way; on a storage error /daily/new deals a fresh one.
		delete(d.sessions, key)
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    owner,
			Date:      ds.date,
			WordIndex: ds.wordIndex,
			Guesses:   round.GuessesTaken(),
			Won:       res.Status == game.StatusWon,
			ElapsedMs: int(d.now().Sub(ds.start).Milliseconds()),
		})
		if err != nil {
			log.Error().Err(err).Str("owner", owner).Msg("insert daily result")
			writeError(w, http.StatusInternalServerError, "storage")
			return
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// sweep drops games from dates other than today's and games idle since
// cutoff. It returns how many were dropped.
func (d *dailyServer) sweep(now, cutoff time.Time) int {
	today := daily.DateKey(now)
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for key, ds := range d.sessions {
		if ds.date != today || ds.seen.Before(cutoff) {
			delete(d.sessions, key)
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today().Date
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "storage")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
