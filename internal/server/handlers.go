package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lox/pokersim/internal/bot"
	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/internal/phh"
	"github.com/lox/pokersim/internal/randutil"
	"github.com/lox/pokersim/internal/table"
	"github.com/lox/pokersim/poker"
)

const maxBodyBytes = 1 << 16

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrHandComplete),
		errors.Is(err, table.ErrGameOver),
		errors.Is(err, table.ErrHandInProgress),
		errors.Is(err, table.ErrNotHuman),
		errors.Is(err, table.ErrNoHand),
		errors.Is(err, ErrTooManyTables):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrRaiseTooSmall),
		errors.Is(err, game.ErrInsufficientChips),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "tables": len(s.TableIDs())})
}

type deckResponse struct {
	Seed  int64        `json:"seed"`
	Cards []poker.Card `json:"cards"`
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	var seed *int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, badRequest("invalid seed %q", raw))
			return
		}
		seed = &v
	}
	rng, used := randutil.NewFromSeedOrTime(seed)
	writeJSON(w, http.StatusOK, deckResponse{Seed: used, Cards: poker.ShuffledCards(rng)})
}

type evaluateRequest struct {
	HoleCards string `json:"holeCards"`
	Board     string `json:"board"`
}

type evaluateResponse struct {
	poker.Evaluation
	Strength    float64                `json:"strength"`
	Label       string                 `json:"label"`
	Category    poker.HoleCardCategory `json:"holeCategory,omitempty"`
	Description string                 `json:"description,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	hole, board, err := bot.ParseHand(req.HoleCards, req.Board)
	if err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}
	if len(hole) != 2 {
		s.writeError(w, badRequest("need exactly 2 hole cards, got %d", len(hole)))
		return
	}

	e := poker.Evaluate(hole, board)
	resp := evaluateResponse{
		Evaluation: e,
		Strength:   poker.Strength(e),
		Label:      poker.StrengthLabel(poker.Strength(e)),
		Category:   poker.CategorizeHoleCards(hole),
	}
	if desc, err := poker.Describe(append(append([]poker.Card(nil), hole...), board...)); err == nil {
		resp.Description = desc
	}
	writeJSON(w, http.StatusOK, resp)
}

type decideRequest struct {
	Policy     string `json:"policy"`
	HoleCards  string `json:"holeCards"`
	Board      string `json:"board"`
	Pot        int    `json:"pot"`
	CurrentBet int    `json:"currentBet"`
	Bet        int    `json:"bet"`
	Chips      int    `json:"chips"`
	BigBlind   int    `json:"bigBlind"`
	Opponents  int    `json:"opponents"`
	Iterations int    `json:"iterations"`
	Seed       *int64 `json:"seed"`
	Street     string `json:"street"`
}

func (req decideRequest) spot() bot.Spot {
	return bot.Spot{
		HoleCards:  req.HoleCards,
		Board:      req.Board,
		Street:     req.Street,
		Pot:        req.Pot,
		CurrentBet: req.CurrentBet,
		Bet:        req.Bet,
		Chips:      req.Chips,
		BigBlind:   req.BigBlind,
		Opponents:  req.Opponents,
	}
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := req.spot().View()
	if err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}

	search := s.cfg.Search()
	if req.Iterations > 0 {
		search.Iterations = min(req.Iterations, 100_000)
	}
	analysis, err := bot.Analyze(v, req.Policy, search, req.Seed, s.logger)
	if err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type createTableRequest struct {
	Table       string `json:"table"`
	Seed        *int64 `json:"seed"`
	ThinkTimeMS *int   `json:"thinkTimeMs"`
}

type tableList struct {
	Tables []string `json:"tables"`
	Known  []string `json:"known"`
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tableList{Tables: s.TableIDs(), Known: s.cfg.TableNames()})
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			s.writeError(w, err)
			return
		}
	}
	if req.Table == "" {
		req.Table = "multiway"
	}

	cfg, err := s.cfg.Table(req.Table)
	if err != nil {
		s.writeError(w, badRequest("%v", err))
		return
	}
	if req.Seed != nil {
		cfg.Seed = req.Seed
	}
	if req.ThinkTimeMS != nil {
		if *req.ThinkTimeMS < 0 {
			s.writeError(w, badRequest("thinkTimeMs must not be negative"))
			return
		}
		cfg.ThinkTime = time.Duration(*req.ThinkTimeMS) * time.Millisecond
	}

	session, err := s.CreateTable(r.Context(), cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := session.State(r.Context(), session.HumanSeat())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/tables/"+session.ID)
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*table.Session, bool) {
	t, err := s.Table(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return t, true
}

// viewer reads the ?seat= parameter, defaulting to the human seat
func viewer(r *http.Request, t *table.Session) (int, error) {
	raw := r.URL.Query().Get("seat")
	if raw == "" {
		return t.HumanSeat(), nil
	}
	seat, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid seat %q", raw)
	}
	return seat, nil
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, t *table.Session, seat int) {
	st, err := t.State(r.Context(), seat)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTableState(w http.ResponseWriter, r *http.Request) {
	t, ok := s.session(w, r)
	if !ok {
		return
	}
	seat, err := viewer(r, t)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, r, t, seat)
}

// handleHistory serves the table's finished hands as a PHHS document
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	t, ok := s.session(w, r)
	if !ok {
		return
	}
	hands, err := t.HandHistories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := phh.EncodeAll(&buf, hands); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCloseTable(w http.ResponseWriter, r *http.Request) {
	if err := s.CloseTable(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type actionRequest struct {
	Seat   *int   `json:"seat"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	t, ok := s.session(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	seat := t.HumanSeat()
	if req.Seat != nil {
		seat = *req.Seat
	}

	if err := t.Act(r.Context(), seat, action, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, r, t, seat)
}

func (s *Server) handleNextHand(w http.ResponseWriter, r *http.Request) {
	t, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := t.NextHand(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeState(w, r, t, t.HumanSeat())
}
