package game

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/poker"
)

// ErrNotEnoughPlayers is returned when fewer than two seats have chips
var ErrNotEnoughPlayers = errors.New("at least 2 players with chips required")

// HandState represents the state of a poker hand
type HandState struct {
	Players        []*Player
	Button         int
	SmallBlindSeat int
	BigBlindSeat   int
	Street         Street
	Board          []poker.Card
	Pot            int // Every chip committed this hand, including the open street
	CurrentBet     int // Amount to match on the current street
	ActivePlayer   int // Seat to act, -1 when the street is closed or the hand is over
	Deck           *poker.Deck
	History        *History
	Result         *Result

	bigBlind   int
	shortStack ShortStackPolicy
	acted      []bool
	leader     int // first seat to act on the current street
	logger     *log.Logger
}

// Result describes how the pot was awarded
type Result struct {
	Pot         int                      `json:"pot"`
	Winners     []int                    `json:"winners"`
	Payouts     map[int]int              `json:"payouts"`
	Refunds     map[int]int              `json:"refunds,omitempty"` // Uncalled chips returned
	Uncontested bool                     `json:"uncontested"`
	HandName    string                   `json:"handName,omitempty"`
	Evaluations map[int]poker.Evaluation `json:"evaluations,omitempty"`
}

// NewHand starts a hand for the given seats. Seats keep their chips; hole
// cards, bets and folded flags are reset. Seats without chips sit the hand
// out. The RNG shuffles the deck unless WithDeck supplies one.
func NewHand(rng poker.RNG, players []*Player, opts ...HandOption) (*HandState, error) {
	cfg := defaultHandConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if cfg.button < 0 || cfg.button >= len(players) {
		return nil, fmt.Errorf("button position %d out of range", cfg.button)
	}
	if cfg.smallBlind < 0 || cfg.bigBlind < cfg.smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.smallBlind, cfg.bigBlind)
	}
	if cfg.deck == nil && rng == nil {
		return nil, errors.New("rng is required for hand creation")
	}

	funded := 0
	for _, p := range players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return nil, ErrNotEnoughPlayers
	}

	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(rng)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := &HandState{
		Players:    players,
		Button:     cfg.button,
		Street:     Preflop,
		Deck:       deck,
		History:    &History{},
		bigBlind:   cfg.bigBlind,
		shortStack: cfg.shortStack,
		acted:      make([]bool, len(players)),
		logger:     logger,
	}

	for i, p := range players {
		p.Seat = i
		p.resetForHand()
		if p.Chips <= 0 {
			p.Folded = true // sitting out
		}
	}

	h.dealHoleCards()
	h.postBlinds(cfg.smallBlind, cfg.bigBlind, funded)
	h.ActivePlayer = h.nextToAct(h.BigBlindSeat + 1)
	h.leader = h.ActivePlayer
	if h.BettingComplete() {
		h.ActivePlayer = -1
	}

	h.logger.Debug("Hand started",
		"button", h.Button,
		"smallBlind", h.SmallBlindSeat,
		"bigBlind", h.BigBlindSeat,
		"pot", h.Pot,
		"firstToAct", h.ActivePlayer)
	return h, nil
}

func (h *HandState) dealHoleCards() {
	for _, p := range h.Players {
		if p.Folded {
			continue
		}
		p.HoleCards = h.Deck.Deal(2)
	}
}

func (h *HandState) postBlinds(smallBlind, bigBlind, funded int) {
	if funded == 2 && !h.Players[h.Button].Folded {
		// Heads-up: button posts small blind
		h.SmallBlindSeat = h.Button
	} else {
		h.SmallBlindSeat = h.nextInHand(h.Button + 1)
	}
	h.BigBlindSeat = h.nextInHand(h.SmallBlindSeat + 1)

	h.postBlind(h.SmallBlindSeat, smallBlind)
	h.postBlind(h.BigBlindSeat, bigBlind)
	h.CurrentBet = bigBlind
}

func (h *HandState) postBlind(seat, amount int) {
	p := h.Players[seat]
	posted := min(amount, p.Chips)
	p.commit(posted)
	h.Pot += posted
}

// nextInHand returns the next seat at or after from that has not folded
func (h *HandState) nextInHand(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if !h.Players[seat].Folded {
			return seat
		}
	}
	return -1
}

// nextToAct returns the next seat at or after from that still owes an action
func (h *HandState) nextToAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		p := h.Players[seat]
		if !p.IsActive() {
			continue
		}
		if !h.acted[seat] || p.Bet < h.CurrentBet {
			return seat
		}
	}
	return -1
}

// BigBlind returns the big blind amount for the hand
func (h *HandState) BigBlind() int {
	return h.bigBlind
}

// ShortStack returns the short-stack policy in force for the hand
func (h *HandState) ShortStack() ShortStackPolicy {
	return h.shortStack
}

// ToCall returns the chips the seat must add to match the current bet
func (h *HandState) ToCall(seat int) int {
	if seat < 0 || seat >= len(h.Players) {
		return 0
	}
	return max(0, h.CurrentBet-h.Players[seat].Bet)
}

// IsComplete returns true once the pot has been awarded
func (h *HandState) IsComplete() bool {
	return h.Result != nil
}

// InHandCount returns the number of seats that have not folded
func (h *HandState) InHandCount() int {
	n := 0
	for _, p := range h.Players {
		if !p.Folded {
			n++
		}
	}
	return n
}

// LegalActions returns the actions the seat may take right now
func (h *HandState) LegalActions(seat int) []Action {
	if h.IsComplete() || seat != h.ActivePlayer || seat < 0 {
		return nil
	}
	return LegalActionsFor(h.ToCall(seat), h.Players[seat].Chips, h.shortStack)
}

// LegalActionsFor lists the actions open to a seat with chips behind that
// owes toCall. Fold is always listed.
func LegalActionsFor(toCall, chips int, policy ShortStackPolicy) []Action {
	actions := []Action{Fold}
	if toCall == 0 {
		actions = append(actions, Check)
		if chips > 0 {
			actions = append(actions, Raise, AllIn)
		}
		return actions
	}

	if chips >= toCall || policy == ShortStackAllIn {
		actions = append(actions, Call)
	}
	if chips > toCall {
		actions = append(actions, Raise)
	}
	return append(actions, AllIn)
}

// ApplyAction validates and applies an action for the seat. On error the
// hand is left unchanged. Amount is the total street bet for raises and is
// ignored otherwise.
func (h *HandState) ApplyAction(seat int, action Action, amount int) error {
	if h.IsComplete() || h.Street == Showdown {
		return ErrHandComplete
	}
	if seat < 0 || seat >= len(h.Players) || seat != h.ActivePlayer {
		return fmt.Errorf("%w: seat %d", ErrNotYourTurn, seat)
	}

	p := h.Players[seat]
	toCall := h.ToCall(seat)
	committed := 0

	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if toCall > 0 {
			return fmt.Errorf("%w: cannot check, must call %d", ErrInvalidAction, toCall)
		}

	case Call:
		if toCall == 0 {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		if toCall > p.Chips {
			if h.shortStack == ShortStackReject {
				return fmt.Errorf("%w: need %d to call, have %d", ErrInsufficientChips, toCall, p.Chips)
			}
			toCall = p.Chips
		}
		committed = toCall

	case Raise:
		if amount <= h.CurrentBet {
			return fmt.Errorf("%w: raise to %d, current bet %d", ErrRaiseTooSmall, amount, h.CurrentBet)
		}
		if amount-p.Bet > p.Chips {
			return fmt.Errorf("%w: raise to %d needs %d, have %d", ErrInsufficientChips, amount, amount-p.Bet, p.Chips)
		}
		committed = amount - p.Bet

	case AllIn:
		if p.Chips == 0 {
			return fmt.Errorf("%w: no chips left", ErrInvalidAction)
		}
		committed = p.Chips

	default:
		return fmt.Errorf("%w: %v", ErrInvalidAction, action)
	}

	if committed > 0 {
		p.commit(committed)
		h.Pot += committed
	}
	h.acted[seat] = true

	if p.Bet > h.CurrentBet {
		h.CurrentBet = p.Bet
		// A raise reopens the action for everyone else
		for i := range h.acted {
			if i != seat {
				h.acted[i] = false
			}
		}
	}

	h.History.Add(seat, p.Name, action, p.Bet, h.Street)
	h.logger.Debug("Action applied",
		"seat", seat,
		"player", p.Name,
		"action", action,
		"committed", committed,
		"pot", h.Pot,
		"currentBet", h.CurrentBet)

	if h.InHandCount() == 1 {
		h.awardUncontested()
		return nil
	}

	if h.BettingComplete() {
		h.ActivePlayer = -1
	} else {
		h.ActivePlayer = h.nextToAct(seat + 1)
	}
	return nil
}

// BettingComplete reports whether every seat able to act has acted and
// matched the current bet.
func (h *HandState) BettingComplete() bool {
	if h.IsComplete() {
		return true
	}

	active := 0
	for _, p := range h.Players {
		if p.IsActive() {
			active++
		}
	}
	if active == 0 {
		return true
	}
	if active == 1 {
		// Nobody is left to bet against; the last seat only needs to match
		for _, p := range h.Players {
			if p.IsActive() {
				return p.Bet >= h.CurrentBet
			}
		}
	}

	for i, p := range h.Players {
		if !p.IsActive() {
			continue
		}
		if !h.acted[i] || p.Bet != h.CurrentBet {
			return false
		}
	}
	return true
}

// AdvanceStreet moves to the next street once betting is closed: deals the
// community cards, resets street bets and the current bet. Advancing from
// the river runs the showdown.
func (h *HandState) AdvanceStreet() error {
	if h.IsComplete() || h.Street == Showdown {
		return ErrHandComplete
	}
	if !h.BettingComplete() {
		return ErrBettingOpen
	}

	for _, p := range h.Players {
		p.Bet = 0
	}
	h.CurrentBet = 0
	h.acted = make([]bool, len(h.Players))

	var deal int
	switch h.Street {
	case Preflop:
		deal = 3
	case Flop, Turn:
		deal = 1
	}
	if deal > 0 {
		cards := h.Deck.Deal(deal)
		if cards == nil {
			return fmt.Errorf("deck exhausted dealing the %v", h.Street+1)
		}
		h.Board = append(h.Board, cards...)
	}
	h.Street++
	h.History.AddPhase(h.Street)
	h.logger.Debug("Street advanced", "street", h.Street, "board", poker.FormatCards(h.Board))

	if h.Street == Showdown {
		h.ActivePlayer = -1
		h.settleShowdown()
		return nil
	}

	h.ActivePlayer = h.nextToAct(h.Button + 1)
	h.leader = h.ActivePlayer
	if h.BettingComplete() {
		// Fewer than two seats can still bet
		h.ActivePlayer = -1
	}
	return nil
}

func (h *HandState) awardUncontested() {
	winner := h.nextInHand(0)
	p := h.Players[winner]
	pot := h.Pot
	p.Chips += pot
	h.Pot = 0
	h.ActivePlayer = -1
	h.Result = &Result{
		Pot:         pot,
		Winners:     []int{winner},
		Payouts:     map[int]int{winner: pot},
		Uncontested: true,
	}
	h.logger.Debug("Pot awarded uncontested", "winner", p.Name, "pot", pot)
}

// settleShowdown evaluates every seat still in the hand and awards the main
// pot and each side pot to the best hand eligible for it. Seats are visited
// in order from the left of the button, so the first tied winner collects
// any odd chips of a split pot. Uncalled chips go back to the seat that bet
// them and do not count as winnings.
func (h *HandState) settleShowdown() {
	n := len(h.Players)
	evals := make(map[int]poker.Evaluation)
	var order []int
	for i := 1; i <= n; i++ {
		seat := (h.Button + i) % n
		if p := h.Players[seat]; !p.Folded {
			evals[seat] = poker.Evaluate(p.HoleCards, h.Board)
			order = append(order, seat)
		}
	}

	payouts := make(map[int]int)
	refunds := make(map[int]int)
	var winners []int
	var best poker.Evaluation
	awarded := 0
	for _, pot := range SidePots(h.Players) {
		if len(pot.Eligible) == 1 {
			seat := pot.Eligible[0]
			refunds[seat] += pot.Amount
			h.Players[seat].Chips += pot.Amount
			h.Players[seat].TotalBet -= pot.Amount
			continue
		}

		potWinners, potBest := bestHands(order, pot.Eligible, evals)
		if winners == nil {
			winners, best = potWinners, potBest
		}
		for seat, amount := range SplitPot(pot.Amount, potWinners) {
			payouts[seat] += amount
			h.Players[seat].Chips += amount
		}
		awarded += pot.Amount
	}

	h.Pot = 0
	h.Result = &Result{
		Pot:         awarded,
		Winners:     winners,
		Payouts:     payouts,
		HandName:    best.Name,
		Evaluations: evals,
	}
	if len(refunds) > 0 {
		h.Result.Refunds = refunds
	}
	h.logger.Debug("Showdown settled", "winners", winners, "pot", awarded, "refunds", refunds, "hand", best.Name)
}

// bestHands returns the eligible seats holding the best evaluation, in
// the given seat order.
func bestHands(order, eligible []int, evals map[int]poker.Evaluation) ([]int, poker.Evaluation) {
	var winners []int
	var best poker.Evaluation
	for _, seat := range order {
		if !slices.Contains(eligible, seat) {
			continue
		}
		ev := evals[seat]
		switch {
		case len(winners) == 0, poker.Compare(ev, best) > 0:
			best = ev
			winners = []int{seat}
		case poker.Compare(ev, best) == 0:
			winners = append(winners, seat)
		}
	}
	return winners, best
}

// SplitPot divides pot evenly between winners. The remainder goes to the
// first winner listed.
func SplitPot(pot int, winners []int) map[int]int {
	payouts := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return payouts
	}
	share := pot / len(winners)
	for _, seat := range winners {
		payouts[seat] = share
	}
	payouts[winners[0]] += pot - share*len(winners)
	return payouts
}
