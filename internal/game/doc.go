// Package game implements the betting round state machine for Texas Hold'em.
//
// The main type is HandState, which owns the seats' per-hand state, the
// deck, the board and the pot for a single hand.
//
// # Basic Usage
//
//	players := []*game.Player{
//	    game.NewPlayer(0, "You", 1000, true),
//	    game.NewPlayer(1, "CPU", 1000, false),
//	}
//	h, err := game.NewHand(randutil.New(42), players)
//	// Apply actions for h.ActivePlayer...
//	_ = h.ApplyAction(h.ActivePlayer, game.Call, 0)
//	// When ActivePlayer is -1 the street is closed
//	if !h.IsComplete() && h.BettingComplete() {
//	    _ = h.AdvanceStreet()
//	}
//
// HandState never advances streets on its own; drivers such as table.Session
// call AdvanceStreet once BettingComplete reports true. Advancing from the
// river runs the showdown and fills Result.
//
// # Deterministic Testing
//
// NewHand shuffles with the injected RNG, so a fixed seed from
// randutil.New gives a fixed deal. WithDeck supplies a prepared deck for
// complete control over the cards.
//
// # Short stacks
//
// A call for more than the seat's remaining chips is rejected under
// ShortStackReject and converted to an all-in under ShortStackAllIn.
package game
