package table

import (
	"time"

	"github.com/lox/pokersim/internal/game"
	"github.com/lox/pokersim/poker"
)

// EventType represents a table event type
type EventType string

const (
	EventHandStart    EventType = "hand_start"
	EventPlayerAction EventType = "player_action"
	EventStreetChange EventType = "street_change"
	EventAwaiting     EventType = "awaiting_action"
	EventHandEnd      EventType = "hand_end"
	EventGameOver     EventType = "game_over"
)

func (et EventType) String() string {
	return string(et)
}

// Event is published to subscribers whenever the table changes
type Event struct {
	Type     EventType      `json:"type"`
	Table    string         `json:"table"`
	Hand     int            `json:"hand"`
	Time     time.Time      `json:"time"`
	Message  string         `json:"message,omitempty"`
	Seat     int            `json:"seat"`
	Decision *game.Decision `json:"decision,omitempty"`
	Street   game.Street    `json:"street"`
	Board    []poker.Card   `json:"board,omitempty"`
	Pot      int            `json:"pot"`
	Result   *game.Result   `json:"result,omitempty"`
}

type subscriber struct {
	ch chan Event
}

// Subscribe returns a channel of events and a function that cancels the
// subscription. Events are dropped for subscribers that fall behind by more
// than buffer events.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 32
	}
	sub := &subscriber{ch: make(chan Event, buffer)}

	s.subMu.Lock()
	if s.subsClosed {
		s.subMu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	s.subs[sub] = struct{}{}
	s.subMu.Unlock()

	return sub.ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[sub]; ok {
			delete(s.subs, sub)
			close(sub.ch)
		}
	}
}

func (s *Session) emit(e Event) {
	e.Table = s.ID
	e.Hand = s.handNum
	e.Time = s.clock.Now()
	if s.hand != nil {
		e.Street = s.hand.Street
		e.Pot = s.hand.Pot
		if e.Board == nil {
			e.Board = append([]poker.Card(nil), s.hand.Board...)
		}
	}
	if e.Message != "" {
		s.status = e.Message
	}

	s.logger.Debug("Table event", "type", e.Type, "message", e.Message)

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for sub := range s.subs {
		select {
		case sub.ch <- e:
		default:
			s.logger.Warn("Dropping event for slow subscriber", "type", e.Type)
		}
	}
}

func (s *Session) closeSubscribers() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subsClosed = true
	for sub := range s.subs {
		close(sub.ch)
		delete(s.subs, sub)
	}
}
