package engine

import (
	"encoding/json"
	"errors"
)

// Validation errors raised by games. Their text is delivered verbatim to the
// client that caused them.
var (
	ErrNotYourTurn    = errors.New("Not your turn!")
	ErrInvalidAction  = errors.New("Invalid action")
	ErrAlreadyStarted = errors.New("Game already started")
	ErrNoPlayers      = errors.New("Cannot start game with no players")
)

// Game is the state machine contract every concrete game satisfies. The
// room layer owns exactly one Game and is the only caller of its mutating
// methods.
//
// The seat and manager accessors are provided by embedding Table.
type Game interface {
	// PublicState returns state visible to every client. It must be free
	// of side effects and must not depend on any client identity.
	PublicState() any

	// PrivateState returns state visible only to the given client, such as
	// the actions available to it right now.
	PrivateState(clientID string) any

	// SubmitAction validates turn ownership and legality of the move, then
	// applies it. forceTurnFor is set only by the room when it auto-plays a
	// pass for a disconnecting active player; it narrows who may act (the
	// submission must come from that client and that client must hold the
	// turn), never widens it.
	SubmitAction(clientID string, move json.RawMessage, forceTurnFor string) error

	// CurrentPlayer returns the client ID expected to act next, or the
	// empty string when no bound client holds the turn.
	CurrentPlayer() string

	// IsOver is a derived predicate computed from the game's win condition.
	IsOver() bool

	// FinalResult returns the outcome, or an empty object while the game
	// is still running.
	FinalResult() any

	// Start transitions the game out of the lobby phase and returns the
	// public state after the transition. It fails with ErrNoPlayers when
	// no seat is bound and ErrAlreadyStarted on a second call.
	Start() (any, error)

	// Seat table and manager election, provided by Table.
	Players() map[int]*Player
	Player(slot int) (*Player, bool)
	Seats() int
	SlotByClient(clientID string) (int, bool)
	ClaimedCount() int
	Manager() string
	SetManager(clientID string)
	ClearManager()
	IsStarted() bool
}
