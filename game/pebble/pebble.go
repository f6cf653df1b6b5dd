// Package pebble implements the reference game for the room layer: players
// take turns passing a single pebble, and whoever makes the fifth pass wins.
// The rules are deliberately trivial so the coordination layer, not the
// game, is what gets exercised.
package pebble

import (
	"encoding/json"

	"github.com/parlorhouse/parlor/game/engine"
)

// DefaultMaxPasses is the number of passes that ends the game.
const DefaultMaxPasses = 5

// Game holds the pebble. The seat whose index matches currentIndex is the
// holder and the only seat allowed to act.
type Game struct {
	engine.Table

	currentIndex int
	passCount    int
	maxPasses    int
	winner       string
}

// New creates a game with the given number of seats. The pebble starts at
// slot 0.
func New(seats int) *Game {
	return &Game{
		Table:     engine.NewTable(seats),
		maxPasses: DefaultMaxPasses,
	}
}

func (g *Game) PublicState() any {
	return map[string]any{
		"current_holder_index": g.currentIndex,
		"pass_count":           g.passCount,
		"is_game_over":         g.IsOver(),
	}
}

func (g *Game) PrivateState(clientID string) any {
	return map[string]any{
		"available_actions": g.availableActions(clientID),
	}
}

func (g *Game) availableActions(clientID string) map[string]any {
	if g.IsOver() || clientID == "" || clientID != g.CurrentPlayer() {
		return map[string]any{}
	}
	return map[string]any{"pass": nil}
}

type move struct {
	Action string `json:"action"`
}

func (g *Game) SubmitAction(clientID string, raw json.RawMessage, forceTurnFor string) error {
	if g.IsOver() {
		return engine.ErrInvalidAction
	}

	current := g.CurrentPlayer()
	if forceTurnFor != "" {
		if clientID != forceTurnFor || forceTurnFor != current {
			return engine.ErrNotYourTurn
		}
	} else if clientID == "" || clientID != current {
		return engine.ErrNotYourTurn
	}

	var m move
	if err := json.Unmarshal(raw, &m); err != nil || m.Action != "pass" {
		return engine.ErrInvalidAction
	}

	g.passCount++
	if g.passCount >= g.maxPasses {
		// The winner is recorded by display name so the result survives the
		// winning client unbinding its seat.
		if holder, ok := g.Player(g.currentIndex); ok {
			g.winner = holder.DisplayName
		}
		return nil
	}
	g.currentIndex = g.nextClaimedIndex()
	return nil
}

// nextClaimedIndex advances past unclaimed seats, wrapping around. With a
// single bound seat the pebble stays where it is.
func (g *Game) nextClaimedIndex() int {
	seats := g.Seats()
	for i := 1; i <= seats; i++ {
		idx := (g.currentIndex + i) % seats
		if p, ok := g.Player(idx); ok && p.Bound() {
			return idx
		}
	}
	return g.currentIndex
}

func (g *Game) CurrentPlayer() string {
	p, ok := g.Player(g.currentIndex)
	if !ok {
		return ""
	}
	return p.ClientID
}

func (g *Game) IsOver() bool {
	return g.winner != ""
}

func (g *Game) FinalResult() any {
	if g.winner == "" {
		return map[string]any{}
	}
	return map[string]any{"winner": g.winner}
}

func (g *Game) Start() (any, error) {
	if g.IsStarted() {
		return nil, engine.ErrAlreadyStarted
	}
	if g.ClaimedCount() == 0 {
		return nil, engine.ErrNoPlayers
	}
	g.MarkStarted()
	return g.PublicState(), nil
}
