package engine

import "fmt"

// Player is a fixed seat in a game. A seat exists for the lifetime of the
// game; clients come and go by binding and unbinding their client ID.
type Player struct {
	SlotIndex   int    `json:"slot_index"`
	DisplayName string `json:"display_name"`
	ClientID    string `json:"client_id,omitempty"`
}

// NewPlayer creates an unbound seat with a default display name.
func NewPlayer(slotIndex int) *Player {
	return &Player{
		SlotIndex:   slotIndex,
		DisplayName: fmt.Sprintf("Player %d", slotIndex),
	}
}

func (p *Player) SetDisplayName(name string) {
	p.DisplayName = name
}

// SetClientID binds or, with the empty string, unbinds the seat.
func (p *Player) SetClientID(clientID string) {
	p.ClientID = clientID
}

// Bound reports whether a connected client currently occupies the seat.
func (p *Player) Bound() bool {
	return p.ClientID != ""
}
