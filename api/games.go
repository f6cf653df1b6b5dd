package api

import (
	"github.com/parlorhouse/parlor/game/engine"
	"github.com/parlorhouse/parlor/game/pebble"
)

// Factory builds a fresh game instance for a new room.
type Factory func(seats int) engine.Game

// gameTypes maps the game_type field of a creation request to a factory.
var gameTypes = map[string]Factory{
	"pass_the_pebble": func(seats int) engine.Game { return pebble.New(seats) },
}
