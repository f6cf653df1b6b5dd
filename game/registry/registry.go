// Package registry maps short session codes to live rooms.
//
// The registry has an explicit lifecycle: a room is inserted when a session
// is created and removed when its last connection leaves. It is passed to
// whatever layer creates and looks up rooms; there is no process-wide
// singleton. Codes are opaque unique strings generated here.
package registry

import (
	"crypto/rand"
	"errors"
	"sync"

	"github.com/parlorhouse/parlor/game/engine"
	"github.com/parlorhouse/parlor/game/room"
)

// ErrCodeInUse is returned when a caller-supplied code collides with a
// live room.
var ErrCodeInUse = errors.New("room code already in use")

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 4
)

// Registry is a thread-safe code-to-room map.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*room.Room),
	}
}

// Create wraps the game in a new room under a freshly generated,
// collision-free code and registers it.
func (reg *Registry) Create(game engine.Game) *room.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := generateCode()
	for {
		if _, taken := reg.rooms[code]; !taken {
			break
		}
		code = generateCode()
	}

	rm := room.New(code, game)
	reg.rooms[code] = rm
	return rm
}

// CreateWithCode registers a room under a caller-chosen code. Mostly
// useful for tests and fixtures.
func (reg *Registry) CreateWithCode(code string, game engine.Game) (*room.Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, taken := reg.rooms[code]; taken {
		return nil, ErrCodeInUse
	}
	rm := room.New(code, game)
	reg.rooms[code] = rm
	return rm, nil
}

// Lookup returns the room registered under code.
func (reg *Registry) Lookup(code string) (*room.Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rm, ok := reg.rooms[code]
	return rm, ok
}

// Remove deletes the room and frees its code for reuse. Callers invoke it
// when a room's connection count reaches zero.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

// List returns all live rooms in no particular order.
func (reg *Registry) List() []*room.Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rooms := make([]*room.Room, 0, len(reg.rooms))
	for _, rm := range reg.rooms {
		rooms = append(rooms, rm)
	}
	return rooms
}

// Count returns the number of live rooms.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func generateCode() string {
	buf := make([]byte, codeLength)
	rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
