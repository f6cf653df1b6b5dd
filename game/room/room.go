package room

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/parlorhouse/parlor/game/engine"
)

// Conn is the outbound side of one client connection. The websocket
// transport implements it; tests substitute fakes.
type Conn interface {
	// SendJSON serializes and sends one payload. Errors are terminal for
	// the connection but never for the room.
	SendJSON(v any) error

	// Connected reports whether the transport still considers the
	// connection live. Broadcasts silently skip dead connections.
	Connected() bool
}

// passMove is the deterministic move auto-played on behalf of a
// disconnecting active player so the turn never stalls on a vanished
// client. Every game must accept it.
var passMove = json.RawMessage(`{"action":"pass"}`)

// Room coordinates one session: one game plus the connected clients.
type Room struct {
	code string
	game engine.Game

	mu    sync.Mutex
	conns map[string]Conn
}

// New creates a room around the given game. The room takes ownership of
// the game; nothing else may mutate it afterwards.
func New(code string, game engine.Game) *Room {
	return &Room{
		code:  code,
		game:  game,
		conns: make(map[string]Conn),
	}
}

func (r *Room) Code() string {
	return r.code
}

// Join registers a connection under the client's ID. It does not assign a
// slot; slots are claimed explicitly.
func (r *Room) Join(clientID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[clientID] = conn
}

// Attach runs the whole connect flow as one event: register the
// connection, elect it manager if the room is unmanaged, broadcast the
// seat map, and greet the client with its generated identity.
func (r *Room) Attach(clientID string, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[clientID] = conn
	if r.game.Manager() == "" {
		r.setManagerLocked(clientID, conn)
	}
	r.broadcastSlotsLocked()
	r.send(conn, clientID, r.welcomeLocked(clientID))
}

// Leave removes the client's connection and runs the disconnect cleanup:
// slot release (with a forced pass if it was that client's turn), manager
// clearing, and the broadcasts that follow. It returns the number of
// connections left so the caller can retire the room when it hits zero.
func (r *Room) Leave(clientID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, clientID)

	released := false
	if _, ok := r.game.SlotByClient(clientID); ok {
		released = r.releaseSlotLocked(clientID)
	} else {
		// Connection count changed even though no seat did.
		r.broadcastSlotsLocked()
	}

	if r.game.Manager() == clientID {
		r.releaseManagerLocked()
	}

	if released && r.game.IsStarted() {
		r.sendGameStateLocked()
	}

	return len(r.conns)
}

// Manager returns the current manager's client ID, or "" when unmanaged.
func (r *Room) Manager() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Manager()
}

// NumConnections returns the number of registered connections.
func (r *Room) NumConnections() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// IsStarted reports whether the room's game has started.
func (r *Room) IsStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.IsStarted()
}

// IsOver reports whether the room's game has finished.
func (r *Room) IsOver() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.IsOver()
}

// ClaimSlot binds a free slot to the client and broadcasts the updated
// seat map. A client may hold at most one slot at a time.
func (r *Room) ClaimSlot(slot int, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.game.Player(slot)
	if !ok {
		return fmt.Errorf("No such slot %d", slot)
	}
	if p.Bound() {
		return fmt.Errorf("Slot %d already claimed", slot)
	}
	if held, ok := r.game.SlotByClient(clientID); ok {
		return fmt.Errorf("Already claimed slot %d", held)
	}

	p.SetClientID(clientID)
	r.broadcastSlotsLocked()
	return nil
}

// UpdateName changes the display name of a slot the client owns and
// broadcasts the updated seat map.
func (r *Room) UpdateName(slot int, clientID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.game.Player(slot)
	if !ok || p.ClientID != clientID {
		return fmt.Errorf("Cannot change name for slot=%d", slot)
	}
	p.SetDisplayName(name)
	r.broadcastSlotsLocked()
	return nil
}

// ReleaseSlot unbinds whatever slot the client holds, reporting false if it
// holds none. If the game is running and the turn is theirs, a pass is
// auto-played with their identity before the binding is cleared so the turn
// advances instead of stalling. When the game has started the new game
// state is broadcast along with the seat map.
func (r *Room) ReleaseSlot(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	released := r.releaseSlotLocked(clientID)
	if released && r.game.IsStarted() {
		r.sendGameStateLocked()
	}
	return released
}

func (r *Room) releaseSlotLocked(clientID string) bool {
	slot, ok := r.game.SlotByClient(clientID)
	if !ok {
		return false
	}

	if r.game.IsStarted() && !r.game.IsOver() && r.game.CurrentPlayer() == clientID {
		logrus.WithFields(logrus.Fields{
			"room":      r.code,
			"client_id": clientID,
		}).Info("current player released slot, auto-playing pass")
		if err := r.game.SubmitAction(clientID, passMove, clientID); err != nil {
			logrus.WithError(err).WithField("room", r.code).Warn("forced pass rejected")
		}
	}

	if p, ok := r.game.Player(slot); ok {
		p.SetClientID("")
	}

	r.broadcastSlotsLocked()
	return true
}

// SetManager elects the client as manager if the room is unmanaged. On
// success everyone is told who manages the room and the new manager gets a
// private confirmation; on failure nothing is mutated or sent.
func (r *Room) SetManager(clientID string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setManagerLocked(clientID, conn)
}

func (r *Room) setManagerLocked(clientID string, conn Conn) bool {
	if r.game.Manager() != "" {
		return false
	}
	r.game.SetManager(clientID)

	who := "A spectator"
	if slot, ok := r.game.SlotByClient(clientID); ok {
		who = fmt.Sprintf("Player %d", slot)
	}
	r.broadcastLocked(map[string]any{"info": fmt.Sprintf("%s is the manager now", who)})
	r.send(conn, clientID, map[string]any{"info": "You are the manager"})
	return true
}

// ReleaseManager clears the manager and tells everyone.
func (r *Room) ReleaseManager() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseManagerLocked()
}

func (r *Room) releaseManagerLocked() {
	r.game.ClearManager()
	r.broadcastLocked(map[string]any{"info": "There is no manager"})
}

// StartGame starts the game on behalf of the manager and broadcasts the
// opening state. Only the manager may start.
func (r *Room) StartGame(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.game.Manager() != clientID {
		return fmt.Errorf("Only the manager can start the game")
	}
	if _, err := r.game.Start(); err != nil {
		return err
	}
	r.broadcastLocked(map[string]any{"info": "Game started"})
	r.sendGameStateLocked()
	return nil
}

// SubmitMove applies a player's move and, on success, broadcasts the new
// game state to everyone.
func (r *Room) SubmitMove(clientID string, move json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.game.SubmitAction(clientID, move, ""); err != nil {
		return err
	}
	r.sendGameStateLocked()
	return nil
}

// Broadcast sends an identical payload to every connected client.
func (r *Room) Broadcast(message any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(message)
}

// BroadcastSlots sends the seat map to every client, personalized with that
// client's own slot index.
func (r *Room) BroadcastSlots() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastSlotsLocked()
}

// SendGameState sends each connected client its personalized view of the
// game: public state, private state, whether it is their turn, and the
// final result once the game is over.
func (r *Room) SendGameState() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendGameStateLocked()
}

func (r *Room) broadcastLocked(message any) {
	for clientID, conn := range r.conns {
		r.send(conn, clientID, message)
	}
}

func (r *Room) broadcastSlotsLocked() {
	r.broadcastPersonalized(r.commonPayload(), r.personalizeSlots)
}

// broadcastPersonalized applies transform to the common payload once per
// recipient and sends the result. The transform must not mutate common.
func (r *Room) broadcastPersonalized(common map[string]any, transform func(common map[string]any, clientID string) map[string]any) {
	for clientID, conn := range r.conns {
		r.send(conn, clientID, transform(common, clientID))
	}
}

// personalizeSlots adds the recipient's own slot index (or null) to a copy
// of the common seat payload.
func (r *Room) personalizeSlots(common map[string]any, clientID string) map[string]any {
	personal := make(map[string]any, len(common)+1)
	for k, v := range common {
		personal[k] = v
	}
	if slot, ok := r.game.SlotByClient(clientID); ok {
		personal["my_slot"] = slot
	} else {
		personal["my_slot"] = nil
	}
	return personal
}

func (r *Room) sendGameStateLocked() {
	g := r.game
	over := g.IsOver()
	for clientID, conn := range r.conns {
		if !conn.Connected() {
			continue
		}
		var final any
		if over {
			final = g.FinalResult()
		}
		r.send(conn, clientID, map[string]any{
			"public_state":  g.PublicState(),
			"private_state": g.PrivateState(clientID),
			"your_turn":     g.CurrentPlayer() == clientID,
			"is_over":       over,
			"final_result":  final,
		})
	}
}

// Welcome builds the greeting payload for a freshly joined client. A new
// client never holds a slot yet, so my_slot is always null here.
func (r *Room) Welcome(clientID string) map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.welcomeLocked(clientID)
}

func (r *Room) welcomeLocked(clientID string) map[string]any {
	payload := r.commonPayload()
	payload["client_id"] = clientID
	payload["my_slot"] = nil
	return payload
}

func (r *Room) commonPayload() map[string]any {
	return map[string]any{
		"num_connections": len(r.conns),
		"available_slots": r.slotAvailability(),
		"names":           r.playerNames(),
	}
}

func (r *Room) slotAvailability() map[int]bool {
	avail := make(map[int]bool, r.game.Seats())
	for slot, p := range r.game.Players() {
		avail[slot] = !p.Bound()
	}
	return avail
}

func (r *Room) playerNames() map[int]*string {
	names := make(map[int]*string, r.game.Seats())
	for slot, p := range r.game.Players() {
		if p.Bound() {
			name := p.DisplayName
			names[slot] = &name
		} else {
			names[slot] = nil
		}
	}
	return names
}

func (r *Room) send(conn Conn, clientID string, message any) {
	if err := conn.SendJSON(message); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"room":      r.code,
			"client_id": clientID,
		}).Debug("dropping message to unreachable client")
	}
}
