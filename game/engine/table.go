package engine

// Table holds the seat map and coordination state shared by every game:
// which client occupies which slot, who the manager is, and whether the
// game has started. Concrete games embed it and add their own rules.
//
// Table is not safe for concurrent use on its own; the owning room
// serializes all access.
type Table struct {
	players map[int]*Player
	manager string
	started bool
}

// NewTable creates a table with seats indexed 0..seats-1, all unbound.
func NewTable(seats int) Table {
	players := make(map[int]*Player, seats)
	for i := 0; i < seats; i++ {
		players[i] = NewPlayer(i)
	}
	return Table{players: players}
}

// Players returns the seat map keyed by slot index.
func (t *Table) Players() map[int]*Player {
	return t.players
}

// Player returns the seat at the given slot index.
func (t *Table) Player(slot int) (*Player, bool) {
	p, ok := t.players[slot]
	return p, ok
}

// Seats returns the number of seats, fixed at construction.
func (t *Table) Seats() int {
	return len(t.players)
}

// SlotByClient returns the slot index bound to the given client, if any.
func (t *Table) SlotByClient(clientID string) (int, bool) {
	if clientID == "" {
		return 0, false
	}
	for slot, p := range t.players {
		if p.ClientID == clientID {
			return slot, true
		}
	}
	return 0, false
}

// ClaimedCount returns how many seats are currently bound to a client.
func (t *Table) ClaimedCount() int {
	n := 0
	for _, p := range t.players {
		if p.Bound() {
			n++
		}
	}
	return n
}

// Manager returns the managing client's ID, or the empty string when the
// room is unmanaged. The manager is cleared on disconnect, never reassigned
// implicitly.
func (t *Table) Manager() string {
	return t.manager
}

func (t *Table) SetManager(clientID string) {
	t.manager = clientID
}

func (t *Table) ClearManager() {
	t.manager = ""
}

// IsStarted reports whether the game has left the lobby phase. The
// transition is monotonic.
func (t *Table) IsStarted() bool {
	return t.started
}

// MarkStarted flips the started flag. Start implementations call this once
// their own preconditions hold.
func (t *Table) MarkStarted() {
	t.started = true
}
