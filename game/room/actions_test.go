package room

import (
	"encoding/json"
	"testing"

	"github.com/parlorhouse/parlor/game/engine"
)

func dispatch(rm *Room, clientID string, conn Conn, msg Message) {
	Dispatch(&Context{
		Conn:     conn,
		ClientID: clientID,
		Room:     rm,
		Msg:      msg,
	})
}

func intPtr(v int) *int { return &v }

func TestDispatchUnknownAction(t *testing.T) {
	rm, _ := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	dispatch(rm, "FOO", conn, Message{Action: "dance"})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Unknown action: dance" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchClaimManager(t *testing.T) {
	rm, game := newTestRoom(1)
	conn1 := newFakeConn()
	conn2 := newFakeConn()
	rm.Join("FOO", conn1)
	rm.Join("BAR", conn2)

	dispatch(rm, "FOO", conn1, Message{Action: "claim_manager"})
	if game.Manager() != "FOO" {
		t.Fatalf("manager = %q, want FOO", game.Manager())
	}
	if len(conn1.errorMessages()) != 0 {
		t.Errorf("unexpected errors: %v", conn1.errorMessages())
	}

	dispatch(rm, "BAR", conn2, Message{Action: "claim_manager"})
	errs := conn2.errorMessages()
	if len(errs) != 1 || errs[0] != "Could not claim manager" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchClaimSlot(t *testing.T) {
	rm, game := newTestRoom(2)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	dispatch(rm, "FOO", conn, Message{Action: "claim_slot", Slot: intPtr(1)})

	p, _ := game.Player(1)
	if p.ClientID != "FOO" {
		t.Errorf("slot 1 bound to %q, want FOO", p.ClientID)
	}
	if len(conn.errorMessages()) != 0 {
		t.Errorf("unexpected errors: %v", conn.errorMessages())
	}
}

func TestDispatchClaimSlotTaken(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	p, _ := game.Player(0)
	p.SetClientID("some1else")

	dispatch(rm, "FOO", conn, Message{Action: "claim_slot", Slot: intPtr(0)})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Slot 0 already claimed" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchClaimSlotMissingField(t *testing.T) {
	rm, _ := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	// No slot field at all. The handler panics on the nil deref and the
	// dispatcher turns it into a generic error for the sender.
	dispatch(rm, "FOO", conn, Message{Action: "claim_slot"})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Server error while handling your action" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchUpdateName(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	p, _ := game.Player(0)
	p.SetClientID("FOO")

	dispatch(rm, "FOO", conn, Message{Action: "update_name", Slot: intPtr(0), Name: "Alice"})

	if p.DisplayName != "Alice" {
		t.Errorf("display name = %q, want Alice", p.DisplayName)
	}
}

func TestDispatchUpdateNameNotOwner(t *testing.T) {
	rm, _ := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	dispatch(rm, "FOO", conn, Message{Action: "update_name", Slot: intPtr(0), Name: "Alice"})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Cannot change name for slot=0" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchReleaseSlot(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	p, _ := game.Player(0)
	p.SetClientID("FOO")

	dispatch(rm, "FOO", conn, Message{Action: "release_slot"})

	if p.ClientID != "" {
		t.Error("slot should be released")
	}
	if len(conn.errorMessages()) != 0 {
		t.Errorf("unexpected errors: %v", conn.errorMessages())
	}
}

func TestDispatchReleaseSlotWithoutSlot(t *testing.T) {
	rm, _ := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	dispatch(rm, "FOO", conn, Message{Action: "release_slot"})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "No slot associated with client" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchStartGameNotManager(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	game.SetManager("BAR")

	dispatch(rm, "FOO", conn, Message{Action: "start_game"})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Only the manager can start the game" {
		t.Errorf("errors = %v", errs)
	}
}

func TestDispatchStartGame(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	game.SetManager("FOO")

	dispatch(rm, "FOO", conn, Message{Action: "start_game"})

	if !game.IsStarted() {
		t.Error("game should be started")
	}
	if len(conn.errorMessages()) != 0 {
		t.Errorf("unexpected errors: %v", conn.errorMessages())
	}
}

func TestDispatchTakeTurn(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)

	turn := json.RawMessage(`{"action":"pass"}`)
	dispatch(rm, "FOO", conn, Message{Action: "take_turn", Turn: turn})

	if len(game.submissions) != 1 {
		t.Fatalf("expected one submission, got %d", len(game.submissions))
	}
	if game.submissions[0].clientID != "FOO" || game.submissions[0].force != "" {
		t.Errorf("submission = %+v", game.submissions[0])
	}
}

func TestDispatchTakeTurnRejected(t *testing.T) {
	rm, game := newTestRoom(1)
	conn := newFakeConn()
	rm.Join("FOO", conn)
	game.submitErr = engine.ErrNotYourTurn

	dispatch(rm, "FOO", conn, Message{Action: "take_turn", Turn: json.RawMessage(`{}`)})

	errs := conn.errorMessages()
	if len(errs) != 1 || errs[0] != "Not your turn!" {
		t.Errorf("errors = %v", errs)
	}
}

func TestMessageDecoding(t *testing.T) {
	raw := []byte(`{"action":"claim_slot","slot":0}`)
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Action != "claim_slot" {
		t.Errorf("action = %q", msg.Action)
	}
	if msg.Slot == nil || *msg.Slot != 0 {
		t.Errorf("slot = %v, want 0", msg.Slot)
	}

	// A missing slot stays nil so handlers can tell absent from zero.
	var bare Message
	if err := json.Unmarshal([]byte(`{"action":"release_slot"}`), &bare); err != nil {
		t.Fatal(err)
	}
	if bare.Slot != nil {
		t.Errorf("slot = %v, want nil", bare.Slot)
	}
}
