// Package engine defines the contract between the room coordination layer
// and concrete games.
//
// A Game is a turn-based state machine. The room layer never inspects game
// rules; it only needs the seat table (who occupies which slot), the manager
// election fields, and the operations of the Game interface. Concrete games
// embed Table to get the seat map and coordination fields, then implement
// the state, turn, and lifecycle methods themselves.
//
// Error values in this package carry the exact text shown to clients. The
// room layer reports them to the offending client only; they are expected
// conditions, not failures.
package engine
