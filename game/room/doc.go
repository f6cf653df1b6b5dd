// Package room implements the coordination layer for one play session: the
// live mapping of client IDs to connections, slot claim and release, manager
// election, action dispatch, and state broadcast.
//
// A Room exclusively owns its Game and its connection map; no other
// component mutates either. One mutex per room is the serialization point
// required by the concurrency model: every inbound event (action message or
// disconnect cleanup) runs to completion under it, so handlers for the same
// room never interleave. Different rooms share nothing and run in parallel.
//
// Outbound sends happen inside that critical section and are fire and
// forget: a failed send to one client is logged and never blocks delivery
// to the others, and there are no retries.
package room
