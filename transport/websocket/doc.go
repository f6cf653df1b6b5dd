// Package websocket connects clients to rooms over gorilla websockets.
//
// Each accepted connection gets a generated client identity, is attached
// to its room (triggering manager election and the welcome handshake), and
// then runs a receive loop that feeds decoded action messages to the room
// dispatcher. Disconnects of any kind exit the loop and run the room's
// cleanup; when the last client leaves, the room is removed from the
// registry and its code is freed.
//
// Keepalive follows the usual gorilla discipline: write deadlines on every
// send, a read deadline refreshed by pongs, and periodic pings.
package websocket
