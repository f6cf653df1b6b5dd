// Package api exposes room creation and inspection over HTTP and routes
// websocket upgrades to the transport layer.
//
// Endpoints:
//
//	POST /api/rooms                                 create a room
//	GET  /api/rooms                                 list live rooms
//	GET  /api/rooms/{code}/state                    public game state
//	POST /api/rooms/{code}/players/{clientID}/action submit a move over REST
//	GET  /ws/{code}                                 websocket session
package api
