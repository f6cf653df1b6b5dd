package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/parlorhouse/parlor/game/registry"
	"github.com/parlorhouse/parlor/game/room"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Session codes gate access; origins are not restricted.
		return true
	},
}

// Handler upgrades HTTP requests into room sessions.
type Handler struct {
	registry *registry.Registry
}

func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{registry: reg}
}

// ServeWS upgrades the request, attaches the client to the room named by
// code, and blocks in the receive loop until the client disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request, code string) {
	rm, found := h.registry.Lookup(code)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}
	conn := newConn(ws)

	if !found {
		conn.SendJSON(map[string]any{"error": "Game room not found"})
		ws.Close()
		return
	}

	clientID := uuid.NewString()
	logrus.WithFields(logrus.Fields{
		"room":      code,
		"client_id": clientID,
		"remote":    ws.RemoteAddr().String(),
	}).Info("client connected")

	rm.Attach(clientID, conn)

	done := make(chan struct{})
	go h.pingLoop(conn, done)
	h.readLoop(ws, conn, rm, clientID, done)
}

// readLoop pumps inbound messages into the dispatcher until the connection
// drops, then runs the disconnect cleanup. Close errors are never handed
// to the dispatcher; they always end the session.
func (h *Handler) readLoop(ws *websocket.Conn, conn *Conn, rm *room.Room, clientID string, done chan struct{}) {
	defer func() {
		close(done)
		conn.markClosed()
		ws.Close()

		remaining := rm.Leave(clientID)
		logrus.WithFields(logrus.Fields{
			"room":      rm.Code(),
			"client_id": clientID,
			"remaining": remaining,
		}).Info("client disconnected")

		if remaining == 0 {
			h.registry.Remove(rm.Code())
			logrus.WithField("room", rm.Code()).Info("room closed")
		}
	}()

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("client_id", clientID).Warn("websocket read error")
			}
			return
		}

		var msg room.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"room":      rm.Code(),
				"client_id": clientID,
			}).Warn("undecodable message")
			conn.SendJSON(map[string]any{"error": "Server error while handling your action"})
			continue
		}

		room.Dispatch(&room.Context{
			Conn:     conn,
			ClientID: clientID,
			Room:     rm,
			Msg:      msg,
		})
	}
}

func (h *Handler) pingLoop(conn *Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
