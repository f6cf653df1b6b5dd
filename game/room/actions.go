package room

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Message is the inbound action envelope, already deserialized by the
// transport. Fields beyond Action are action-specific; pointer fields
// distinguish absent from zero.
type Message struct {
	Action string          `json:"action"`
	Slot   *int            `json:"slot,omitempty"`
	Name   string          `json:"name,omitempty"`
	Turn   json.RawMessage `json:"turn,omitempty"`
}

// Context carries everything a handler needs for one inbound message.
// Handlers must not retain it past their return.
type Context struct {
	Conn     Conn
	ClientID string
	Room     *Room
	Msg      Message
}

// reply sends to the originating client only.
func (ctx *Context) reply(message any) {
	ctx.Room.send(ctx.Conn, ctx.ClientID, message)
}

func (ctx *Context) replyError(msg string) {
	ctx.reply(map[string]any{"error": msg})
}

type actionFunc func(ctx *Context)

var actionHandlers = map[string]actionFunc{
	"take_turn":     takeTurn,
	"claim_slot":    claimSlot,
	"update_name":   updateName,
	"claim_manager": claimManager,
	"release_slot":  releaseSlot,
	"start_game":    startGame,
}

// Dispatch routes one decoded message to its handler. Panics out of a
// handler (malformed payloads, bugs) are contained here: they are logged
// with full context and reported to the sender as a generic server error,
// so one bad message can never take down the room or other connections.
func Dispatch(ctx *Context) {
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithFields(logrus.Fields{
				"room":      ctx.Room.Code(),
				"client_id": ctx.ClientID,
				"action":    ctx.Msg.Action,
				"panic":     rec,
			}).Error("action handler panicked")
			ctx.replyError("Server error while handling your action")
		}
	}()

	handler, ok := actionHandlers[ctx.Msg.Action]
	if !ok {
		ctx.replyError(fmt.Sprintf("Unknown action: %s", ctx.Msg.Action))
		return
	}

	logrus.WithFields(logrus.Fields{
		"room":      ctx.Room.Code(),
		"client_id": ctx.ClientID,
		"action":    ctx.Msg.Action,
	}).Info("handling action")
	handler(ctx)
}

func claimSlot(ctx *Context) {
	// Nil on a missing slot field; the deref panic is recovered in Dispatch.
	slot := *ctx.Msg.Slot
	if err := ctx.Room.ClaimSlot(slot, ctx.ClientID); err != nil {
		ctx.replyError(err.Error())
	}
}

func updateName(ctx *Context) {
	slot := *ctx.Msg.Slot
	if err := ctx.Room.UpdateName(slot, ctx.ClientID, ctx.Msg.Name); err != nil {
		ctx.replyError(err.Error())
	}
}

func claimManager(ctx *Context) {
	if !ctx.Room.SetManager(ctx.ClientID, ctx.Conn) {
		logrus.WithFields(logrus.Fields{
			"room":      ctx.Room.Code(),
			"client_id": ctx.ClientID,
		}).Info("manager already claimed")
		ctx.replyError("Could not claim manager")
	}
}

func releaseSlot(ctx *Context) {
	if !ctx.Room.ReleaseSlot(ctx.ClientID) {
		ctx.replyError("No slot associated with client")
	}
}

func startGame(ctx *Context) {
	if err := ctx.Room.StartGame(ctx.ClientID); err != nil {
		ctx.replyError(err.Error())
	}
}

func takeTurn(ctx *Context) {
	if err := ctx.Room.SubmitMove(ctx.ClientID, ctx.Msg.Turn); err != nil {
		ctx.replyError(err.Error())
	}
}
