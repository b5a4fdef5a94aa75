// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"time"

	"github.com/softbear-arena/arenasync/world"
)

func init() {
	registerInbound(Input{}, Shoot{}, Ping{}, Join{}, Leave{})
}

// Input is the client -> server movement message (§6).
type Input struct {
	Seq   uint32      `json:"seq"`
	Keys  world.Keys  `json:"keys"`
	Angle world.Angle `json:"angle"`
}

// Process enqueues the input on the session's intake queue; it is NOT
// applied here. The Simulation Core drains intake queues at the start of
// each tick (§4.2) — Process only needs to preserve per-session order,
// which the intake queue's FIFO discipline already guarantees.
func (in Input) Process(room *Room, session *Session) {
	session.intake.Push(world.Input{
		Seq:       in.Seq,
		Keys:      in.Keys,
		Angle:     in.Angle,
		Timestamp: time.Now(),
	})
}

// Shoot is the client -> server fire message (§6).
type Shoot struct {
	Angle world.Angle `json:"angle"`
}

// Process enforces the per-shooter cooldown and, if admitted, spawns a
// bullet (§4.1 "Shoot admission"). Dispatched immediately at receipt
// time under the simulation goroutine rather than queued, since there is
// no ordering requirement across shoot/input beyond per-session order of
// inputs, and an admitted-or-not decision does not need to wait for the
// next tick boundary.
func (in Shoot) Process(room *Room, session *Session) {
	room.tryShoot(session, in.Angle)
}

// Ping is the client -> server keepalive/latency probe; the server must
// echo it back immediately (§6).
type Ping struct {
	Nonce uint32 `json:"nonce"`
}

func (in Ping) Process(room *Room, session *Session) {
	session.Send(&PingOut{Nonce: in.Nonce})
}

// Join is the connection-lifecycle intent a client sends once per
// connection to receive its session id (§6). SessionID, if set, is a
// previously-assigned id the client is attempting to resume within its
// reconnection grace window (§4.4); omitted or unknown, a fresh session
// is started instead.
type Join struct {
	Room      string          `json:"room"`
	SessionID world.SessionID `json:"sessionId,omitempty"`
}

// Process admits the connection into the arena. A second JOIN on an
// already-admitted session (session.ID already set) is ignored, matching
// "malformed/unexpected message -> dropped silently" (§7).
func (in Join) Process(room *Room, session *Session) {
	if session.ID != "" {
		return
	}
	room.Join(session, in.SessionID)
}

// Leave is an explicit client -> server signal that the player is
// intentionally departing, letting Room.Leave skip reconnection grace
// even when the transport's own close code is ambiguous (§6).
type Leave struct{}

// Process is a no-op: the consented-leave decision is made in the
// transport's read loop, which observes this message directly before it
// ever reaches Dispatch.
func (Leave) Process(room *Room, session *Session) {}
