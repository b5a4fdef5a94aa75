// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync"

	"github.com/softbear-arena/arenasync/world"
)

func init() {
	registerOutbound(&StateDelta{}, &Kill{}, &PingOut{}, &Joined{})
}

// PlayerView is what the State Replicator puts on the wire for one player:
// either a full snapshot (first appearance) or a sparse set of changed
// fields (every subsequent tick), per §4.4's delta-encoding rule. Pointer
// fields are nil when that field is unchanged since the last emission to
// this session.
type PlayerView struct {
	ID               world.SessionID `json:"id"`
	Position         *world.Vec2     `json:"position,omitempty"`
	Facing           *world.Angle    `json:"facing,omitempty"`
	Health           *int            `json:"health,omitempty"`
	Velocity         *world.Vec2     `json:"velocity,omitempty"`
	LastProcessedSeq *uint32         `json:"lastProcessedSeq,omitempty"`
}

// BulletView is sent once in full on ADD; nothing about a live bullet ever
// changes afterward (§4.7 — the client extrapolates), so there is no delta
// form, only ADD and REMOVE.
type BulletView struct {
	ID      world.BulletID  `json:"id"`
	OwnerID world.SessionID `json:"ownerId"`
	Spawn   world.Vec2      `json:"spawn"`
	Angle   world.Angle     `json:"angle"`
	Speed   float32         `json:"speed"`
}

// StateDelta is the per-session STATE_DELTA message (§6). Pooled because
// one is allocated and populated fresh every tick for every connected
// session.
type StateDelta struct {
	Players          []PlayerView      `json:"players,omitempty"`
	Bullets          []BulletView      `json:"bulletsAdded,omitempty"`
	RemovedPlayers   []world.SessionID `json:"removedPlayers,omitempty"`
	RemovedBullets   []world.BulletID  `json:"removedBullets,omitempty"`
}

var stateDeltaPool = sync.Pool{
	New: func() interface{} { return new(StateDelta) },
}

func newStateDelta() *StateDelta {
	return stateDeltaPool.Get().(*StateDelta)
}

// Pool returns the StateDelta to its sync.Pool after it has been encoded
// and written to the socket, called from the write path once writePump
// is done with it.
func (d *StateDelta) Pool() {
	d.Players = d.Players[:0]
	d.Bullets = d.Bullets[:0]
	d.RemovedPlayers = d.RemovedPlayers[:0]
	d.RemovedBullets = d.RemovedBullets[:0]
	stateDeltaPool.Put(d)
}

// Kill is the broadcast-to-everyone out-of-band event (§4.1, §6).
type Kill struct {
	TargetID world.SessionID `json:"targetId"`
	KillerID world.SessionID `json:"killerId"`
}

func (*Kill) Pool() {}

// PingOut replies to a client's PING.
type PingOut struct {
	Nonce uint32 `json:"nonce"`
}

func (*PingOut) Pool() {}

// Joined replies to JOIN with the assigned session id.
type Joined struct {
	SessionID world.SessionID `json:"sessionId"`
}

func (*Joined) Pool() {}
