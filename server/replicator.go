// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/softbear-arena/arenasync/world"
)

// playerSnapshot is the last state of a player actually emitted to one
// session, used both to detect "first appearance" (full snapshot) and to
// compute per-field deltas thereafter (§4.4).
type playerSnapshot struct {
	position         world.Vec2
	facing           world.Angle
	health           int
	velocity         world.Vec2
	lastProcessedSeq uint32
}

// sessionView is one session's view set: what it has already been sent,
// so the Replicator knows what changed and what newly entered or left.
type sessionView struct {
	players map[world.SessionID]playerSnapshot
	bullets map[world.BulletID]struct{}
}

func newSessionView() sessionView {
	return sessionView{
		players: make(map[world.SessionID]playerSnapshot),
		bullets: make(map[world.BulletID]struct{}),
	}
}

// Replicator turns authoritative GameState plus an InterestManager's view
// sets into one StateDelta per session, every tick, after the Simulation
// Core has finished writing (§4.4).
type Replicator struct {
	interest *InterestManager
}

func NewReplicator(interest *InterestManager) *Replicator {
	return &Replicator{interest: interest}
}

// BuildDelta produces session's STATE_DELTA for this tick and updates its
// stored view in place.
func (r *Replicator) BuildDelta(session *Session, state *world.GameState) *StateDelta {
	delta := newStateDelta()
	view := &session.view

	visiblePlayers := r.interest.VisiblePlayers(session.ID)
	for id := range view.players {
		_, stillVisible := visiblePlayers[id]
		_, exists := state.Players[id]
		if stillVisible && exists {
			continue
		}
		delta.RemovedPlayers = append(delta.RemovedPlayers, id)
		delete(view.players, id)
	}

	for id := range visiblePlayers {
		p, ok := state.Player(id)
		if !ok {
			continue
		}
		prev, seen := view.players[id]
		if !seen {
			delta.Players = append(delta.Players, fullPlayerView(p))
		} else if pv, changed := diffPlayerView(prev, p); changed {
			delta.Players = append(delta.Players, pv)
		}
		view.players[id] = playerSnapshot{
			position:         p.Position,
			facing:           p.Facing,
			health:           p.Health,
			velocity:         p.Velocity,
			lastProcessedSeq: p.LastProcessedSeq,
		}
	}

	for id := range view.bullets {
		if _, stillVisible := r.interest.VisibleBullets(session.ID)[id]; stillVisible {
			if _, exists := state.Bullets[id]; exists {
				continue
			}
		}
		delta.RemovedBullets = append(delta.RemovedBullets, id)
		delete(view.bullets, id)
	}
	for id := range r.interest.VisibleBullets(session.ID) {
		if _, seen := view.bullets[id]; seen {
			continue
		}
		b, ok := state.Bullet(id)
		if !ok {
			continue
		}
		delta.Bullets = append(delta.Bullets, BulletView{
			ID:      b.ID,
			OwnerID: b.OwnerID,
			Spawn:   b.Spawn,
			Angle:   b.Angle,
			Speed:   b.Speed,
		})
		view.bullets[id] = struct{}{}
	}

	return delta
}

func fullPlayerView(p *world.Player) PlayerView {
	pos, facing, health, vel, seq := p.Position, p.Facing, p.Health, p.Velocity, p.LastProcessedSeq
	return PlayerView{
		ID:               p.ID,
		Position:         &pos,
		Facing:           &facing,
		Health:           &health,
		Velocity:         &vel,
		LastProcessedSeq: &seq,
	}
}

// diffPlayerView reports only the fields that changed since prev, per the
// delta-encoding rule in §4.4. The local player's LastProcessedSeq is
// always included when changed, which a plain field comparison already
// guarantees without special-casing "am I this session's own player".
func diffPlayerView(prev playerSnapshot, p *world.Player) (PlayerView, bool) {
	view := PlayerView{ID: p.ID}
	changed := false

	if prev.position != p.Position {
		pos := p.Position
		view.Position = &pos
		changed = true
	}
	if prev.facing != p.Facing {
		facing := p.Facing
		view.Facing = &facing
		changed = true
	}
	if prev.health != p.Health {
		health := p.Health
		view.Health = &health
		changed = true
	}
	if prev.velocity != p.Velocity {
		vel := p.Velocity
		view.Velocity = &vel
		changed = true
	}
	if prev.lastProcessedSeq != p.LastProcessedSeq {
		seq := p.LastProcessedSeq
		view.LastProcessedSeq = &seq
		changed = true
	}

	return view, changed
}
