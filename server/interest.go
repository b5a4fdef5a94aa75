// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/softbear-arena/arenasync/world"
	"github.com/softbear-arena/arenasync/world/quadtree"
)

// InterestManager is the two-tier spatial index of §4.3: a 1 Hz quadtree
// rebuild over player positions for steady-state visibility, plus an
// immediate linear-scan grant at bullet spawn time so fast bullets never
// wait out the refresh period.
type InterestManager struct {
	peers map[world.SessionID]map[world.SessionID]struct{}

	// bulletPeers records, per bullet, which sessions were granted
	// visibility at spawn time. Entries are removed once the bullet
	// itself is forgotten (§3 Bullet lifecycle).
	bulletPeers map[world.BulletID]map[world.SessionID]struct{}
}

func NewInterestManager() *InterestManager {
	return &InterestManager{
		peers:       make(map[world.SessionID]map[world.SessionID]struct{}),
		bulletPeers: make(map[world.BulletID]map[world.SessionID]struct{}),
	}
}

// Refresh rebuilds the quadtree from scratch and recomputes every
// session's visible-peer set. Called once per VisibilityRefresh interval,
// not every tick, per the two-tier design's rationale: players move
// slowly relative to VIEW_DISTANCE.
func (im *InterestManager) Refresh(state *world.GameState) {
	tree := quadtree.New(world.Map)
	state.ForEachPlayer(func(p *world.Player) bool {
		tree.Insert(quadtree.Entry{ID: p.ID, Position: p.Position})
		return true
	})

	next := make(map[world.SessionID]map[world.SessionID]struct{}, len(state.Players))
	state.ForEachPlayer(func(p *world.Player) bool {
		ids := tree.QueryRadius(p.Position, world.ViewDistance)
		set := make(map[world.SessionID]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		next[p.ID] = set
		return true
	})
	im.peers = next
}

// GrantBulletVisibility performs the sub-tick direct linear scan (§4.3):
// every player within VIEW_DISTANCE of spawn is immediately added to the
// new bullet's visibility set, bypassing the 1 Hz refresh.
func (im *InterestManager) GrantBulletVisibility(id world.BulletID, spawn world.Vec2, state *world.GameState) {
	granted := make(map[world.SessionID]struct{})
	state.ForEachPlayer(func(p *world.Player) bool {
		if p.Position.Distance(spawn) <= world.ViewDistance {
			granted[p.ID] = struct{}{}
		}
		return true
	})
	im.bulletPeers[id] = granted
}

func (im *InterestManager) ForgetBullet(id world.BulletID) {
	delete(im.bulletPeers, id)
}

// VisiblePlayers returns every player id session should receive state for,
// always including session's own id (§4.4: "the client's own Player is
// always in its view").
func (im *InterestManager) VisiblePlayers(session world.SessionID) map[world.SessionID]struct{} {
	set, ok := im.peers[session]
	if !ok {
		return map[world.SessionID]struct{}{session: {}}
	}
	out := make(map[world.SessionID]struct{}, len(set)+1)
	for id := range set {
		out[id] = struct{}{}
	}
	out[session] = struct{}{}
	return out
}

// VisibleBullets returns every bullet id session was granted visibility
// into at spawn time.
func (im *InterestManager) VisibleBullets(session world.SessionID) map[world.BulletID]struct{} {
	out := make(map[world.BulletID]struct{})
	for id, sessions := range im.bulletPeers {
		if _, ok := sessions[session]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
