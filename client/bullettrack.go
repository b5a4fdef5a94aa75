// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"time"

	"github.com/softbear-arena/arenasync/world"
)

// TrackedBullet extrapolates a bullet's position client-side from only its
// spawn parameters, matching §4.7: the server never sends a live bullet
// position, only (spawn, angle, speed) at ADD and a REMOVE marker.
type TrackedBullet struct {
	ID       world.BulletID
	OwnerID  world.SessionID
	spawn    world.Vec2
	angle    world.Angle
	speed    float32
	recvAt   time.Time
	feedback bool
}

func NewTrackedBullet(id world.BulletID, owner world.SessionID, spawn world.Vec2, angle world.Angle, speed float32, recvAt time.Time) *TrackedBullet {
	return &TrackedBullet{ID: id, OwnerID: owner, spawn: spawn, angle: angle, speed: speed, recvAt: recvAt}
}

// PositionAt returns the extrapolated position at render time t.
func (b *TrackedBullet) PositionAt(t time.Time) world.Vec2 {
	dt := float32(t.Sub(b.recvAt).Seconds())
	return b.spawn.Add(b.angle.Vec2().Mul(b.speed * dt))
}

// BulletTracker holds every bullet currently ADDed but not yet REMOVEd, and
// provides advisory-only local hit detection for audio/flash feedback.
type BulletTracker struct {
	bullets map[world.BulletID]*TrackedBullet
}

func NewBulletTracker() *BulletTracker {
	return &BulletTracker{bullets: make(map[world.BulletID]*TrackedBullet)}
}

func (t *BulletTracker) Add(b *TrackedBullet) {
	t.bullets[b.ID] = b
}

func (t *BulletTracker) Remove(id world.BulletID) {
	delete(t.bullets, id)
}

// CheckLocalHits runs approximate hit detection against candidate disks
// (the local predicted self plus interpolated remote players) purely for
// presentation feedback. It never mutates authoritative or displayed
// health, and a given bullet fires its feedback callback at most once
// (§4.7, §9 "Local hit feedback is advisory").
func (t *BulletTracker) CheckLocalHits(now time.Time, candidates map[world.SessionID]world.Vec2, onHit func(bulletID world.BulletID, target world.SessionID)) {
	for id, b := range t.bullets {
		if b.feedback {
			continue
		}
		pos := b.PositionAt(now)
		for target, center := range candidates {
			if target == b.OwnerID {
				continue
			}
			if world.CirclesOverlap(pos, center, world.HitRadius) {
				b.feedback = true
				onHit(id, target)
				break
			}
		}
	}
}
