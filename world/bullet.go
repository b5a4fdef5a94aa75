// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "time"

// Bullet is a straight-line ballistic trajectory descriptor, per the design
// note re-framing it as a trajectory rather than a moving position entity:
// (Spawn, Angle, Speed) alone determine its position at any time >= SpawnAt.
type Bullet struct {
	ID       BulletID  `json:"id"`
	OwnerID  SessionID `json:"ownerId"`
	Spawn    Vec2      `json:"spawn"`
	Angle    Angle     `json:"angle"`
	Speed    float32   `json:"speed"`
	SpawnAt  time.Time `json:"-"`

	// PrevTickPos is the live physics position as of the previous tick,
	// used for the swept-segment continuous collision test; never
	// replicated (clients extrapolate from Spawn/Angle/Speed instead).
	PrevTickPos Vec2 `json:"-"`

	// removeAt is set once a bullet is marked for removal, so the room can
	// retain it BulletRemoveGrace longer in replicated state after its
	// physics body is gone (§3 Bullet lifecycle).
	removeAt     time.Time
	markedRemove bool
}

func NewBullet(id BulletID, owner SessionID, spawn Vec2, angle Angle, now time.Time) *Bullet {
	return &Bullet{
		ID:          id,
		OwnerID:     owner,
		Spawn:       spawn,
		Angle:       angle,
		Speed:       BulletSpeed,
		SpawnAt:     now,
		PrevTickPos: spawn,
	}
}

// PositionAt returns the bullet's live position at time t, using only its
// replicated trajectory parameters — exactly what a client's extrapolation
// would compute from the same ADD message.
func (b *Bullet) PositionAt(t time.Time) Vec2 {
	dt := float32(t.Sub(b.SpawnAt).Seconds())
	return b.Spawn.Add(b.Angle.Vec2().Mul(b.Speed * dt))
}

func (b *Bullet) DistanceFromSpawn(t time.Time) float32 {
	return b.PositionAt(t).Sub(b.Spawn).Length()
}

// MarkRemove flags the bullet's physics body for removal this tick and
// schedules its replicated-state removal BulletRemoveGrace later.
func (b *Bullet) MarkRemove(now time.Time) {
	if b.markedRemove {
		return
	}
	b.markedRemove = true
	b.removeAt = now.Add(BulletRemoveGrace)
}

func (b *Bullet) MarkedForRemoval() bool {
	return b.markedRemove
}

// ReadyToForget reports whether the post-hit display grace has elapsed and
// the bullet can be dropped from replicated state entirely.
func (b *Bullet) ReadyToForget(now time.Time) bool {
	return b.markedRemove && !now.Before(b.removeAt)
}

// MaxLifetime is how long a bullet can exist before BulletMaxDistance is
// covered, per invariant 6.
func MaxLifetime() time.Duration {
	seconds := float32(BulletMaxDistance) / float32(BulletSpeed)
	return time.Duration(seconds * float32(time.Second))
}
