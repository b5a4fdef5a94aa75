// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "time"

// Tuning constants shared verbatim between server and client, per the
// design note that duplicating these by hand is a correctness hazard.
const (
	Map               = 2000 // arena side length, centered at origin
	PlayerRadius      = 25
	BulletRadius      = 5
	PlayerSpeed       = 200 // units/s
	BulletSpeed       = 1200
	BulletDamage      = 20
	MaxHealth         = 500
	TickRate          = 60
	ViewDistance      = 600
	BulletMaxDistance = 1000

	SpawnMargin = 200 // random spawn constrained to |x|,|y| <= Map/2 - SpawnMargin

	// PlayerDamping is the linear damping applied per second to player
	// velocity, so a zero-input command produces an immediate near-stop.
	PlayerDamping float32 = 10

	// OutOfBoundsMargin is how far past the wall a bullet is allowed to
	// travel before being removed, per the simulation's per-axis OOB check.
	OutOfBoundsMargin = 100
)

const (
	TickPeriod          = time.Second / TickRate
	ShootCooldown       = 200 * time.Millisecond
	VisibilityRefresh   = 1 * time.Second
	InterpolationDelay  = 100 * time.Millisecond
	BulletRemoveGrace   = 200 * time.Millisecond
	ReconnectionGrace   = 20 * time.Second
	SnapshotRetention   = 1 * time.Second
)

// Dt is the fixed simulation timestep in seconds.
const Dt float32 = 1.0 / TickRate

// HitRadius is the combined radius at which a bullet's swept path is
// considered to have touched a player's disk.
const HitRadius = PlayerRadius + BulletRadius

// MuzzleOffset is how far in front of the shooter's center a bullet spawns,
// chosen so it does not spawn already overlapping the shooter.
const MuzzleOffset = PlayerRadius + BulletRadius + 5

// ArenaHalf is half the arena's side length.
const ArenaHalf = Map / 2
