// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Player is the authoritative (or, on the client, predicted-mirror) state
// of one participant's body. The Simulation Core is its only writer on the
// server; the Predictor is its only writer on the client (§3 ownership
// summary).
type Player struct {
	ID               SessionID `json:"id"`
	Position         Vec2      `json:"position"`
	Facing           Angle     `json:"facing"`
	Health           int       `json:"health"`
	Velocity         Vec2      `json:"velocity"`
	LastProcessedSeq uint32    `json:"lastProcessedSeq"`
}

// NewPlayer creates a live player at the given spawn position, full health,
// zero velocity, facing along +X.
func NewPlayer(id SessionID, spawn Vec2) *Player {
	return &Player{
		ID:       id,
		Position: spawn,
		Health:   MaxHealth,
		Facing:   0,
	}
}

func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// Damage reduces health by amount, clamped at zero, and reports whether
// this hit was the one that brought the player from alive to dead.
func (p *Player) Damage(amount int) (died bool) {
	if p.IsDead() {
		return false
	}
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		died = true
	}
	return died
}

// ClampToArena pushes the player's center back inside the arena's playable
// bounds, leaving an epsilon-free margin of exactly PlayerRadius.
func (p *Player) ClampToArena() {
	const bound = ArenaHalf - PlayerRadius
	p.Position = p.Position.ClampAxes(bound)
}
