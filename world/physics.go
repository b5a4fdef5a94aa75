// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// StepPlayer advances one player body by one tick of duration dt.
//
// If commanded is non-nil, it is this tick's freshly-drained input: the
// body's velocity is SET (not damped) to the commanded direction scaled by
// PlayerSpeed, and facing/LastProcessedSeq are updated from it. If
// commanded is nil (no input arrived this tick), the existing velocity
// instead decays under linear damping, so a session that stops sending
// input coasts to a stop rather than gliding forever or freezing in place.
//
// This is the exact function both the server's Simulation Core and the
// client's Predictor call, per the shared-constants design note: the two
// can never disagree about how a body moves, only about what inputs they
// have seen so far.
func StepPlayer(p *Player, commanded *Input, dt float32) {
	if commanded != nil {
		p.Velocity = commanded.Keys.Direction().Mul(PlayerSpeed)
		p.Facing = commanded.Angle.Normalize()
		p.LastProcessedSeq = commanded.Seq
	} else {
		p.Velocity = p.Velocity.Mul(1 / (1 + dt*PlayerDamping))
	}

	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.ClampToArena()
}

// ResolvePlayerCollision pushes two overlapping player disks apart. Called
// once per tick per overlapping pair by the Simulation Core; the client
// mirror intentionally skips this (§4.5: "no other players"), which is the
// accepted source of prediction divergence corrected by reconciliation.
func ResolvePlayerCollision(a, b *Player) {
	if !CirclesOverlap(a.Position, b.Position, 2*PlayerRadius) {
		return
	}
	a.Position, b.Position = SeparateCircles(a.Position, b.Position, 2*PlayerRadius)
	a.ClampToArena()
	b.ClampToArena()
}
