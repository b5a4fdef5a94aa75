// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package client holds the library-side counterpart to the server's
// Simulation Core: a local physics mirror with prediction/reconciliation
// (§4.5), a remote-entity interpolator (§4.6), and client-side bullet
// extrapolation (§4.7). Rendering and input capture are out of scope; this
// package only owns the math a renderer would read from.
package client

import "github.com/softbear-arena/arenasync/world"

// historyCapacity bounds the unacknowledged-input ring buffer at ~2s of
// input at TickRate, per §4.5: anything older must already have been
// acknowledged or the connection is effectively dead.
const historyCapacity = 120

// Predictor mirrors the server's player physics locally using the exact
// same world.StepPlayer function the Simulation Core calls, so the two are
// provably the same code path and can only drift in which inputs each has
// seen, not in the physics law itself (§9 "Shared constants").
type Predictor struct {
	body    world.Player
	history []world.Input
	nextSeq uint32
}

// NewPredictor creates a predictor mirror starting at spawn.
func NewPredictor(self world.SessionID, spawn world.Vec2) *Predictor {
	return &Predictor{
		body: *world.NewPlayer(self, spawn),
	}
}

// Position is the predicted render position for the local player.
func (p *Predictor) Position() world.Vec2 { return p.body.Position }

// Facing is the predicted render facing for the local player.
func (p *Predictor) Facing() world.Angle { return p.body.Facing }

// ApplyLocal steps the mirror with a freshly-captured local input, assigns
// it the next sequence number, appends it to history, and returns the
// input to send to the server (§4.5 steps 1-5).
func (p *Predictor) ApplyLocal(keys world.Keys, angle world.Angle) world.Input {
	p.nextSeq++
	in := world.Input{Seq: p.nextSeq, Keys: keys, Angle: angle}

	world.StepPlayer(&p.body, &in, world.Dt)

	if len(p.history) >= historyCapacity {
		p.history = p.history[1:]
	}
	p.history = append(p.history, in)

	return in
}

// Reconcile applies an authoritative server snapshot: teleports the mirror
// to (position, lastProcessedSeq), drops every history entry already
// acknowledged, and re-simulates the rest in order (§4.5 steps on receipt).
func (p *Predictor) Reconcile(position world.Vec2, lastProcessedSeq uint32) {
	p.body.Position = position
	p.body.Velocity = world.Vec2{}
	p.body.LastProcessedSeq = lastProcessedSeq

	kept := p.history[:0]
	for _, in := range p.history {
		if in.Seq <= lastProcessedSeq {
			continue
		}
		kept = append(kept, in)
	}
	p.history = kept

	for i := range p.history {
		world.StepPlayer(&p.body, &p.history[i], world.Dt)
	}
}
