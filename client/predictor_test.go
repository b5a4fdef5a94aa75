// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"testing"

	"github.com/softbear-arena/arenasync/world"
)

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 0.02
}

// Reconciliation idempotence (§8 Laws): replaying a server snapshot that
// already reflects every input the predictor sent leaves the predicted
// position unchanged, since there is nothing left to re-apply.
func TestPredictor_ReconcileAtHeadIsNoOp(t *testing.T) {
	p := NewPredictor("p1", world.Vec2{})
	for seq := uint32(1); seq <= 10; seq++ {
		p.ApplyLocal(world.Keys{D: true}, 0)
	}
	before := p.Position()

	p.Reconcile(before, 10)

	if !approx(p.Position().X, before.X) || !approx(p.Position().Y, before.Y) {
		t.Errorf("expected reconciliation at head to be a no-op, got %v want %v", p.Position(), before)
	}
}

// §8 scenario 6: the client predicts inputs 10..20, the server has only
// applied up to 15. Re-applying 16..20 after reconciliation reproduces the
// same position the predictor already had before the snapshot arrived.
func TestPredictor_ReconcileReplaysUnacknowledged(t *testing.T) {
	p := NewPredictor("p1", world.Vec2{})

	// Fast-forward the predictor's nextSeq to 9 so the next ApplyLocal
	// calls produce seqs 10..20, matching the scenario's numbering.
	for i := 0; i < 9; i++ {
		p.ApplyLocal(world.Keys{}, 0)
	}

	var atFifteen world.Vec2
	for seq := 10; seq <= 20; seq++ {
		p.ApplyLocal(world.Keys{D: true}, 0)
		if seq == 15 {
			atFifteen = p.Position()
		}
	}
	predictedAtTwenty := p.Position()

	// Server snapshot reflects only up to seq 15; Reconcile teleports to it
	// and replays 16..20 internally.
	p.Reconcile(atFifteen, 15)

	if !approx(p.Position().X, predictedAtTwenty.X) || !approx(p.Position().Y, predictedAtTwenty.Y) {
		t.Errorf("expected replay to reach %v, got %v", predictedAtTwenty, p.Position())
	}
}

// History is bounded at ~120 entries; older unacknowledged inputs are
// dropped from the oldest end (§4.5).
func TestPredictor_HistoryBounded(t *testing.T) {
	p := NewPredictor("p1", world.Vec2{})
	for i := 0; i < historyCapacity+50; i++ {
		p.ApplyLocal(world.Keys{D: true}, 0)
	}
	if len(p.history) != historyCapacity {
		t.Errorf("expected history capped at %d, got %d", historyCapacity, len(p.history))
	}
	if p.history[0].Seq != uint32(50+1) {
		t.Errorf("expected oldest retained seq %d, got %d", 51, p.history[0].Seq)
	}
}
