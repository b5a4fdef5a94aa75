// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestAngle_Diff(t *testing.T) {
	for step := Angle(0.01); step < Angle(math32.Pi); step += 0.1 {
		for i := Angle(-math32.Pi * 2); i < Angle(math32.Pi*2); i += step {
			if !approx(float32(i.Diff(i-step)), float32(step)) {
				t.Errorf("%s expected %s, found %s", i, step, i.Diff(i-step))
			}
		}
	}
}

func TestAngle_Normalize(t *testing.T) {
	a := Angle(math32.Pi * 3)
	n := a.Normalize()
	if n <= -Pi || n > Pi {
		t.Errorf("expected normalized angle in (-Pi, Pi], got %s", n)
	}
}

func TestAngle_Lerp_ShortestArc(t *testing.T) {
	// From just past -Pi to just before Pi should go the "short way"
	// across the wrap point rather than the long way through 0.
	a := Angle(-math32.Pi + 0.1)
	b := Angle(math32.Pi - 0.1)
	mid := a.Lerp(b, 0.5)
	if mid > -math32.Pi+0.3 && mid < math32.Pi-0.3 {
		t.Errorf("lerp took the long way around: got %s", mid)
	}
}

func TestAngle_Vec2_RoundTrip(t *testing.T) {
	for f := float32(-10.0); f < 10; f += 0.25 {
		a := Angle(f).Normalize()
		back := a.Vec2().Angle()
		if !approx(0, float32(a.Diff(back))) {
			t.Errorf("expected %s got %s", a, back)
		}
	}
}
