// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// SweptCircleHit reports whether the moving point's path from `from` to
// `to` ever comes within `radius` of `center`, i.e. a continuous (swept)
// circle-point collision test.
//
// Players and bullets here are circles, not oriented boxes, so the
// closest-point-on-segment test is sufficient and considerably cheaper.
// It exists because a bullet's per-tick displacement (20 units at 60 Hz)
// exceeds its own radius (5 units), so a same-tick point check alone
// could tunnel through a player disk entirely (§4.1).
func SweptCircleHit(from, to, center Vec2, radius float32) bool {
	seg := to.Sub(from)
	segLenSq := seg.LengthSquared()
	if segLenSq == 0 {
		return from.Distance(center) < radius
	}

	toCenter := center.Sub(from)
	t := toCenter.Dot(seg) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := from.Add(seg.Mul(t))
	return closest.Distance(center) < radius
}

// CirclesOverlap reports whether two disks of the given combined radius
// currently overlap.
func CirclesOverlap(a, b Vec2, combinedRadius float32) bool {
	return a.DistanceSquared(b) < combinedRadius*combinedRadius
}

// SeparateCircles pushes a and b apart along their center line so that they
// are exactly combinedRadius apart, splitting the correction evenly. Used
// for player-vs-player collision response (restitution 0, friction 0: pure
// positional correction, no bounce).
func SeparateCircles(a, b Vec2, combinedRadius float32) (newA, newB Vec2) {
	delta := b.Sub(a)
	dist := delta.Length()
	if dist == 0 {
		// Degenerate: nudge along an arbitrary axis to break the tie.
		delta = Vec2{X: 1}
		dist = 1
	}
	overlap := combinedRadius - dist
	if overlap <= 0 {
		return a, b
	}
	correction := delta.Div(dist).Mul(overlap / 2)
	return a.Sub(correction), b.Add(correction)
}
