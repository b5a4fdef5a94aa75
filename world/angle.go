// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Angle is a facing/heading in radians, wrapped into (-Pi, Pi].
//
// This is a plain float32 rather than a fixed-point encoding: radians on
// the wire are required and no bit-packing tradeoff is budgeted for, so
// the extra precision is free to keep.
type Angle float32

const (
	Pi    Angle = math32.Pi
	TwoPi Angle = math32.Pi * 2
)

// Normalize wraps the angle into (-Pi, Pi].
func (a Angle) Normalize() Angle {
	f := float32(a)
	f = math32.Mod(f, float32(TwoPi))
	if f <= -math32.Pi {
		f += float32(TwoPi)
	} else if f > math32.Pi {
		f -= float32(TwoPi)
	}
	return Angle(f)
}

func (a Angle) Vec2() Vec2 {
	return VecFromAngle(a.Normalize())
}

// Diff returns the shortest signed difference a-other, wrapped into (-Pi, Pi].
func (a Angle) Diff(other Angle) Angle {
	return (a - other).Normalize()
}

// Lerp performs shortest-arc interpolation toward other.
func (a Angle) Lerp(other Angle, factor float32) Angle {
	return (a + Angle(float32(other.Diff(a))*factor)).Normalize()
}

func (a Angle) Float32() float32 {
	return float32(a)
}

func (a Angle) String() string {
	return fmt.Sprintf("%.01f degrees", float32(a)*(180/math32.Pi))
}
