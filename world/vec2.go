// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math"

	"github.com/chewxy/math32"
)

// Vec2 is a single-precision 2D vector, used for both positions and
// velocities. Shared verbatim between the server's Simulation Core and the
// client's Predictor/Interpolator so the two never drift in arithmetic.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v Vec2) Mul(factor float32) Vec2 {
	v.X *= factor
	v.Y *= factor
	return v
}

func (v Vec2) Div(divisor float32) Vec2 {
	return v.Mul(1.0 / divisor)
}

func (v Vec2) Add(other Vec2) Vec2 {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v Vec2) AddScaled(other Vec2, factor float32) Vec2 {
	v.X += other.X * factor
	v.Y += other.Y * factor
	return v
}

func (v Vec2) Sub(other Vec2) Vec2 {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec2) Angle() Angle {
	return Angle(math32.Atan2(v.Y, v.X))
}

func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

func (v Vec2) DistanceSquared(other Vec2) float32 {
	x := v.X - other.X
	y := v.Y - other.Y
	return x*x + y*y
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (v Vec2) Lerp(other Vec2, factor float32) Vec2 {
	v.X = Lerp(v.X, other.X, factor)
	v.Y = Lerp(v.Y, other.Y, factor)
	return v
}

func (v Vec2) Norm() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return v.Div(length)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// ClampAxes clamps each axis independently into [-limit, limit].
func (v Vec2) ClampAxes(limit float32) Vec2 {
	v.X = float32(math.Max(float64(-limit), math.Min(float64(limit), float64(v.X))))
	v.Y = float32(math.Max(float64(-limit), math.Min(float64(limit), float64(v.Y))))
	return v
}

// VecFromAngle returns the unit vector pointing along angle.
func VecFromAngle(angle Angle) Vec2 {
	s, c := math32.Sincos(float32(angle))
	return Vec2{X: c, Y: s}
}
