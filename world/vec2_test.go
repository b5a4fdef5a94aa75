// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.02
}

func TestVec2_Angle(t *testing.T) {
	tests := []struct {
		vec Vec2
		ang Angle
	}{
		{Vec2{0, 0}, 0},
		{Vec2{1, 1}, Pi / 4},
		{Vec2{0, 1}, Pi / 2},
		{Vec2{0, -1}, -Pi / 2},
	}

	for _, test := range tests {
		if !approx(float32(test.ang), float32(test.vec.Angle())) {
			t.Errorf("expected %v.Angle(): %s, got %s", test.vec, test.ang, test.vec.Angle())
		}
	}
}

func TestVec2_Norm(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := Vec2{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
		if v.IsZero() {
			continue
		}
		if !approx(1, v.Norm().Length()) {
			t.Errorf("expected unit length, got %f", v.Norm().Length())
		}
	}
}

func TestVec2_Lerp(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 10, Y: 20}
	mid := a.Lerp(b, 0.5)
	if !approx(5, mid.X) || !approx(10, mid.Y) {
		t.Errorf("expected (5, 10), got %v", mid)
	}
}

func BenchmarkVec2_Angle(b *testing.B) {
	const count = 1024
	vectors := make([]Vec2, count)
	for i := range vectors {
		vectors[i] = Vec2{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
	}
	b.ResetTimer()

	var acc Angle
	for i := 0; i < b.N; i++ {
		v := vectors[i&(count-1)]
		acc += v.Angle()
	}
	_ = acc
}
