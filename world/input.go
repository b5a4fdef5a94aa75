// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "time"

// Keys is the held-down movement key state of one Input.
type Keys struct {
	W bool `json:"w"`
	A bool `json:"a"`
	S bool `json:"s"`
	D bool `json:"d"`
}

// Direction derives a unit (or zero) direction vector from the key state,
// normalizing diagonals to length 1 per the simulation's per-tick algorithm.
func (k Keys) Direction() Vec2 {
	var v Vec2
	if k.W {
		v.Y -= 1
	}
	if k.S {
		v.Y += 1
	}
	if k.A {
		v.X -= 1
	}
	if k.D {
		v.X += 1
	}
	if v.IsZero() {
		return v
	}
	return v.Norm()
}

// Input is one movement/aim sample a client sends the server, and the same
// shape the Predictor uses locally, per the shared-constants design note.
type Input struct {
	Seq       uint32    `json:"seq"`
	Keys      Keys      `json:"keys"`
	Angle     Angle     `json:"angle"`
	Timestamp time.Time `json:"-"`
}
