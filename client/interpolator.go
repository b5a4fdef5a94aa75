// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"time"

	"github.com/softbear-arena/arenasync/world"
)

// snapshotRetention bounds how long a remote snapshot is kept once it can
// no longer be the newer end of an interpolation pair (§4.6).
const snapshotRetention = world.SnapshotRetention

type snapshot struct {
	position world.Vec2
	facing   world.Angle
	recvAt   time.Time
}

// Interpolator buffers timestamped snapshots for one remote player and
// renders a delayed, interpolated position/facing, trading a fixed
// INTERPOLATION_DELAY for smoothness against jitter and out-of-order
// arrival (§4.6).
type Interpolator struct {
	snapshots []snapshot
}

func NewInterpolator() *Interpolator {
	return &Interpolator{}
}

// Push records a freshly-received authoritative sample, keeping the buffer
// sorted by arrival time (snapshots normally arrive in order; an
// out-of-order one is inserted in place rather than discarded).
func (ip *Interpolator) Push(position world.Vec2, facing world.Angle, recvAt time.Time) {
	s := snapshot{position: position, facing: facing, recvAt: recvAt}

	i := len(ip.snapshots)
	for i > 0 && ip.snapshots[i-1].recvAt.After(recvAt) {
		i--
	}
	ip.snapshots = append(ip.snapshots, snapshot{})
	copy(ip.snapshots[i+1:], ip.snapshots[i:])
	ip.snapshots[i] = s

	ip.prune(recvAt)
}

// prune drops snapshots older than SnapshotRetention relative to now.
func (ip *Interpolator) prune(now time.Time) {
	cutoff := now.Add(-snapshotRetention)
	i := 0
	for i < len(ip.snapshots) && ip.snapshots[i].recvAt.Before(cutoff) {
		i++
	}
	// Always keep at least the newest-before-cutoff entry so a renderer
	// that samples at a delay never runs out of snapshots to hold.
	if i > 0 && i == len(ip.snapshots) {
		i--
	}
	ip.snapshots = ip.snapshots[i:]
}

// Sample returns the interpolated position/facing for rendering at now.
// render_time is now - INTERPOLATION_DELAY; if it is past the newest
// snapshot, the newest is held with no extrapolation; with one snapshot,
// that snapshot is returned outright (§4.6).
func (ip *Interpolator) Sample(now time.Time) (world.Vec2, world.Angle, bool) {
	if len(ip.snapshots) == 0 {
		return world.Vec2{}, 0, false
	}
	if len(ip.snapshots) == 1 {
		s := ip.snapshots[0]
		return s.position, s.facing, true
	}

	renderTime := now.Add(-world.InterpolationDelay)
	newest := ip.snapshots[len(ip.snapshots)-1]
	if !renderTime.Before(newest.recvAt) {
		return newest.position, newest.facing, true
	}

	for i := 0; i < len(ip.snapshots)-1; i++ {
		a, b := ip.snapshots[i], ip.snapshots[i+1]
		if renderTime.Before(a.recvAt) {
			continue
		}
		if renderTime.After(b.recvAt) {
			continue
		}
		span := b.recvAt.Sub(a.recvAt)
		if span <= 0 {
			return b.position, b.facing, true
		}
		factor := float32(renderTime.Sub(a.recvAt)) / float32(span)
		return a.position.Lerp(b.position, factor), a.facing.Lerp(b.facing, factor), true
	}

	oldest := ip.snapshots[0]
	return oldest.position, oldest.facing, true
}
