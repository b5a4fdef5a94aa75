// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"testing"
	"time"

	"github.com/softbear-arena/arenasync/world"
)

func TestBulletTracker_FiresFeedbackAtMostOnce(t *testing.T) {
	tracker := NewBulletTracker()
	now := time.Now()
	b := NewTrackedBullet(1, "shooter", world.Vec2{}, 0, world.BulletSpeed, now)
	tracker.Add(b)

	hitAt := now.Add(time.Duration(float32(100)/world.BulletSpeed*float32(time.Second)) + time.Millisecond)
	candidates := map[world.SessionID]world.Vec2{"target": {X: 100}}

	fired := 0
	for i := 0; i < 5; i++ {
		tracker.CheckLocalHits(hitAt, candidates, func(world.BulletID, world.SessionID) { fired++ })
	}

	if fired != 1 {
		t.Errorf("expected feedback to fire exactly once, got %d", fired)
	}
}

func TestBulletTracker_NeverFeedsBackOnOwner(t *testing.T) {
	tracker := NewBulletTracker()
	now := time.Now()
	b := NewTrackedBullet(1, "shooter", world.Vec2{}, 0, world.BulletSpeed, now)
	tracker.Add(b)

	candidates := map[world.SessionID]world.Vec2{"shooter": {X: 1}}
	fired := 0
	tracker.CheckLocalHits(now, candidates, func(world.BulletID, world.SessionID) { fired++ })

	if fired != 0 {
		t.Errorf("expected no feedback against the bullet's own owner, got %d", fired)
	}
}
