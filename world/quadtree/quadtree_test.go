// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package quadtree

import (
	"testing"

	"github.com/softbear-arena/arenasync/world"
)

func contains(ids []world.SessionID, id world.SessionID) bool {
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}

// Scenario 5, "Interest cull": two players 1500 apart do not see each
// other; moved to 400 apart, they do.
func TestTree_QueryRadius_InterestCull(t *testing.T) {
	tr := New(world.Map)
	tr.Insert(Entry{ID: "a", Position: world.Vec2{X: 0}})
	tr.Insert(Entry{ID: "b", Position: world.Vec2{X: 1500}})

	peers := tr.QueryRadius(world.Vec2{X: 0}, world.ViewDistance)
	if contains(peers, "b") {
		t.Fatal("expected distant player to be culled")
	}

	tr2 := New(world.Map)
	tr2.Insert(Entry{ID: "a", Position: world.Vec2{X: 0}})
	tr2.Insert(Entry{ID: "b", Position: world.Vec2{X: 400}})
	peers = tr2.QueryRadius(world.Vec2{X: 0}, world.ViewDistance)
	if !contains(peers, "b") {
		t.Fatal("expected nearby player to be visible")
	}
}

func TestTree_SubdivideKeepsAllEntries(t *testing.T) {
	tr := New(world.Map)
	for i := 0; i < 200; i++ {
		tr.Insert(Entry{
			ID:       world.SessionID(rune('a' + i%26)),
			Position: world.Vec2{X: float32(i%50) * 10, Y: float32(i/50) * 10},
		})
	}
	if tr.Count() != 200 {
		t.Errorf("expected 200 entries retained, got %d", tr.Count())
	}
}

func TestTree_QuerySelfIncluded(t *testing.T) {
	tr := New(world.Map)
	tr.Insert(Entry{ID: "self", Position: world.Vec2{X: 5, Y: 5}})
	peers := tr.QueryRadius(world.Vec2{X: 5, Y: 5}, world.ViewDistance)
	if !contains(peers, "self") {
		t.Fatal("expected a player's own entry to be included in its query")
	}
}
