// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package quadtree

import "github.com/softbear-arena/arenasync/world"

// AABB is an axis-aligned bounding box in corner coordinates (MinX, MinY is
// the bottom-left corner).
type AABB struct {
	MinX, MinY     float32
	Width, Height  float32
}

// FromCenter builds a box of the given width/height centered on c, since
// callers naturally think in center-relative terms.
func FromCenter(c world.Vec2, width, height float32) AABB {
	return AABB{MinX: c.X - width*0.5, MinY: c.Y - height*0.5, Width: width, Height: height}
}

// RadiusAABB builds a square box of side 2*radius centered on position —
// the shape the Interest Manager uses both for a player's presence
// footprint and for its visibility query.
func RadiusAABB(position world.Vec2, radius float32) AABB {
	return FromCenter(position, radius*2, radius*2)
}

func (a AABB) Intersects(b AABB) bool {
	return a.MinX+a.Width >= b.MinX && a.MinX <= b.MinX+b.Width &&
		a.MinY+a.Height >= b.MinY && a.MinY <= b.MinY+b.Height
}

func (a AABB) Contains(b AABB) bool {
	return a.MinX <= b.MinX && a.MinY <= b.MinY &&
		a.MinX+a.Width >= b.MinX+b.Width && a.MinY+a.Height >= b.MinY+b.Height
}

// Quadrant returns the i'th (0..3) quarter of a: 0=bottom-left,
// 1=bottom-right, 2=top-right, 3=top-left.
func (a AABB) Quadrant(i int) AABB {
	width := a.Width * 0.5
	height := a.Height * 0.5
	minX, minY := a.MinX, a.MinY
	switch i {
	case 1:
		minX += width
	case 2:
		minX += width
		minY += height
	case 3:
		minY += height
	}
	return AABB{MinX: minX, MinY: minY, Width: width, Height: height}
}

func (a AABB) Quadrants() [4]AABB {
	var out [4]AABB
	for i := range out {
		out[i] = a.Quadrant(i)
	}
	return out
}
