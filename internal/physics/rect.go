package physics

import "math"

// RectF is an axis-aligned rectangle on the ground plane (X right, Z toward
// the viewer).
type RectF struct {
	X0, Z0 float64
	X1, Z1 float64
}

func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Z0 < o.Z1 && r.Z1 > o.Z0
}

func (r RectF) Contains(o RectF) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Z0 >= r.Z0 && o.Z1 <= r.Z1
}

// Penetration returns how far the rectangles must move apart on each axis to
// stop overlapping, both zero when they are disjoint. A rectangle nested inside
// the other still reports the full separation distance.
func (r RectF) Penetration(o RectF) (dx, dz float64) {
	if !r.Intersects(o) {
		return 0, 0
	}
	dx = (r.X1-r.X0)/2 + (o.X1-o.X0)/2 - math.Abs((r.X0+r.X1)/2-(o.X0+o.X1)/2)
	dz = (r.Z1-r.Z0)/2 + (o.Z1-o.Z0)/2 - math.Abs((r.Z0+r.Z1)/2-(o.Z0+o.Z1)/2)
	return dx, dz
}

// footprint is the ground rectangle covered by a box of half extents hx, hz
// centred at (x, z) and rotated by yaw about +Y.
func footprint(x, z, hx, hz, yaw float64) RectF {
	c, s := math.Abs(math.Cos(yaw)), math.Abs(math.Sin(yaw))
	ex := c*hx + s*hz
	ez := s*hx + c*hz
	return RectF{X0: x - ex, Z0: z - ez, X1: x + ex, Z1: z + ez}
}
