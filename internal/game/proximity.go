package game

import "github.com/go-gl/mathgl/mgl64"

// IsNear reports whether two boxes are within threshold of each other on at
// least one world axis. Per axis the gap is |Δcenter| - (halfA + halfB); an
// axis counts when its gap lies in [0, threshold], both ends inclusive. This is
// an OR across axes, not a 3-D box distance: overlap on two axes plus a small
// gap on the third is near, and so is a small gap on one axis with the boxes
// far apart on another.
func IsNear(aPos, aHalf, bPos, bHalf mgl64.Vec3, threshold float64) bool {
	for axis := 0; axis < 3; axis++ {
		gap := absF(aPos[axis]-bPos[axis]) - (aHalf[axis] + bHalf[axis])
		if gap >= 0 && gap <= threshold {
			return true
		}
	}
	return false
}

// vehicleInReach evaluates IsNear for the player and the vehicle. ok is false
// when either actor has not reported a pose yet.
func vehicleInReach(s *State, threshold float64) (near, ok bool) {
	pt, pok := s.Transform(ActorPlayer)
	vt, vok := s.Transform(ActorVehicle)
	if !pok || !vok {
		return false, false
	}
	p := s.Actor(ActorPlayer)
	v := s.Actor(ActorVehicle)
	return IsNear(pt.Position, p.HalfExtents, vt.Position, v.HalfExtents, threshold), true
}
