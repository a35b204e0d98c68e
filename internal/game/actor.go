package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ActorID int

const (
	ActorPlayer ActorID = iota
	ActorVehicle
	actorCount
)

// Actors lists every actor in feedback-application order.
var Actors = [actorCount]ActorID{ActorPlayer, ActorVehicle}

func (id ActorID) String() string {
	switch id {
	case ActorPlayer:
		return "player"
	case ActorVehicle:
		return "vehicle"
	}
	return "unknown"
}

func (id ActorID) valid() bool { return id >= 0 && id < actorCount }

var (
	// ForwardAxis is the canonical facing of an unrotated actor.
	ForwardAxis = mgl64.Vec3{0, 0, -1}
	UpAxis      = mgl64.Vec3{0, 1, 0}
)

// Transform is a world-space pose.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Forward returns the unit forward vector for the current orientation.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Orientation.Rotate(ForwardAxis).Normalize()
}

// YawPitchRoll decomposes the orientation in Y-X-Z order (yaw around +Y first).
func (t Transform) YawPitchRoll() (yaw, pitch, roll float64) {
	q := t.Orientation.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]
	yaw = math.Atan2(2*(x*z+w*y), 1-2*(x*x+y*y))
	pitch = math.Asin(clampF(2*(w*x-y*z), -1, 1))
	roll = math.Atan2(2*(x*y+w*z), 1-2*(x*x+z*z))
	return yaw, pitch, roll
}

// YawTransform builds a yaw-only transform.
func YawTransform(pos mgl64.Vec3, yaw float64) Transform {
	return Transform{Position: pos, Orientation: mgl64.QuatRotate(yaw, UpAxis)}
}

// Actor is a physically simulated body as seen by the core.
type Actor struct {
	ID                     ActorID
	Transform              Transform
	HalfExtents            mgl64.Vec3
	VelocityCommand        mgl64.Vec3
	AngularVelocityCommand float64

	// Reported is false until the simulator has pushed a transform.
	Reported bool
}
