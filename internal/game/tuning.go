package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Movement.
const (
	DefaultMoveSpeed = 5.0 // units/s along the actor's forward vector
	DefaultTurnRate  = 4.0 // rad/s around +Y
)

// Interaction.
const (
	DefaultProximityThreshold   = 2.0 // max axis gap for the enter prompt
	DefaultMovingSpeedThreshold = 0.1 // vehicle counts as moving above this speed
)

// Cooking.
const (
	DefaultCookTick      = 100 * time.Millisecond
	DefaultCookStep      = 2 // percent per tick
	DefaultCookDoneDelay = 2 * time.Second
	CookComplete         = 100
)

// Camera.
const DefaultCameraSmoothing = 0.1 // fraction of the remaining distance per frame

// Resources.
const (
	MaxHealth     = 100
	DefaultHealth = MaxHealth
)

// Default actor layout: a 1x1x1 avatar and a 3x3x6 RV resting on the ground plane.
var (
	DefaultCameraOffset       = mgl64.Vec3{0, 6, 12}
	DefaultPlayerSpawn        = mgl64.Vec3{0, 0.5, 0}
	DefaultVehicleSpawn       = mgl64.Vec3{5, 1.5, 0}
	DefaultPlayerHalfExtents  = mgl64.Vec3{0.5, 0.5, 0.5}
	DefaultVehicleHalfExtents = mgl64.Vec3{1.5, 1.5, 3}
)

// Tuning holds every overridable gameplay constant.
type Tuning struct {
	MoveSpeed            float64
	TurnRate             float64
	ProximityThreshold   float64
	MovingSpeedThreshold float64

	CookTick      time.Duration
	CookStep      int
	CookDoneDelay time.Duration

	CameraOffset    mgl64.Vec3
	CameraSmoothing float64

	PlayerSpawn        mgl64.Vec3
	VehicleSpawn       mgl64.Vec3
	PlayerHalfExtents  mgl64.Vec3
	VehicleHalfExtents mgl64.Vec3
}

func DefaultTuning() Tuning {
	return Tuning{
		MoveSpeed:            DefaultMoveSpeed,
		TurnRate:             DefaultTurnRate,
		ProximityThreshold:   DefaultProximityThreshold,
		MovingSpeedThreshold: DefaultMovingSpeedThreshold,
		CookTick:             DefaultCookTick,
		CookStep:             DefaultCookStep,
		CookDoneDelay:        DefaultCookDoneDelay,
		CameraOffset:         DefaultCameraOffset,
		CameraSmoothing:      DefaultCameraSmoothing,
		PlayerSpawn:          DefaultPlayerSpawn,
		VehicleSpawn:         DefaultVehicleSpawn,
		PlayerHalfExtents:    DefaultPlayerHalfExtents,
		VehicleHalfExtents:   DefaultVehicleHalfExtents,
	}
}

// Bindings maps logical actions to lower-cased key names.
type Bindings struct {
	Forward   string
	Backward  string
	TurnLeft  string
	TurnRight string
	Interact  string
	Cook      string
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:   "w",
		Backward:  "s",
		TurnLeft:  "a",
		TurnRight: "d",
		Interact:  "e",
		Cook:      "c",
	}
}
