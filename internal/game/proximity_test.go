package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestIsNear(t *testing.T) {
	unit := mgl64.Vec3{0.5, 0.5, 0.5}
	rv := mgl64.Vec3{1.5, 1.5, 3}

	tests := []struct {
		name string
		a, b mgl64.Vec3
		want bool
	}{
		{"x gap 1.5", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3.5, 0, 0}, true},
		{"touching", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 0, 0}, true},
		{"gap exactly threshold", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, true},
		{"gap past threshold", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4.001, 0, 0}, false},
		{"overlapping on every axis", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, false},
		{"gap on z only", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 5}, true},
		// One qualifying axis is enough even when another axis is far apart.
		{"near on x far on z", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3.5, 0, 100}, true},
		{"spawn layout", DefaultPlayerSpawn, DefaultVehicleSpawn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNear(tt.a, unit, tt.b, rv, DefaultProximityThreshold))
			assert.Equal(t, tt.want, IsNear(tt.b, rv, tt.a, unit, DefaultProximityThreshold), "not symmetric")
		})
	}
}

func TestVehicleInReachNeedsBothPoses(t *testing.T) {
	s, _ := NewState(DefaultTuning(), nil)

	_, ok := vehicleInReach(s, DefaultProximityThreshold)
	assert.False(t, ok)

	s.SetActorTransform(ActorPlayer, nearSpot, mgl64.QuatIdent())
	_, ok = vehicleInReach(s, DefaultProximityThreshold)
	assert.False(t, ok)

	s.SetActorTransform(ActorVehicle, vehicleSpot, mgl64.QuatIdent())
	near, ok := vehicleInReach(s, DefaultProximityThreshold)
	assert.True(t, ok)
	assert.True(t, near)
}
