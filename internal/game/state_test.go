package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNewStateDefaults(t *testing.T) {
	s, _ := NewState(DefaultTuning(), nil)

	assert.Equal(t, ModeWalking, s.Mode())
	assert.Equal(t, ActorPlayer, s.Controlled())
	assert.Equal(t, 0, s.Coins())
	assert.Equal(t, 100, s.Health())
	assert.Equal(t, InteractionState{}, s.Interaction())

	_, ok := s.Transform(ActorPlayer)
	assert.False(t, ok)
	assert.Equal(t, DefaultVehicleSpawn, s.Actor(ActorVehicle).Transform.Position)
}

func TestModeControlKeepsInsideInSync(t *testing.T) {
	var events []Event
	bus := NewEventBus()
	bus.Subscribe(EventModeChanged, func(e Event) { events = append(events, e) })
	s, mc := NewState(DefaultTuning(), bus)

	mc.SetMode(ModeDriving)
	assert.True(t, s.InsideVehicle())
	assert.Equal(t, ActorVehicle, s.Controlled())

	mc.SetMode(ModeDriving)
	mc.SetMode(ModeWalking)
	assert.False(t, s.InsideVehicle())

	assert.Equal(t, []Event{
		{Type: EventModeChanged, Mode: ModeDriving, Flag: true},
		{Type: EventModeChanged, Mode: ModeWalking, Flag: false},
	}, events)
}

func TestHealthIsClamped(t *testing.T) {
	var seen []int
	bus := NewEventBus()
	bus.Subscribe(EventHealthChanged, func(e Event) { seen = append(seen, e.Value) })
	s, _ := NewState(DefaultTuning(), bus)

	s.SetHealth(150)
	assert.Equal(t, 100, s.Health())
	s.SetHealth(-5)
	assert.Equal(t, 0, s.Health())
	assert.True(t, s.Resources().IsDead())
	s.SetHealth(40)
	assert.InDelta(t, 0.4, s.Resources().Fraction(), 1e-9)
	assert.True(t, s.Resources().IsInjured())
	s.ResetHealth()
	assert.Equal(t, 100, s.Health())

	assert.Equal(t, []int{0, 40, 100}, seen)
}

func TestCoins(t *testing.T) {
	s, _ := NewState(DefaultTuning(), nil)
	s.AddCoin()
	s.AddCoin()
	assert.Equal(t, 2, s.Coins())
	s.ResetCoins()
	assert.Equal(t, 0, s.Coins())
}

func TestCookingProgressIsClamped(t *testing.T) {
	s, _ := NewState(DefaultTuning(), nil)
	s.SetCookingState(true, 140, false)
	assert.Equal(t, CookComplete, s.Interaction().CookingProgress)
	s.SetCookingState(true, -3, false)
	assert.Equal(t, 0, s.Interaction().CookingProgress)
}

func TestInvalidActorIsIgnored(t *testing.T) {
	s, _ := NewState(DefaultTuning(), nil)
	s.SetActorTransform(ActorID(7), mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent())
	_, ok := s.Transform(ActorID(7))
	assert.False(t, ok)
	assert.Equal(t, Actor{}, s.Actor(ActorID(-1)))
}

func TestSnapshotHidesRidingPlayer(t *testing.T) {
	s, mc := NewState(DefaultTuning(), nil)
	s.SetActorTransform(ActorVehicle, vehicleSpot, mgl64.QuatRotate(0.5, UpAxis))

	snap := s.Snapshot()
	assert.True(t, snap.Player.Visible)
	assert.True(t, snap.Vehicle.Reported)
	assert.False(t, snap.Player.Reported)
	assert.InDelta(t, 0.5, snap.Vehicle.Yaw, 1e-9)

	mc.SetMode(ModeDriving)
	snap = s.Snapshot()
	assert.False(t, snap.Player.Visible)
	assert.True(t, snap.Vehicle.Visible)
	assert.True(t, snap.CookPrompt)
}
