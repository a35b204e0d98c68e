package game

import (
	"io"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	state   *State
	physics *fakePhysics
	audio   *recordingAudio
	ctrl    *InteractionController
	events  []Event
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{physics: newFakePhysics(), audio: &recordingAudio{}}
	bus := NewEventBus()
	bus.SubscribeAll(func(e Event) { r.events = append(r.events, e) })

	var modes *ModeControl
	r.state, modes = NewState(DefaultTuning(), bus)
	r.ctrl = NewInteractionController(r.state, modes, r.physics, r.audio,
		DefaultTuning(), DefaultBindings(), zerolog.New(io.Discard))

	r.state.SetActorTransform(ActorVehicle, vehicleSpot, mgl64.QuatIdent())
	r.state.SetActorTransform(ActorPlayer, farSpot, mgl64.QuatIdent())
	return r
}

func (r *rig) step(presses ...string) {
	r.ctrl.Update(DefaultCookTick, presses)
}

func (r *rig) checkInvariants(t *testing.T) {
	t.Helper()
	ic := r.state.Interaction()
	assert.Equal(t, r.state.Mode() == ModeDriving, ic.InsideVehicle, "mode and inside flag diverged")
	if ic.CookingInProgress {
		assert.True(t, ic.InsideVehicle, "cooking outside the vehicle")
		assert.False(t, ic.VehicleMoving, "cooking while moving")
	}
	assert.GreaterOrEqual(t, ic.CookingProgress, 0)
	assert.LessOrEqual(t, ic.CookingProgress, CookComplete)
}

func (r *rig) enter(t *testing.T) {
	t.Helper()
	r.state.SetActorTransform(ActorPlayer, nearSpot, mgl64.QuatIdent())
	r.step("e")
	require.True(t, r.state.InsideVehicle())
}

func TestInteractFarAwayDoesNothing(t *testing.T) {
	r := newRig(t)
	r.step("e")

	assert.Equal(t, ModeWalking, r.state.Mode())
	assert.False(t, r.state.PromptVisible())
	assert.Equal(t, PhaseIdle, r.ctrl.Phase())
	r.checkInvariants(t)
}

func TestProximityShowsPrompt(t *testing.T) {
	r := newRig(t)
	r.state.SetActorTransform(ActorPlayer, nearSpot, mgl64.QuatIdent())
	r.step()

	assert.True(t, r.state.PromptVisible())
	assert.Equal(t, PhasePrompt, r.ctrl.Phase())

	r.state.SetActorTransform(ActorPlayer, farSpot, mgl64.QuatIdent())
	r.step()
	assert.False(t, r.state.PromptVisible())
}

func TestProximityWaitsForBothPoses(t *testing.T) {
	s, mc := NewState(DefaultTuning(), nil)
	c := NewInteractionController(s, mc, newFakePhysics(), nil, DefaultTuning(), DefaultBindings(), zerolog.Nop())
	s.SetActorTransform(ActorPlayer, nearSpot, mgl64.QuatIdent())

	c.Update(DefaultCookTick, nil)
	assert.False(t, s.Interaction().ProximityToVehicle)
}

func TestEnterAndExitVehicle(t *testing.T) {
	r := newRig(t)
	r.enter(t)

	assert.Equal(t, ModeDriving, r.state.Mode())
	assert.Equal(t, ActorVehicle, r.state.Controlled())
	assert.False(t, r.physics.enabled[ActorPlayer])
	assert.False(t, r.state.PromptVisible())
	assert.True(t, r.state.CookPromptVisible())
	assert.Equal(t, PhaseInsideIdle, r.ctrl.Phase())
	r.checkInvariants(t)

	// The vehicle drives off before the exit.
	moved := mgl64.Vec3{12, 1.5, -7}
	r.state.SetActorTransform(ActorVehicle, moved, mgl64.QuatIdent())
	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{0, 0, -5})
	r.step("e")

	assert.Equal(t, ModeWalking, r.state.Mode())
	assert.False(t, r.state.InsideVehicle())
	assert.True(t, r.physics.enabled[ActorPlayer])
	require.Len(t, r.physics.teleports, 1)
	assert.Equal(t, teleportCall{ActorPlayer, moved}, r.physics.teleports[0])
	pt, _ := r.state.Transform(ActorPlayer)
	assert.Equal(t, moved, pt.Position)

	last, ok := r.physics.lastLinear(ActorVehicle)
	require.True(t, ok)
	assert.Equal(t, velocityCall{ActorVehicle, 0, 0}, last)
	assert.Equal(t, mgl64.Vec3{}, r.state.Actor(ActorVehicle).VelocityCommand)
	assert.False(t, r.state.Interaction().VehicleMoving)
	r.checkInvariants(t)
}

func TestEnterExitInSameFrame(t *testing.T) {
	r := newRig(t)
	r.state.SetActorTransform(ActorPlayer, nearSpot, mgl64.QuatIdent())
	r.step("e", "e")

	assert.Equal(t, ModeWalking, r.state.Mode())
	assert.Len(t, r.physics.teleports, 1)
	r.checkInvariants(t)
}

func TestExitFromWalkingIsNoop(t *testing.T) {
	r := newRig(t)
	assert.False(t, r.ctrl.Interact())
	assert.Empty(t, r.physics.teleports)
	assert.Empty(t, r.physics.linear)
}

func TestVehicleMovingFollowsCommand(t *testing.T) {
	r := newRig(t)
	r.enter(t)

	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{0, 0, -5})
	r.step()
	assert.True(t, r.state.Interaction().VehicleMoving)
	assert.Equal(t, PhaseInsideMoving, r.ctrl.Phase())
	assert.False(t, r.state.CookPromptVisible())

	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{0, 0, -0.05})
	r.step()
	assert.False(t, r.state.Interaction().VehicleMoving)
}

func TestCookingRejectedWhenNotAllowed(t *testing.T) {
	r := newRig(t)
	assert.False(t, r.ctrl.StartCooking(), "outside the vehicle")

	r.enter(t)
	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{5, 0, 0})
	r.step("c")
	assert.False(t, r.state.Interaction().CookingInProgress, "while moving")
	assert.Zero(t, r.audio.count(true, SoundCooking))
}

func TestCookingCycle(t *testing.T) {
	r := newRig(t)
	r.enter(t)

	r.step("c")
	ic := r.state.Interaction()
	require.True(t, ic.CookingInProgress)
	assert.Equal(t, 0, ic.CookingProgress)
	assert.Equal(t, PhaseCooking, r.ctrl.Phase())
	assert.Equal(t, 1, r.audio.count(true, SoundCooking))

	prev := 0
	for i := 1; i < 50; i++ {
		r.step()
		p := r.state.Interaction().CookingProgress
		assert.GreaterOrEqual(t, p, prev)
		prev = p
		r.checkInvariants(t)
	}
	assert.Equal(t, 98, r.state.Interaction().CookingProgress)
	assert.Zero(t, r.state.Coins())

	r.step()
	ic = r.state.Interaction()
	assert.Equal(t, 100, ic.CookingProgress)
	assert.True(t, ic.CookingJustCompleted)
	assert.True(t, ic.CookingInProgress)
	assert.Equal(t, 1, r.state.Coins())
	assert.Equal(t, 1, r.audio.count(false, SoundCooking))
	assert.Equal(t, PhaseCookingDone, r.ctrl.Phase())

	// Still in the completion display: no second cycle, no exit.
	r.step("c", "e")
	assert.True(t, r.state.InsideVehicle())
	assert.Equal(t, 1, r.state.Coins())

	r.ctrl.Update(DefaultCookDoneDelay, nil)
	ic = r.state.Interaction()
	assert.False(t, ic.CookingJustCompleted)
	assert.False(t, ic.CookingInProgress)
	assert.Equal(t, PhaseInsideIdle, r.ctrl.Phase())

	r.step("c")
	ic = r.state.Interaction()
	assert.True(t, ic.CookingInProgress)
	assert.Equal(t, 0, ic.CookingProgress)
	assert.Equal(t, 2, r.audio.count(true, SoundCooking))
}

func TestDoubleCookPressRunsOneCycle(t *testing.T) {
	r := newRig(t)
	r.enter(t)

	r.step("c", "c")
	r.step("c")
	assert.Equal(t, 1, r.audio.count(true, SoundCooking))

	for i := 0; i < 60; i++ {
		r.step()
	}
	assert.Equal(t, 1, r.state.Coins())
}

func TestCookingAccumulatesFrameTime(t *testing.T) {
	r := newRig(t)
	r.enter(t)
	r.step("c")

	// 16ms frames: progress steps only on whole 100ms boundaries.
	for i := 0; i < 7; i++ {
		r.ctrl.Update(16*time.Millisecond, nil)
	}
	assert.Equal(t, 2, r.state.Interaction().CookingProgress)

	// A long frame banks several ticks at once.
	r.ctrl.Update(time.Second, nil)
	assert.Equal(t, 22, r.state.Interaction().CookingProgress)
}

func TestExitDisallowedWhileCooking(t *testing.T) {
	r := newRig(t)
	r.enter(t)
	r.step("c")

	r.step("e")
	assert.True(t, r.state.InsideVehicle())
	assert.Equal(t, ModeDriving, r.state.Mode())
	assert.Empty(t, r.physics.teleports)
	r.checkInvariants(t)
}

func TestEngineAudioEdges(t *testing.T) {
	r := newRig(t)
	r.enter(t)
	assert.Zero(t, r.audio.count(true, SoundEngine))

	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{0, 0, -5})
	r.step()
	r.step()
	r.step()
	assert.Equal(t, 1, r.audio.count(true, SoundEngine))

	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{})
	r.step()
	r.step()
	assert.Equal(t, 1, r.audio.count(false, SoundEngine))

	r.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{0, 0, -5})
	r.step()
	r.step("e")
	assert.Equal(t, 2, r.audio.count(true, SoundEngine))
	assert.Equal(t, 2, r.audio.count(false, SoundEngine))
}

func TestCloseSilencesAndCancels(t *testing.T) {
	r := newRig(t)
	r.enter(t)
	r.step("c")
	r.step()

	r.ctrl.Close()
	assert.False(t, r.state.Interaction().CookingInProgress)
	assert.Equal(t, 1, r.audio.count(false, SoundCooking))

	r.ctrl.Close()
	assert.Equal(t, 1, r.audio.count(false, SoundCooking))
}

func TestInteractionEvents(t *testing.T) {
	r := newRig(t)
	r.enter(t)
	r.step("c")
	for i := 0; i < 50; i++ {
		r.step()
	}

	var types []EventType
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{
		EventProximityChanged,
		EventModeChanged,
		EventCookingStarted,
		EventCookingCompleted,
		EventCoinAdded,
	}, types)
}
