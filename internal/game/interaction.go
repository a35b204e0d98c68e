package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePrompt
	PhaseInsideIdle
	PhaseInsideMoving
	PhaseCooking
	PhaseCookingDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrompt:
		return "prompt"
	case PhaseInsideIdle:
		return "inside_idle"
	case PhaseInsideMoving:
		return "inside_moving"
	case PhaseCooking:
		return "cooking"
	case PhaseCookingDone:
		return "cooking_done"
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PhaseOf derives the interaction phase from the state flags.
func PhaseOf(ic InteractionState) Phase {
	switch {
	case ic.CookingInProgress && ic.CookingJustCompleted:
		return PhaseCookingDone
	case ic.CookingInProgress:
		return PhaseCooking
	case ic.InsideVehicle && ic.VehicleMoving:
		return PhaseInsideMoving
	case ic.InsideVehicle:
		return PhaseInsideIdle
	case ic.ProximityToVehicle:
		return PhasePrompt
	}
	return PhaseIdle
}

// InteractionController owns enter/exit and the cooking cycle. It is the only
// holder of the ModeControl.
type InteractionController struct {
	state    *State
	modes    *ModeControl
	physics  Physics
	audio    Audio
	tuning   Tuning
	bindings Bindings
	log      zerolog.Logger

	cookElapsed time.Duration // time banked toward the next progress step
	doneLeft    time.Duration // remaining completion display time

	engineOn  bool
	cookingOn bool
}

func NewInteractionController(s *State, mc *ModeControl, p Physics, a Audio, t Tuning, b Bindings, log zerolog.Logger) *InteractionController {
	if a == nil {
		a = NopAudio{}
	}
	return &InteractionController{
		state:    s,
		modes:    mc,
		physics:  p,
		audio:    a,
		tuning:   t,
		bindings: b,
		log:      log.With().Str("component", "interaction").Logger(),
	}
}

func (c *InteractionController) Phase() Phase {
	return PhaseOf(c.state.Interaction())
}

// Update runs one frame: proximity, moving flag, discrete presses in arrival
// order, the cooking timer and finally the audio cues.
func (c *InteractionController) Update(dt time.Duration, presses []string) {
	if near, ok := vehicleInReach(c.state, c.tuning.ProximityThreshold); ok {
		c.state.SetProximity(near)
	}
	c.refreshMoving()

	started := false
	for _, key := range presses {
		switch key {
		case c.bindings.Interact:
			c.Interact()
		case c.bindings.Cook:
			if c.StartCooking() {
				started = true
			}
		}
	}

	// The frame that starts a cycle does not count toward it.
	if !started {
		c.advanceCooking(dt)
	}
	c.syncAudio()
}

func (c *InteractionController) refreshMoving() {
	if !c.state.InsideVehicle() {
		return
	}
	v := c.state.Actor(ActorVehicle).VelocityCommand
	c.state.SetVehicleMoving(v.Len() > c.tuning.MovingSpeedThreshold)
}

// Interact enters the vehicle from the prompt or exits it from inside. It is a
// no-op while a cooking cycle (including its completion display) is running,
// and when the player is neither near nor inside.
func (c *InteractionController) Interact() bool {
	ic := c.state.Interaction()
	switch {
	case ic.CookingInProgress:
		c.log.Debug().Msg("interact ignored while cooking")
		return false
	case ic.InsideVehicle:
		c.exitVehicle()
		return true
	case ic.ProximityToVehicle:
		c.enterVehicle()
		return true
	}
	return false
}

func (c *InteractionController) enterVehicle() {
	c.modes.SetMode(ModeDriving)
	c.physics.SetBodyEnabled(ActorPlayer, false)
	c.log.Debug().Msg("entered vehicle")
}

// exitVehicle stops the vehicle and places the player at its current position.
func (c *InteractionController) exitVehicle() {
	c.modes.SetMode(ModeWalking)

	c.physics.SetLinearVelocity(ActorVehicle, 0, 0)
	c.physics.SetAngularVelocity(ActorVehicle, 0)
	c.state.SetVelocityCommand(ActorVehicle, mgl64.Vec3{})
	c.state.SetAngularVelocityCommand(ActorVehicle, 0)
	c.state.SetVehicleMoving(false)

	vehicle := c.state.Actor(ActorVehicle).Transform
	player := c.state.Actor(ActorPlayer).Transform
	c.state.SetActorTransform(ActorPlayer, vehicle.Position, player.Orientation)
	c.physics.Teleport(ActorPlayer, vehicle.Position)
	c.physics.SetBodyEnabled(ActorPlayer, true)
	c.log.Debug().
		Float64("x", vehicle.Position.X()).
		Float64("z", vehicle.Position.Z()).
		Msg("exited vehicle")
}

// StartCooking begins a cycle when inside, stationary and not already cooking.
func (c *InteractionController) StartCooking() bool {
	ic := c.state.Interaction()
	if !ic.InsideVehicle || ic.VehicleMoving || ic.CookingInProgress {
		return false
	}
	c.state.SetCookingState(true, 0, false)
	c.cookElapsed = 0
	c.doneLeft = 0
	c.audio.PlayLoop(SoundCooking)
	c.cookingOn = true
	c.log.Debug().Msg("cooking started")
	return true
}

func (c *InteractionController) advanceCooking(dt time.Duration) {
	ic := c.state.Interaction()
	if !ic.CookingInProgress {
		return
	}
	if ic.CookingJustCompleted {
		c.doneLeft -= dt
		if c.doneLeft <= 0 {
			c.doneLeft = 0
			c.state.SetCookingState(false, ic.CookingProgress, false)
		}
		return
	}

	tick := c.tuning.CookTick
	if tick <= 0 {
		tick = DefaultCookTick
	}
	progress := ic.CookingProgress
	c.cookElapsed += dt
	for c.cookElapsed >= tick {
		c.cookElapsed -= tick
		progress += c.tuning.CookStep
		if progress >= CookComplete {
			c.completeCooking()
			return
		}
	}
	c.state.SetCookingState(true, progress, false)
}

func (c *InteractionController) completeCooking() {
	c.cookElapsed = 0
	c.state.SetCookingState(true, CookComplete, true)
	c.state.AddCoin()
	c.audio.Stop(SoundCooking)
	c.cookingOn = false
	c.doneLeft = c.tuning.CookDoneDelay
	c.log.Info().Int("coins", c.state.Coins()).Msg("cooking complete")
}

// syncAudio emits engine triggers only when the wanted state changes.
func (c *InteractionController) syncAudio() {
	ic := c.state.Interaction()
	want := ic.InsideVehicle && ic.VehicleMoving && !ic.CookingInProgress
	if want == c.engineOn {
		return
	}
	c.engineOn = want
	if want {
		c.audio.PlayLoop(SoundEngine)
	} else {
		c.audio.Stop(SoundEngine)
	}
}

// Close cancels any pending cooking or display timer and silences both loops.
func (c *InteractionController) Close() {
	ic := c.state.Interaction()
	if ic.CookingInProgress {
		c.state.SetCookingState(false, ic.CookingProgress, false)
	}
	c.cookElapsed = 0
	c.doneLeft = 0
	if c.cookingOn {
		c.audio.Stop(SoundCooking)
		c.cookingOn = false
	}
	if c.engineOn {
		c.audio.Stop(SoundEngine)
		c.engineOn = false
	}
}
