package game

import (
	"time"

	"github.com/rs/zerolog"
)

// Options wires a session to its collaborators. Physics and Feedback are
// required; Audio defaults to NopAudio.
type Options struct {
	Tuning   Tuning
	Bindings Bindings
	Physics  Physics
	Feedback FeedbackSource
	Audio    Audio
	Logger   zerolog.Logger
}

// Session is the root of one play session. It owns the state and drives every
// component in a fixed order once per tick.
type Session struct {
	state       *State
	input       *InputState
	feedback    *FeedbackChannel
	router      *MovementRouter
	interaction *InteractionController
	camera      *CameraFollower
	bus         *EventBus
	log         zerolog.Logger

	detach func()
	frame  uint64
	closed bool
}

func NewSession(opts Options) *Session {
	log := opts.Logger.With().Str("component", "session").Logger()
	bus := NewEventBus()
	state, modes := NewState(opts.Tuning, bus)

	s := &Session{
		state:       state,
		input:       NewInputState(),
		feedback:    NewFeedbackChannel(),
		router:      NewMovementRouter(opts.Tuning, opts.Bindings, opts.Physics),
		interaction: NewInteractionController(state, modes, opts.Physics, opts.Audio, opts.Tuning, opts.Bindings, opts.Logger),
		camera:      NewCameraFollower(opts.Tuning.CameraOffset, opts.Tuning.CameraSmoothing),
		bus:         bus,
		log:         log,
	}
	s.detach = s.feedback.Attach(opts.Feedback)

	bus.SubscribeAll(func(e Event) {
		log.Debug().
			Str("event", e.Type.String()).
			Str("mode", e.Mode.String()).
			Bool("flag", e.Flag).
			Int("value", e.Value).
			Msg("state event")
	})
	log.Info().Msg("session started")
	return s
}

func (s *Session) Input() *InputState                  { return s.input }
func (s *Session) State() *State                       { return s.state }
func (s *Session) Events() *EventBus                   { return s.bus }
func (s *Session) Camera() Camera                      { return s.camera.Camera() }
func (s *Session) Phase() Phase                        { return s.interaction.Phase() }
func (s *Session) Interaction() *InteractionController { return s.interaction }
func (s *Session) Frame() uint64                       { return s.frame }

// Tick advances one frame: apply feedback, route movement, evaluate
// interactions (which also advances the cooking timer), then move the camera.
// Input is read exactly once.
func (s *Session) Tick(dt time.Duration) {
	if s.closed {
		return
	}
	s.feedback.Drain(func(id ActorID, t Transform) {
		s.state.SetActorTransform(id, t.Position, t.Orientation)
	})

	keys := s.input.Snapshot()
	presses := s.input.DrainPresses()

	s.router.Route(s.state, keys)
	s.interaction.Update(dt, presses)
	s.camera.Update(s.state)
	s.frame++
}

// Snapshot is the read-only view handed to renderers after a tick.
func (s *Session) Snapshot() Snapshot {
	snap := s.state.Snapshot()
	snap.Frame = s.frame
	snap.Phase = s.interaction.Phase()
	snap.Camera = s.camera.Camera()
	return snap
}

// Close cancels pending timers, silences audio and drops the simulator
// subscriptions. Calling it again does nothing.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.interaction.Close()
	if s.detach != nil {
		s.detach()
	}
	s.log.Info().
		Uint64("frames", s.frame).
		Int("coins", s.state.Coins()).
		Msg("session closed")
}
