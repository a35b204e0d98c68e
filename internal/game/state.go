package game

import "github.com/go-gl/mathgl/mgl64"

type Mode int

const (
	ModeWalking Mode = iota
	ModeDriving
)

func (m Mode) String() string {
	if m == ModeDriving {
		return "driving"
	}
	return "walking"
}

// MarshalText lets snapshots carry the mode as a readable string.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Controlled returns the actor that receives movement commands in this mode.
func (m Mode) Controlled() ActorID {
	if m == ModeDriving {
		return ActorVehicle
	}
	return ActorPlayer
}

// InteractionState holds the flags driving prompts, cooking and audio.
type InteractionState struct {
	ProximityToVehicle   bool `json:"proximityToVehicle"`
	InsideVehicle        bool `json:"insideVehicle"`
	VehicleMoving        bool `json:"vehicleMoving"`
	CookingInProgress    bool `json:"cookingInProgress"`
	CookingProgress      int  `json:"cookingProgress"`
	CookingJustCompleted bool `json:"cookingJustCompleted"`
}

// State is the single source of truth for one session. It is mutated only from
// the tick loop goroutine; the named mutators below are the whole write surface.
type State struct {
	actors      [actorCount]Actor
	mode        Mode
	interaction InteractionState
	resources   Resources
	bus         *EventBus
}

// ModeControl is the only handle that can switch modes. NewState hands it out
// once; the session gives it to the interaction controller alone.
type ModeControl struct {
	s *State
}

func NewState(t Tuning, bus *EventBus) (*State, *ModeControl) {
	s := &State{
		mode:      ModeWalking,
		resources: NewResources(),
		bus:       bus,
	}
	s.actors[ActorPlayer] = Actor{
		ID:          ActorPlayer,
		Transform:   Transform{Position: t.PlayerSpawn, Orientation: mgl64.QuatIdent()},
		HalfExtents: t.PlayerHalfExtents,
	}
	s.actors[ActorVehicle] = Actor{
		ID:          ActorVehicle,
		Transform:   Transform{Position: t.VehicleSpawn, Orientation: mgl64.QuatIdent()},
		HalfExtents: t.VehicleHalfExtents,
	}
	return s, &ModeControl{s: s}
}

// SetMode switches the game mode and the inside-vehicle flag in one step, so
// InsideVehicle == (mode == ModeDriving) holds at every observable point.
func (mc *ModeControl) SetMode(m Mode) {
	s := mc.s
	if s.mode == m {
		return
	}
	s.mode = m
	s.interaction.InsideVehicle = m == ModeDriving
	s.bus.Emit(Event{Type: EventModeChanged, Mode: m, Flag: s.interaction.InsideVehicle})
}

func (s *State) Mode() Mode                    { return s.mode }
func (s *State) Controlled() ActorID           { return s.mode.Controlled() }
func (s *State) Interaction() InteractionState { return s.interaction }
func (s *State) Resources() Resources          { return s.resources }
func (s *State) Coins() int                    { return s.resources.Coins }
func (s *State) Health() int                   { return s.resources.Health }
func (s *State) InsideVehicle() bool           { return s.interaction.InsideVehicle }

// PromptVisible reports whether the enter prompt should be shown.
func (s *State) PromptVisible() bool {
	return s.interaction.ProximityToVehicle && !s.interaction.InsideVehicle
}

// CookPromptVisible reports whether a cooking cycle may be started right now.
func (s *State) CookPromptVisible() bool {
	ic := s.interaction
	return ic.InsideVehicle && !ic.VehicleMoving && !ic.CookingInProgress
}

func (s *State) Actor(id ActorID) Actor {
	if !id.valid() {
		return Actor{}
	}
	return s.actors[id]
}

// Transform returns the actor's last reported pose. ok is false until the
// simulator has pushed at least one update for that actor.
func (s *State) Transform(id ActorID) (Transform, bool) {
	if !id.valid() {
		return Transform{}, false
	}
	a := s.actors[id]
	return a.Transform, a.Reported
}

func (s *State) SetActorTransform(id ActorID, pos mgl64.Vec3, orient mgl64.Quat) {
	if !id.valid() {
		return
	}
	a := &s.actors[id]
	a.Transform = Transform{Position: pos, Orientation: orient}
	a.Reported = true
}

func (s *State) SetVelocityCommand(id ActorID, v mgl64.Vec3) {
	if id.valid() {
		s.actors[id].VelocityCommand = v
	}
}

func (s *State) SetAngularVelocityCommand(id ActorID, wy float64) {
	if id.valid() {
		s.actors[id].AngularVelocityCommand = wy
	}
}

func (s *State) SetProximity(near bool) {
	if s.interaction.ProximityToVehicle == near {
		return
	}
	s.interaction.ProximityToVehicle = near
	s.bus.Emit(Event{Type: EventProximityChanged, Flag: near})
}

func (s *State) SetVehicleMoving(moving bool) {
	s.interaction.VehicleMoving = moving
}

// SetCookingState replaces the cooking flags; progress is clamped to [0,100].
func (s *State) SetCookingState(inProgress bool, progress int, justCompleted bool) {
	prev := s.interaction
	progress = clamp(progress, 0, CookComplete)
	s.interaction.CookingInProgress = inProgress
	s.interaction.CookingProgress = progress
	s.interaction.CookingJustCompleted = justCompleted

	switch {
	case inProgress && !prev.CookingInProgress:
		s.bus.Emit(Event{Type: EventCookingStarted, Value: progress})
	case justCompleted && !prev.CookingJustCompleted:
		s.bus.Emit(Event{Type: EventCookingCompleted, Value: progress})
	case !inProgress && prev.CookingInProgress:
		s.bus.Emit(Event{Type: EventCookingReset, Value: progress})
	}
}

func (s *State) AddCoin() {
	s.resources.Coins++
	s.bus.Emit(Event{Type: EventCoinAdded, Value: s.resources.Coins})
}

func (s *State) ResetCoins() {
	s.resources.Coins = 0
}

// SetHealth clamps v to [0, MaxHealth].
func (s *State) SetHealth(v int) {
	v = clamp(v, 0, MaxHealth)
	if v == s.resources.Health {
		return
	}
	s.resources.Health = v
	s.bus.Emit(Event{Type: EventHealthChanged, Value: v})
}

func (s *State) ResetHealth() {
	s.SetHealth(DefaultHealth)
}

// ActorSnapshot is the render-facing view of one actor.
type ActorSnapshot struct {
	Position    mgl64.Vec3 `json:"position"`
	Orientation [4]float64 `json:"orientation"` // x, y, z, w
	Yaw         float64    `json:"yaw"`
	HalfExtents mgl64.Vec3 `json:"halfExtents"`
	Visible     bool       `json:"visible"`
	Reported    bool       `json:"reported"`
}

// Snapshot is an immutable copy of everything a renderer or HUD may read.
type Snapshot struct {
	Frame         uint64           `json:"frame"`
	Mode          Mode             `json:"mode"`
	Phase         Phase            `json:"phase"`
	Player        ActorSnapshot    `json:"player"`
	Vehicle       ActorSnapshot    `json:"vehicle"`
	Interaction   InteractionState `json:"interaction"`
	PromptVisible bool             `json:"promptVisible"`
	CookPrompt    bool             `json:"cookPrompt"`
	Coins         int              `json:"coins"`
	Health        int              `json:"health"`
	Camera        Camera           `json:"camera"`
}

func (s *State) actorSnapshot(id ActorID) ActorSnapshot {
	a := s.actors[id]
	yaw, _, _ := a.Transform.YawPitchRoll()
	q := a.Transform.Orientation
	return ActorSnapshot{
		Position:    a.Transform.Position,
		Orientation: [4]float64{q.V[0], q.V[1], q.V[2], q.W},
		Yaw:         yaw,
		HalfExtents: a.HalfExtents,
		// The avatar is hidden while it rides inside the vehicle.
		Visible:  id != ActorPlayer || s.mode == ModeWalking,
		Reported: a.Reported,
	}
}

// Snapshot copies the state; camera, phase and frame are filled in by the session.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Mode:          s.mode,
		Player:        s.actorSnapshot(ActorPlayer),
		Vehicle:       s.actorSnapshot(ActorVehicle),
		Interaction:   s.interaction,
		PromptVisible: s.PromptVisible(),
		CookPrompt:    s.CookPromptVisible(),
		Coins:         s.resources.Coins,
		Health:        s.resources.Health,
	}
}
