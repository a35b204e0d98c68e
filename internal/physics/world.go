// Package physics is a small kinematic simulator for yaw-only boxes resting on a
// flat ground plane. It implements the command and feedback boundaries the game
// core expects from a rigid-body engine.
package physics

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"rvcook/internal/game"
)

// Defaults match the bodies the scene was tuned against.
const (
	DefaultLinearDamping  = 0.5
	DefaultAngularDamping = 0.9
	DefaultGroundHalfSize = 50.0 // ground plane is 100x100
)

type Config struct {
	LinearDamping  float64
	AngularDamping float64
	GroundHalfSize float64
}

func DefaultConfig() Config {
	return Config{
		LinearDamping:  DefaultLinearDamping,
		AngularDamping: DefaultAngularDamping,
		GroundHalfSize: DefaultGroundHalfSize,
	}
}

// Body is one simulated box. Only X/Z velocity and yaw rate are integrated; the
// box always rests on the ground.
type Body struct {
	ID              game.ActorID
	Position        mgl64.Vec3
	Yaw             float64
	HalfExtents     mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity float64
	Enabled         bool

	// Yielding is set when the body was placed by Teleport or re-enabled. Until
	// the next Step finishes it takes the whole correction of any overlap, so
	// dropping it onto another body never shoves that body.
	Yielding bool
}

func (b *Body) Orientation() mgl64.Quat {
	return mgl64.QuatRotate(b.Yaw, game.UpAxis)
}

func (b *Body) footprint() RectF {
	return footprint(b.Position.X(), b.Position.Z(), b.HalfExtents.X(), b.HalfExtents.Z(), b.Yaw)
}

type subscriber struct {
	id game.ActorID
	fn game.TransformListener
}

// World owns the bodies. Commands may arrive from any goroutine; listeners are
// called from the goroutine running Step, outside the world lock.
type World struct {
	mu     sync.Mutex
	cfg    Config
	bodies map[game.ActorID]*Body
	order  []game.ActorID
	subs   map[int]subscriber
	nextID int
	log    zerolog.Logger
}

func NewWorld(cfg Config, log zerolog.Logger) *World {
	return &World{
		cfg:    cfg,
		bodies: make(map[game.ActorID]*Body),
		subs:   make(map[int]subscriber),
		log:    log.With().Str("component", "physics").Logger(),
	}
}

// AddBody places an enabled body at rest. Adding an existing id replaces it.
func (w *World) AddBody(id game.ActorID, pos, halfExtents mgl64.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.bodies[id]; !ok {
		w.order = append(w.order, id)
	}
	b := &Body{ID: id, Position: pos, HalfExtents: halfExtents, Enabled: true}
	w.settle(b)
	w.bodies[id] = b
}

// Body returns a copy of the body state.
func (w *World) Body(id game.ActorID) (Body, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return Body{}, false
	}
	return *b, true
}

func (w *World) SetLinearVelocity(id game.ActorID, vx, vz float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if b, ok := w.bodies[id]; ok {
		b.Velocity = mgl64.Vec3{vx, 0, vz}
	}
}

func (w *World) SetAngularVelocity(id game.ActorID, wy float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if b, ok := w.bodies[id]; ok {
		b.AngularVelocity = wy
	}
}

// Teleport moves a body and clears its motion. The height is recomputed so the
// body rests on the ground.
func (w *World) Teleport(id game.ActorID, position mgl64.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	b.Position = position
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = 0
	b.Yielding = true
	w.settle(b)
	w.log.Debug().Str("body", id.String()).
		Float64("x", b.Position.X()).
		Float64("z", b.Position.Z()).
		Msg("teleported")
}

// SetBodyEnabled removes a body from (or returns it to) the simulation. A
// disabled body neither moves, collides nor publishes.
func (w *World) SetBodyEnabled(id game.ActorID, enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok || b.Enabled == enabled {
		return
	}
	b.Enabled = enabled
	if enabled {
		b.Yielding = true
	} else {
		b.Velocity = mgl64.Vec3{}
		b.AngularVelocity = 0
	}
	w.log.Debug().Str("body", id.String()).Bool("enabled", enabled).Msg("body toggled")
}

func (w *World) Subscribe(id game.ActorID, fn game.TransformListener) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	key := w.nextID
	w.nextID++
	w.subs[key] = subscriber{id: id, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, key)
			w.mu.Unlock()
		})
	}
}

// Step advances the simulation by dt seconds and then publishes the pose of
// every enabled body.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	type pose struct {
		id  game.ActorID
		pos mgl64.Vec3
		rot mgl64.Quat
	}

	w.mu.Lock()
	linear := math.Pow(1-clamp01(w.cfg.LinearDamping), dt)
	angular := math.Pow(1-clamp01(w.cfg.AngularDamping), dt)

	for _, id := range w.order {
		b := w.bodies[id]
		if !b.Enabled {
			continue
		}
		b.Velocity = b.Velocity.Mul(linear)
		b.AngularVelocity *= angular

		b.Yaw = wrapAngle(b.Yaw + b.AngularVelocity*dt)
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		w.settle(b)
	}
	w.separate()

	poses := make([]pose, 0, len(w.order))
	for _, id := range w.order {
		b := w.bodies[id]
		if b.Enabled {
			b.Yielding = false
			poses = append(poses, pose{id, b.Position, b.Orientation()})
		}
	}
	subs := make([]subscriber, 0, len(w.subs))
	for i := 0; i < w.nextID; i++ {
		if s, ok := w.subs[i]; ok {
			subs = append(subs, s)
		}
	}
	w.mu.Unlock()

	for _, p := range poses {
		for _, s := range subs {
			if s.id == p.id {
				s.fn(p.id, p.pos, p.rot)
			}
		}
	}
}

// settle rests the body on the ground and keeps its footprint on the plane.
func (w *World) settle(b *Body) {
	b.Position[1] = b.HalfExtents.Y()

	half := w.cfg.GroundHalfSize
	if half <= 0 {
		return
	}
	fp := b.footprint()
	ground := RectF{X0: -half, Z0: -half, X1: half, Z1: half}
	if ground.Contains(fp) {
		return
	}
	ex := (fp.X1 - fp.X0) / 2
	ez := (fp.Z1 - fp.Z0) / 2
	b.Position[0] = clampRange(b.Position.X(), -half+ex, half-ex)
	b.Position[2] = clampRange(b.Position.Z(), -half+ez, half-ez)
}

// separate pushes overlapping enabled bodies apart along the axis of least
// penetration and cancels the closing speed. Bodies share the correction
// evenly unless exactly one of them is yielding, which then takes all of it.
func (w *World) separate() {
	for i := 0; i < len(w.order); i++ {
		a := w.bodies[w.order[i]]
		if !a.Enabled {
			continue
		}
		for j := i + 1; j < len(w.order); j++ {
			b := w.bodies[w.order[j]]
			if !b.Enabled {
				continue
			}
			if !verticalOverlap(a, b) {
				continue
			}
			dx, dz := a.footprint().Penetration(b.footprint())
			if dx == 0 && dz == 0 {
				continue
			}

			axis := 0
			depth := dx
			if dz < dx {
				axis = 2
				depth = dz
			}
			sign := 1.0
			if a.Position[axis] < b.Position[axis] {
				sign = -1
			}
			shareA, shareB := correctionShares(a, b)
			a.Position[axis] += sign * depth * shareA
			b.Position[axis] -= sign * depth * shareB

			// Relative speed along the push axis, positive when closing.
			closing := (b.Velocity[axis] - a.Velocity[axis]) * sign
			if closing > 0 {
				a.Velocity[axis] += sign * closing * shareA
				b.Velocity[axis] -= sign * closing * shareB
			}
			w.settle(a)
			w.settle(b)
		}
	}
}

func correctionShares(a, b *Body) (float64, float64) {
	switch {
	case a.Yielding && !b.Yielding:
		return 1, 0
	case b.Yielding && !a.Yielding:
		return 0, 1
	}
	return 0.5, 0.5
}

func verticalOverlap(a, b *Body) bool {
	return math.Abs(a.Position.Y()-b.Position.Y()) < a.HalfExtents.Y()+b.HalfExtents.Y()
}

func clamp01(v float64) float64 {
	return clampRange(v, 0, 1)
}

func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
