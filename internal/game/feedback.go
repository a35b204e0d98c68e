package game

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Physics is the command side of the rigid-body simulator.
type Physics interface {
	SetLinearVelocity(id ActorID, vx, vz float64)
	SetAngularVelocity(id ActorID, wy float64)
	Teleport(id ActorID, position mgl64.Vec3)
	SetBodyEnabled(id ActorID, enabled bool)
}

// TransformListener receives pose updates pushed by the simulator.
type TransformListener func(id ActorID, position mgl64.Vec3, orientation mgl64.Quat)

// FeedbackSource is the subscription side of the simulator.
type FeedbackSource interface {
	Subscribe(id ActorID, fn TransformListener) (unsubscribe func())
}

// FeedbackChannel buffers the latest pushed pose per actor until the session
// applies it at the start of the next tick. Only the newest pose is kept.
type FeedbackChannel struct {
	mu      sync.Mutex
	pending [actorCount]Transform
	has     [actorCount]bool
}

func NewFeedbackChannel() *FeedbackChannel {
	return &FeedbackChannel{}
}

// OnTransformUpdate is a TransformListener; register it once per actor.
func (c *FeedbackChannel) OnTransformUpdate(id ActorID, position mgl64.Vec3, orientation mgl64.Quat) {
	if !id.valid() {
		return
	}
	c.mu.Lock()
	c.pending[id] = Transform{Position: position, Orientation: orientation}
	c.has[id] = true
	c.mu.Unlock()
}

// Drain hands every pending pose to apply, in Actors order, and clears them.
func (c *FeedbackChannel) Drain(apply func(ActorID, Transform)) int {
	c.mu.Lock()
	pending := c.pending
	has := c.has
	c.has = [actorCount]bool{}
	c.mu.Unlock()

	n := 0
	for _, id := range Actors {
		if has[id] {
			apply(id, pending[id])
			n++
		}
	}
	return n
}

// Attach subscribes the channel to src for every actor and returns a function
// that removes all subscriptions.
func (c *FeedbackChannel) Attach(src FeedbackSource) func() {
	var unsubs []func()
	for _, id := range Actors {
		unsubs = append(unsubs, src.Subscribe(id, c.OnTransformUpdate))
	}
	return func() {
		for _, u := range unsubs {
			if u != nil {
				u()
			}
		}
	}
}
