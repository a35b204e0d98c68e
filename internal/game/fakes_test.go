package game

import (
	"github.com/go-gl/mathgl/mgl64"
)

type velocityCall struct {
	id     ActorID
	vx, vz float64
}

type angularCall struct {
	id ActorID
	wy float64
}

type teleportCall struct {
	id  ActorID
	pos mgl64.Vec3
}

// fakePhysics records every command and can push poses to subscribers.
type fakePhysics struct {
	linear    []velocityCall
	angular   []angularCall
	teleports []teleportCall
	enabled   map[ActorID]bool
	listeners map[ActorID][]TransformListener
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		enabled:   map[ActorID]bool{ActorPlayer: true, ActorVehicle: true},
		listeners: make(map[ActorID][]TransformListener),
	}
}

func (p *fakePhysics) SetLinearVelocity(id ActorID, vx, vz float64) {
	p.linear = append(p.linear, velocityCall{id, vx, vz})
}

func (p *fakePhysics) SetAngularVelocity(id ActorID, wy float64) {
	p.angular = append(p.angular, angularCall{id, wy})
}

func (p *fakePhysics) Teleport(id ActorID, pos mgl64.Vec3) {
	p.teleports = append(p.teleports, teleportCall{id, pos})
}

func (p *fakePhysics) SetBodyEnabled(id ActorID, enabled bool) {
	p.enabled[id] = enabled
}

func (p *fakePhysics) Subscribe(id ActorID, fn TransformListener) func() {
	p.listeners[id] = append(p.listeners[id], fn)
	idx := len(p.listeners[id]) - 1
	return func() { p.listeners[id][idx] = nil }
}

func (p *fakePhysics) push(id ActorID, pos mgl64.Vec3) {
	for _, fn := range p.listeners[id] {
		if fn != nil {
			fn(id, pos, mgl64.QuatIdent())
		}
	}
}

func (p *fakePhysics) subscribers(id ActorID) int {
	n := 0
	for _, fn := range p.listeners[id] {
		if fn != nil {
			n++
		}
	}
	return n
}

func (p *fakePhysics) lastLinear(id ActorID) (velocityCall, bool) {
	for i := len(p.linear) - 1; i >= 0; i-- {
		if p.linear[i].id == id {
			return p.linear[i], true
		}
	}
	return velocityCall{}, false
}

func (p *fakePhysics) linearFor(id ActorID) int {
	n := 0
	for _, c := range p.linear {
		if c.id == id {
			n++
		}
	}
	return n
}

type audioCall struct {
	play bool
	id   SoundID
}

type recordingAudio struct {
	calls []audioCall
}

func (a *recordingAudio) PlayLoop(id SoundID) { a.calls = append(a.calls, audioCall{true, id}) }
func (a *recordingAudio) Stop(id SoundID)     { a.calls = append(a.calls, audioCall{false, id}) }

func (a *recordingAudio) count(play bool, id SoundID) int {
	n := 0
	for _, c := range a.calls {
		if c.play == play && c.id == id {
			n++
		}
	}
	return n
}

// Positions used across tests. The player at nearSpot is 1.5 units from the
// vehicle's side; farSpot is out of reach on every axis.
var (
	vehicleSpot = mgl64.Vec3{5, 1.5, 0}
	nearSpot    = mgl64.Vec3{1.5, 0.5, 0}
	farSpot     = mgl64.Vec3{-20, 0.5, 20}
)
