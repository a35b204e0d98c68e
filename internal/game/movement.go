package game

import "github.com/go-gl/mathgl/mgl64"

// Command is the movement derived from one frame of key state.
type Command struct {
	Actor    ActorID
	Velocity mgl64.Vec3 // Y is always zero
	// Turn is false when no turn key is held; the simulator's angular damping
	// is then left to decay the current spin.
	Turn            bool
	AngularVelocity float64
}

// DeriveCommand turns held keys into a velocity command for an actor at t.
// Forward and backward cancel when both are held. For turning, right is
// evaluated first and left last, and the last writer wins: both held turns left.
func DeriveCommand(id ActorID, t Transform, keys KeySet, b Bindings, tun Tuning) Command {
	cmd := Command{Actor: id}
	forward := t.Forward()

	var v mgl64.Vec3
	if keys.Pressed(b.Forward) {
		v = v.Add(forward.Mul(tun.MoveSpeed))
	}
	if keys.Pressed(b.Backward) {
		v = v.Add(forward.Mul(-tun.MoveSpeed))
	}
	cmd.Velocity = mgl64.Vec3{v.X(), 0, v.Z()}

	if keys.Pressed(b.TurnRight) {
		cmd.Turn = true
		cmd.AngularVelocity = -tun.TurnRate
	}
	if keys.Pressed(b.TurnLeft) {
		cmd.Turn = true
		cmd.AngularVelocity = tun.TurnRate
	}
	return cmd
}

// MovementRouter sends movement commands to whichever actor the current mode
// controls. The other actor receives nothing and coasts under simulator damping.
type MovementRouter struct {
	tuning   Tuning
	bindings Bindings
	physics  Physics
}

func NewMovementRouter(t Tuning, b Bindings, p Physics) *MovementRouter {
	return &MovementRouter{tuning: t, bindings: b, physics: p}
}

// Route derives and issues this frame's command. It returns false when routing
// is suspended because a cooking cycle holds the vehicle still.
func (r *MovementRouter) Route(s *State, keys KeySet) (Command, bool) {
	if s.Interaction().CookingInProgress {
		return Command{}, false
	}
	id := s.Controlled()
	a := s.Actor(id)
	cmd := DeriveCommand(id, a.Transform, keys, r.bindings, r.tuning)

	r.physics.SetLinearVelocity(id, cmd.Velocity.X(), cmd.Velocity.Z())
	s.SetVelocityCommand(id, cmd.Velocity)
	if cmd.Turn {
		r.physics.SetAngularVelocity(id, cmd.AngularVelocity)
		s.SetAngularVelocityCommand(id, cmd.AngularVelocity)
	}
	return cmd, true
}
