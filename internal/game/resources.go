package game

// Resources tracks the reward currency and the avatar's health.
type Resources struct {
	Coins  int
	Health int
}

func NewResources() Resources {
	return Resources{Health: DefaultHealth}
}

// Fraction returns health in [0,1] for bar rendering.
func (r Resources) Fraction() float64 {
	return clampF(float64(r.Health)/MaxHealth, 0, 1)
}

func (r Resources) IsDead() bool {
	return r.Health <= 0
}

func (r Resources) IsInjured() bool {
	return r.Health < MaxHealth
}
