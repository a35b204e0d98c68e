package game

type EventType int

const (
	EventModeChanged EventType = iota
	EventProximityChanged
	EventCookingStarted
	EventCookingCompleted
	EventCookingReset
	EventCoinAdded
	EventHealthChanged
)

func (t EventType) String() string {
	switch t {
	case EventModeChanged:
		return "mode_changed"
	case EventProximityChanged:
		return "proximity_changed"
	case EventCookingStarted:
		return "cooking_started"
	case EventCookingCompleted:
		return "cooking_completed"
	case EventCookingReset:
		return "cooking_reset"
	case EventCoinAdded:
		return "coin_added"
	case EventHealthChanged:
		return "health_changed"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Mode  Mode
	Flag  bool
	Value int // Generic payload (coin total, health, progress).
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
	any      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.any = append(eb.any, fn)
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.any {
		fn(e)
	}
}
