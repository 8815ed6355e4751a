package game

type EventType int

const (
	EventVehicleSpawned EventType = iota
	EventVehicleStopped
	EventVehicleResumed
	EventVehicleBlocked
	EventVehicleExited
)

// Event carries the vehicle identity and its position at emission time,
// which is all the current listeners (audio cues, title stats) need.
type Event struct {
	Type EventType
	ID   uint64
	X, Y float64
}

// EventBus is a minimal synchronous pub/sub. Handlers run on the caller's
// goroutine in subscription order; the simulation is single-threaded so no
// locking is needed.
type EventBus struct {
	handlers map[EventType][]func(Event)
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventType][]func(Event))}
}

func (b *EventBus) Subscribe(t EventType, fn func(Event)) {
	b.handlers[t] = append(b.handlers[t], fn)
}

func (b *EventBus) Emit(e Event) {
	for _, fn := range b.handlers[e.Type] {
		fn(e)
	}
}
