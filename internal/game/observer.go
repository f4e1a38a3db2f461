package game

import (
	"slices"
	"sync/atomic"
)

// EventKind names what changed.
type EventKind string

const (
	EventTilt    EventKind = "tilt"    // A tilt moved or merged tiles
	EventSpawn   EventKind = "spawn"   // A random tile appeared
	EventAdd     EventKind = "add"     // A tile was placed explicitly
	EventClear   EventKind = "clear"   // The board was emptied
	EventRestore EventKind = "restore" // A position was loaded
	EventLevel   EventKind = "level"   // The campaign advanced to the next level
	EventOver    EventKind = "over"    // The game just ended
)

// Event carries the game state right after a change.
type Event struct {
	Kind     EventKind `json:"kind"`
	Snapshot Snapshot  `json:"snapshot"`
}

// Observer receives events. It is called without the game lock held, so it
// may call back into the game, but it must not block for long.
type Observer func(Event)

// Subscribe registers an observer and returns a function that removes it.
func (g *Game) Subscribe(o Observer) (unsubscribe func()) {
	g.obsMu.Lock()
	defer g.obsMu.Unlock()

	id := g.nextObs
	g.nextObs++
	g.observers[id] = o

	return func() {
		g.obsMu.Lock()
		defer g.obsMu.Unlock()
		delete(g.observers, id)
	}
}

// eventVersion numbers events process-wide. Observers are called outside
// the game lock, so concurrent turns may deliver events out of order; the
// snapshot version tells the newer one apart.
var eventVersion atomic.Uint64

// emit queues an event with the current snapshot. Caller holds mu.
func (g *Game) emit(kind EventKind) {
	g.version = eventVersion.Add(1)
	g.pending = append(g.pending, Event{Kind: kind, Snapshot: g.snapshot()})
}

// drain returns and clears the queued events. Caller holds mu.
func (g *Game) drain() []Event {
	events := g.pending
	g.pending = nil
	return events
}

// publish delivers events to every observer in registration order. Events
// of concurrent calls may interleave; see Snapshot.Version.
func (g *Game) publish(events []Event) {
	if len(events) == 0 {
		return
	}

	g.obsMu.Lock()
	ids := make([]int, 0, len(g.observers))
	for id := range g.observers {
		ids = append(ids, id)
	}
	observers := make([]Observer, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		observers = append(observers, g.observers[id])
	}
	g.obsMu.Unlock()

	for _, ev := range events {
		for _, o := range observers {
			o(ev)
		}
	}
}
