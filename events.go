package ballast

import (
	"github.com/akmonengine/ballast/constraint"
)

const (
	ContactEnter EventType = iota
	ContactStay
	ContactExit
)

type EventType uint8

// Event is implemented by every contact notification.
type Event interface {
	Type() EventType
}

// ContactEnterEvent fires on the first Step in which a body pair touches.
type ContactEnterEvent struct {
	BodyA uint32
	BodyB uint32
}

func (e ContactEnterEvent) Type() EventType { return ContactEnter }

// ContactStayEvent fires on every following Step while the pair keeps
// touching.
type ContactStayEvent struct {
	BodyA uint32
	BodyB uint32
}

func (e ContactStayEvent) Type() EventType { return ContactStay }

// ContactExitEvent fires on the first Step in which a previously touching
// pair is separated.
type ContactExitEvent struct {
	BodyA uint32
	BodyB uint32
}

func (e ContactExitEvent) Type() EventType { return ContactExit }

// EventListener receives events during the flush at the end of Step.
type EventListener func(event Event)

// pairKey identifies a body pair; contacts already carry BodyA < BodyB so
// the key is normalized by construction.
type pairKey struct {
	bodyA uint32
	bodyB uint32
}

// Events tracks which body pairs were in contact during a Step and turns the
// difference against the previous Step into enter/stay/exit notifications.
// Listeners run after the step has fully resolved; they observe the
// simulation, they cannot perturb it mid-step.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// record marks every contacted pair of the current substep as active. Only
// the velocity-phase contacts are recorded; a pair that overlaps only during
// the projection rounds is not.
func (e *Events) record(contacts []constraint.Contact) {
	for i := range contacts {
		e.currentActivePairs[pairKey{contacts[i].BodyA, contacts[i].BodyB}] = true
	}
}

// flush diffs the current pair set against the previous Step's, dispatches
// the buffered events, and swaps the sets for the next Step.
func (e *Events) flush() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, ContactStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, ContactEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, ContactExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}
