package scene

type EventType string

const (
	EventSignpostOpened  EventType = "signpost_opened"
	EventSlideChanged    EventType = "slide_changed"
	EventSlideshowClosed EventType = "slideshow_closed"
	EventSpeedChanged    EventType = "speed_changed"
)

// Event is something the composer did that the view may react to.
type Event struct {
	Type EventType
	Data any
}

// SlideEvent is the payload of the slideshow events.
type SlideEvent struct {
	SignpostID int
	Slide      int
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
