package audit

import (
	"log/slog"
	"sync"
)

type Event struct {
	AdvocateID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
}

// Sink persists audit events. *Logger is the database-backed sink.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			slog.Error("audit write failed",
				slog.String("action", ev.Action),
				slog.Uint64("advocate_id", uint64(ev.AdvocateID)),
				slog.Any("error", err),
			)
		}
	}
}

// Dispatch never blocks the request path: when the queue is full the event
// is dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close drains pending events and stops the worker. Dispatch must not be
// called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}
