package generation

import "fmt"

// State is the phase of the attempt loop
type State int

const (
	StateIdle State = iota
	StateSeeding
	StateExpanding
	StateSucceeded
	StateRetrying
	StateTerminated
)

var stateNames = [...]string{"idle", "seeding", "expanding", "succeeded", "retrying", "terminated"}

func (s State) String() string {
	if s < StateIdle || s > StateTerminated {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// EventKind identifies what happened
type EventKind int

const (
	EventAttemptStarted EventKind = iota
	EventModulePlaced
	EventModuleRolledBack
	EventAttemptFailed
	EventSucceeded
	EventFailed
)

var eventNames = [...]string{"attempt_start", "placed", "rollback", "attempt_failed", "succeeded", "failed"}

func (k EventKind) String() string {
	if k < EventAttemptStarted || k > EventFailed {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// RollbackReason explains why a placement was undone
type RollbackReason int

const (
	RollbackNone RollbackReason = iota
	RollbackOvershoot
	RollbackPrematureClose
	RollbackStranded
)

var reasonNames = [...]string{"", "overshoot", "premature_close", "stranded_door"}

func (r RollbackReason) String() string {
	if r < RollbackNone || r > RollbackStranded {
		return fmt.Sprintf("RollbackReason(%d)", int(r))
	}
	return reasonNames[r]
}

// Event is emitted by the engine as generation progresses
type Event struct {
	Kind     EventKind
	State    State
	Attempt  int
	Seed     int64
	Pass     int
	Template string
	Handle   Handle
	Position Vec2
	Spawned  int
	Open     int
	Reason   RollbackReason
}

// String formats the event as a fixed-width log line.
//
//	[A1 P02] placed          corridor_h   (2.00,0.00) spawned=3 open=1
func (e Event) String() string {
	switch e.Kind {
	case EventModulePlaced:
		return fmt.Sprintf("[A%d P%02d] %-15s %-12s %s spawned=%d open=%d",
			e.Attempt, e.Pass, e.Kind, e.Template, e.Position, e.Spawned, e.Open)
	case EventModuleRolledBack:
		return fmt.Sprintf("[A%d P%02d] %-15s %-12s %s reason=%s",
			e.Attempt, e.Pass, e.Kind, e.Template, e.Position, e.Reason)
	default:
		return fmt.Sprintf("[A%d P%02d] %-15s seed=%d spawned=%d open=%d state=%s",
			e.Attempt, e.Pass, e.Kind, e.Seed, e.Spawned, e.Open, e.State)
	}
}

// Observer receives engine events synchronously
type Observer func(Event)

// Logger is the subset of *log.Logger the engine needs
type Logger interface {
	Printf(format string, v ...any)
}

// LogObserver writes attempt-level events to l.
// With verbose set, every placement and rollback is logged too.
func LogObserver(l Logger, verbose bool) Observer {
	return func(e Event) {
		if !verbose && (e.Kind == EventModulePlaced || e.Kind == EventModuleRolledBack) {
			return
		}
		l.Printf("%s", e)
	}
}

// MultiObserver fans an event out to several observers
func MultiObserver(observers ...Observer) Observer {
	return func(e Event) {
		for _, o := range observers {
			if o != nil {
				o(e)
			}
		}
	}
}
