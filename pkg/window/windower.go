// Package window implements the timestamp windower of spec §4.2: it
// transforms a hot stream of timestamped items into a sequence of
// per-tumbling-window inner streams, via a fixed wall-clock reorder
// buffer followed by event-time bucketing. Only one window is ever
// "live" at a time (spec's deliberate bounded-memory policy): opening a
// new window immediately closes whatever window was previously latest.
//
// Grounded on the teacher's fixed-window lifecycle
// (pkg/window/strategy/fixed + pkg/window/strategy/fixed/lifecycle.go):
// AssignWindow truncates event time to the window grid exactly as Fixed
// does, and window bookkeeping is a small owned map guarded by a mutex,
// not a full interval tree, because at most one window is ever active.
package window

import (
	"sync"
	"time"

	"github.com/mehrshadshams/reactive/pkg/metrics"
	"github.com/mehrshadshams/reactive/pkg/sample"
	"github.com/mehrshadshams/reactive/pkg/stream"
)

// DefaultReorderInterval is the default wall-clock flush period for the
// reorder buffer (spec §4.2 step 1).
const DefaultReorderInterval = 1000 * time.Millisecond

// Window is one tumbling window's handle: its period and the inner
// stream of items that fall into it. Items from one reorder-buffer flush
// arrive in non-decreasing event-time order; an item from a later flush
// that falls into the same window is delivered after them even if its
// event time is earlier. The stream completes when the window closes,
// either because a later window opened or the source terminated.
type Window[T any] struct {
	Period sample.Period
	Items  *stream.Subject[T]
	wid    int64
}

// Windower buckets a source's items into tumbling windows of Duration,
// first passing them through a ReorderInterval-wide timed reorder buffer.
type Windower[T any] struct {
	Duration        time.Duration
	ReorderInterval time.Duration
	EventTime       func(T) time.Time
	// Name labels this windower's metrics (spec §4.6's node_name, when set
	// by a caller that owns one); defaults to "unnamed".
	Name string

	mu      sync.Mutex
	current *Window[T]
}

// New builds a Windower. duration and reorderInterval must be positive.
func New[T any](duration time.Duration, reorderInterval time.Duration, eventTime func(T) time.Time) *Windower[T] {
	if duration <= 0 {
		panic("window: duration must be positive")
	}
	if reorderInterval <= 0 {
		panic("window: reorderInterval must be positive")
	}
	return &Windower[T]{Duration: duration, ReorderInterval: reorderInterval, EventTime: eventTime, Name: "unnamed"}
}

// WithName sets the windower's metrics label and returns it for chaining.
func (w *Windower[T]) WithName(name string) *Windower[T] {
	w.Name = name
	return w
}

// Subscribe attaches to source and invokes onOpen once per window, in
// the order windows first open, each time a new tumbling window begins.
// onOpen's Window.Items stream completes when that window closes. The
// returned cancel function stops the reorder buffer's timer and detaches
// from source; a window still open at that point is not completed.
func (w *Windower[T]) Subscribe(source stream.Observable[T], onOpen func(*Window[T])) (cancel func()) {
	buffered, cancelBuffer := stream.Buffer[T](source, w.EventTime, w.ReorderInterval)

	unsub := buffered.Subscribe(stream.Observer[T]{
		OnNext: func(item T) { w.route(item, onOpen) },
		OnError: func(err error) {
			w.closeCurrent(func(s *stream.Subject[T]) { s.Error(err) })
		},
		OnComplete: func() {
			w.closeCurrent(func(s *stream.Subject[T]) { s.Complete() })
		},
	})

	return func() {
		unsub()
		cancelBuffer()
	}
}

func (w *Windower[T]) route(item T, onOpen func(*Window[T])) {
	wid := floorDiv(w.EventTime(item).UnixNano(), int64(w.Duration))

	w.mu.Lock()
	if w.current == nil || w.current.wid != wid {
		// A new window is opening. Per spec §4.2 step 4, whatever was
		// latest closes immediately, even if it is chronologically more
		// recent than the window we are opening now (a late sample
		// reopening an already-closed window id becomes the new latest
		// and evicts the current one) — the deliberate one-live-window
		// policy. This also answers spec's open question #5: a sample
		// arriving after its window closed opens a fresh window for that
		// id rather than being dropped.
		prev := w.current
		next := &Window[T]{
			Period: windowPeriod(wid, w.Duration),
			Items:  stream.NewSubject[T](),
			wid:    wid,
		}
		w.current = next
		w.mu.Unlock()

		metrics.WindowsOpenedCount.WithLabelValues(w.Name).Inc()
		if prev != nil {
			prev.Items.Complete()
			metrics.WindowsClosedCount.WithLabelValues(w.Name).Inc()
		}
		onOpen(next)
		next.Items.Next(item)
		return
	}
	current := w.current
	w.mu.Unlock()
	current.Items.Next(item)
}

func (w *Windower[T]) closeCurrent(deliver func(*stream.Subject[T])) {
	w.mu.Lock()
	cur := w.current
	w.current = nil
	w.mu.Unlock()
	if cur != nil {
		deliver(cur.Items)
		metrics.WindowsClosedCount.WithLabelValues(w.Name).Inc()
	}
}

// windowPeriod returns the aligned [start, start+duration) period for wid.
func windowPeriod(wid int64, duration time.Duration) sample.Period {
	start := time.Unix(0, wid*int64(duration)).UTC()
	return sample.NewPeriod(start, start.Add(duration))
}

// floorDiv divides a by b, truncating toward negative infinity (unlike
// Go's native integer division, which truncates toward zero). This is
// the exact window-grid truncation spec's open question #3 requires.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
