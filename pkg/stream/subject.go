// Package stream provides the small set of reactive primitives the engine
// is built from: a multicast Subject, a timed reorder Buffer, and
// CombineLatest. The spec assumes a host language with these available
// as library primitives (buffer(timespan), combine_latest, a
// multicast/publish subject); Go's ecosystem has no equivalent reactive
// library among this module's dependencies, so — per the spec's own
// fallback clause — they are implemented in-tree here, on top of
// channels and goroutines, in the teacher's own synchronous-dispatch,
// mutex-guarded-map style (see pkg/window/strategy/fixed for the idiom
// this is grounded on).
package stream

import "sync"

// Observer receives the three reactive notifications. OnNext may be
// called many times; OnError and OnComplete are each called at most once,
// and no further notifications follow either.
type Observer[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

// Observable is anything that can be subscribed to. Subscribe returns an
// unsubscribe function; calling it more than once is a no-op.
type Observable[T any] interface {
	Subscribe(obs Observer[T]) (unsubscribe func())
}

// Subject is a hot multicast broadcaster: every subscriber present at the
// time Next/Error/Complete is called receives that notification,
// synchronously on the calling goroutine — the engine never introduces an
// implicit scheduling boundary (spec §5). The order in which different
// subscribers receive one notification is not defined.
type Subject[T any] struct {
	mu          sync.Mutex
	subscribers map[int]Observer[T]
	nextID      int
	terminated  bool
	err         error
	completed   bool
}

// NewSubject builds an empty, live Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subscribers: make(map[int]Observer[T])}
}

var _ Observable[int] = (*Subject[int])(nil)

// Subscribe registers obs. If the Subject has already terminated, obs
// immediately receives the terminal notification and the returned
// unsubscribe function is a no-op.
func (s *Subject[T]) Subscribe(obs Observer[T]) func() {
	s.mu.Lock()
	if s.terminated {
		err, completed := s.err, s.completed
		s.mu.Unlock()
		if completed && obs.OnComplete != nil {
			obs.OnComplete()
		} else if err != nil && obs.OnError != nil {
			obs.OnError(err)
		}
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subscribers[id] = obs
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Next delivers v to every current subscriber. A no-op once terminated.
func (s *Subject[T]) Next(v T) {
	for _, obs := range s.snapshot() {
		if obs.OnNext != nil {
			obs.OnNext(v)
		}
	}
}

// Error terminates the Subject with err, fanning it out to every current
// subscriber exactly once, then rejecting further subscriptions (new
// subscribers immediately receive the same error).
func (s *Subject[T]) Error(err error) {
	obs, ok := s.terminate(err, false)
	if !ok {
		return
	}
	for _, o := range obs {
		if o.OnError != nil {
			o.OnError(err)
		}
	}
}

// Complete terminates the Subject successfully, fanning completion out
// to every current subscriber exactly once.
func (s *Subject[T]) Complete() {
	obs, ok := s.terminate(nil, true)
	if !ok {
		return
	}
	for _, o := range obs {
		if o.OnComplete != nil {
			o.OnComplete()
		}
	}
}

func (s *Subject[T]) snapshot() []Observer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Observer[T], 0, len(s.subscribers))
	for _, o := range s.subscribers {
		out = append(out, o)
	}
	return out
}

func (s *Subject[T]) terminate(err error, completed bool) ([]Observer[T], bool) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return nil, false
	}
	s.terminated = true
	s.err = err
	s.completed = completed
	out := make([]Observer[T], 0, len(s.subscribers))
	for _, o := range s.subscribers {
		out = append(out, o)
	}
	s.subscribers = make(map[int]Observer[T])
	s.mu.Unlock()
	return out, true
}

// SubscriberCount reports how many observers are currently attached.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}
