package stream

import "sync"

// CombineLatest subscribes to both left and right, and once each has
// emitted at least once, calls combine with the most recent value from
// each every time either side emits. No output is produced in the
// start-up phase before both sides have emitted once. A terminal
// notification (error or complete) on either side is mirrored on the
// combined output exactly once, and cancels the other subscription.
func CombineLatest[A, B, R any](left Observable[A], right Observable[B], combine func(A, B) R) (*Subject[R], func()) {
	out := NewSubject[R]()

	var mu sync.Mutex
	var haveA, haveB bool
	var lastA A
	var lastB B
	var terminated bool

	emitLocked := func() (R, bool) {
		if haveA && haveB {
			return combine(lastA, lastB), true
		}
		var zero R
		return zero, false
	}

	var unsubLeft, unsubRight func()

	terminate := func(err error) {
		mu.Lock()
		if terminated {
			mu.Unlock()
			return
		}
		terminated = true
		mu.Unlock()
		if unsubLeft != nil {
			unsubLeft()
		}
		if unsubRight != nil {
			unsubRight()
		}
		if err != nil {
			out.Error(err)
		} else {
			out.Complete()
		}
	}

	unsubLeft = left.Subscribe(Observer[A]{
		OnNext: func(v A) {
			mu.Lock()
			lastA = v
			haveA = true
			result, ok := emitLocked()
			mu.Unlock()
			if ok {
				out.Next(result)
			}
		},
		OnError:    terminate,
		OnComplete: func() { terminate(nil) },
	})

	unsubRight = right.Subscribe(Observer[B]{
		OnNext: func(v B) {
			mu.Lock()
			lastB = v
			haveB = true
			result, ok := emitLocked()
			mu.Unlock()
			if ok {
				out.Next(result)
			}
		},
		OnError:    terminate,
		OnComplete: func() { terminate(nil) },
	})

	cancel := func() {
		mu.Lock()
		already := terminated
		terminated = true
		mu.Unlock()
		if already {
			return
		}
		if unsubLeft != nil {
			unsubLeft()
		}
		if unsubRight != nil {
			unsubRight()
		}
	}

	return out, cancel
}
