package stream

import (
	"sort"
	"sync"
	"time"
)

// Buffer re-sorts a hot source by an extracted event time within fixed
// wall-clock intervals: it accumulates items for interval, then at each
// tick sorts the accumulated batch (stable, so same-event-time items keep
// their arrival order — the windower's tie-break rule) and republishes
// them one at a time, in order, on the returned Subject. This is the
// reorder buffer of spec §4.2 step 1, bounding the out-of-order tolerance
// the windower downstream has to deal with.
//
// interval must be positive.
func Buffer[T any](source Observable[T], eventTime func(T) time.Time, interval time.Duration) (*Subject[T], func()) {
	if interval <= 0 {
		panic("stream: buffer interval must be positive")
	}

	out := NewSubject[T]()
	var mu sync.Mutex
	var pending []T
	done := make(chan struct{})

	ticker := time.NewTicker(interval)

	flush := func() {
		mu.Lock()
		batch := pending
		pending = nil
		mu.Unlock()
		if len(batch) == 0 {
			return
		}
		sort.SliceStable(batch, func(i, j int) bool {
			return eventTime(batch[i]).Before(eventTime(batch[j]))
		})
		for _, item := range batch {
			out.Next(item)
		}
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				flush()
			case <-done:
				return
			}
		}
	}()

	unsubSource := source.Subscribe(Observer[T]{
		OnNext: func(v T) {
			mu.Lock()
			pending = append(pending, v)
			mu.Unlock()
		},
		OnError: func(err error) {
			flush()
			out.Error(err)
		},
		OnComplete: func() {
			flush()
			out.Complete()
		},
	})

	cancel := func() {
		select {
		case <-done:
		default:
			close(done)
		}
		ticker.Stop()
		unsubSource()
	}

	return out, cancel
}
