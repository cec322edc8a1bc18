package stream_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehrshadshams/reactive/pkg/stream"
)

type timedInt struct {
	v int
	t time.Time
}

func TestBufferReordersWithinInterval(t *testing.T) {
	source := stream.NewSubject[timedInt]()
	base := time.Unix(0, 0)

	out, cancel := stream.Buffer[timedInt](source, func(x timedInt) time.Time { return x.t }, 20*time.Millisecond)
	defer cancel()

	var got []int
	done := make(chan struct{})
	out.Subscribe(stream.Observer[timedInt]{
		OnNext:     func(x timedInt) { got = append(got, x.v) },
		OnComplete: func() { close(done) },
	})

	// arrive out of order within one flush interval
	source.Next(timedInt{v: 3, t: base.Add(3 * time.Second)})
	source.Next(timedInt{v: 1, t: base.Add(1 * time.Second)})
	source.Next(timedInt{v: 2, t: base.Add(2 * time.Second)})
	source.Complete()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for buffer to flush and complete")
	}

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestBufferTieBreakIsArrivalOrder(t *testing.T) {
	source := stream.NewSubject[timedInt]()
	same := time.Unix(0, 0)

	out, cancel := stream.Buffer[timedInt](source, func(x timedInt) time.Time { return x.t }, 20*time.Millisecond)
	defer cancel()

	var got []int
	done := make(chan struct{})
	out.Subscribe(stream.Observer[timedInt]{
		OnNext:     func(x timedInt) { got = append(got, x.v) },
		OnComplete: func() { close(done) },
	})

	source.Next(timedInt{v: 10, t: same})
	source.Next(timedInt{v: 20, t: same})
	source.Complete()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}

	assert.Equal(t, []int{10, 20}, got)
}
