package stream_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mehrshadshams/reactive/pkg/stream"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubjectDeliversInOrder(t *testing.T) {
	s := stream.NewSubject[int]()
	var got []int
	s.Subscribe(stream.Observer[int]{OnNext: func(v int) { got = append(got, v) }})
	s.Next(1)
	s.Next(2)
	s.Next(3)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestSubjectFanOut(t *testing.T) {
	s := stream.NewSubject[int]()
	var a, b []int
	s.Subscribe(stream.Observer[int]{OnNext: func(v int) { a = append(a, v) }})
	s.Subscribe(stream.Observer[int]{OnNext: func(v int) { b = append(b, v) }})
	s.Next(7)
	assert.Equal(t, []int{7}, a)
	assert.Equal(t, []int{7}, b)
}

func TestSubjectUnsubscribeStopsDelivery(t *testing.T) {
	s := stream.NewSubject[int]()
	var got []int
	cancel := s.Subscribe(stream.Observer[int]{OnNext: func(v int) { got = append(got, v) }})
	s.Next(1)
	cancel()
	s.Next(2)
	assert.Equal(t, []int{1}, got)
}

func TestSubjectErrorFannedOutOnce(t *testing.T) {
	s := stream.NewSubject[int]()
	var errCount int
	s.Subscribe(stream.Observer[int]{OnError: func(error) { errCount++ }})
	s.Subscribe(stream.Observer[int]{OnError: func(error) { errCount++ }})
	boom := errors.New("boom")
	s.Error(boom)
	s.Error(boom) // second terminal call must be a no-op
	assert.Equal(t, 2, errCount)
}

func TestSubjectLateSubscriberAfterCompleteGetsCompleteImmediately(t *testing.T) {
	s := stream.NewSubject[int]()
	s.Complete()
	var completed bool
	s.Subscribe(stream.Observer[int]{OnComplete: func() { completed = true }})
	assert.True(t, completed)
}

func TestSubjectLateSubscriberAfterErrorGetsErrorImmediately(t *testing.T) {
	s := stream.NewSubject[int]()
	boom := errors.New("boom")
	s.Error(boom)
	var gotErr error
	s.Subscribe(stream.Observer[int]{OnError: func(err error) { gotErr = err }})
	require.Error(t, gotErr)
	assert.Equal(t, boom, gotErr)
}

func TestSubjectNextAfterCompleteIsNoop(t *testing.T) {
	s := stream.NewSubject[int]()
	var got []int
	s.Subscribe(stream.Observer[int]{OnNext: func(v int) { got = append(got, v) }})
	s.Complete()
	s.Next(99)
	assert.Empty(t, got)
}
