package scene

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerSchedulerFiresRequestedFrame(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(time.Millisecond)
	defer s.Stop()

	fired := make(chan time.Duration, 1)
	s.RequestFrame(func(now time.Duration) { fired <- now })
	select {
	case now := <-fired:
		if now <= 0 {
			t.Fatalf("timestamp = %v, want positive", now)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame never fired")
	}
}

func TestTickerSchedulerCancel(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(5 * time.Millisecond)
	var calls atomic.Int32
	id := s.RequestFrame(func(time.Duration) { calls.Add(1) })
	s.CancelFrame(id)
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	if n := calls.Load(); n != 0 {
		t.Fatalf("canceled callback fired %d times", n)
	}
}

func TestTickerSchedulerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(0)
	s.Stop()
	s.Stop()
}

func TestLoopWithTickerScheduler(t *testing.T) {
	t.Parallel()

	calls := &callLog{}
	surface := &countingSurface{rendered: make(chan struct{}, 1)}
	scheduler := NewTickerScheduler(time.Millisecond)
	loop := NewLoop(LoopConfig{
		Scheduler: scheduler,
		Resize:    &manualResize{log: calls},
		Surface:   func() (Surface, error) { return surface, nil },
		Viewport:  Viewport{Width: 1024, Height: 768},
		Icons:     testIcons(3),
		Rand:      seeded(),
	})
	loop.Init()
	loop.Start()

	for i := 0; i < 3; i++ {
		select {
		case <-surface.rendered:
		case <-time.After(2 * time.Second):
			t.Fatal("loop did not render")
		}
	}
	loop.Dispose()
	scheduler.Stop()
	if loop.State() != StateDisposed {
		t.Fatalf("state = %v", loop.State())
	}
}

type countingSurface struct {
	rendered chan struct{}
}

func (s *countingSurface) Render(Frame) error {
	select {
	case s.rendered <- struct{}{}:
	default:
	}
	return nil
}

func (s *countingSurface) Resize(Viewport) {}

func (s *countingSurface) Close() error { return nil }
