package scene

import (
	"sync"
	"time"
)

// DefaultFrameInterval is roughly 60 frames a second.
const DefaultFrameInterval = time.Second / 60

// TickerScheduler is a FrameScheduler for hosts without a display refresh
// signal. One goroutine fires at most one pending callback per tick.
type TickerScheduler struct {
	origin time.Time

	mu      sync.Mutex
	nextID  FrameID
	pending FrameID
	cb      func(time.Duration)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewTickerScheduler starts a scheduler. Callers must call Stop.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	s := &TickerScheduler{
		origin: time.Now(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run(interval)
	return s
}

// RequestFrame replaces any pending callback with cb.
func (s *TickerScheduler) RequestFrame(cb func(time.Duration)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.pending = s.nextID
	s.cb = cb
	return s.pending
}

// CancelFrame drops the callback for id if it has not fired yet.
func (s *TickerScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == id {
		s.pending = 0
		s.cb = nil
	}
}

// Stop ends the scheduler goroutine and waits for it. Pending callbacks are
// dropped. Stop must not be called from inside a callback.
func (s *TickerScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *TickerScheduler) run(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			cb := s.cb
			s.cb = nil
			s.pending = 0
			s.mu.Unlock()
			if cb != nil {
				cb(now.Sub(s.origin))
			}
		}
	}
}
