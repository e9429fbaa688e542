package scene

import (
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

// FrameID identifies a requested frame so it can be canceled.
type FrameID uint64

// FrameScheduler invokes a callback once, at the next frame boundary. The
// callback receives a monotonic timestamp.
type FrameScheduler interface {
	RequestFrame(func(now time.Duration)) FrameID
	CancelFrame(FrameID)
}

// ResizeSource reports viewport changes until the returned function is
// called.
type ResizeSource interface {
	Subscribe(func(Viewport)) (unsubscribe func())
}

// Surface draws frames.
type Surface interface {
	Render(Frame) error
	Resize(Viewport)
	Close() error
}

// SurfaceFactory creates the drawing surface. It fails when the host has no
// graphics support.
type SurfaceFactory func() (Surface, error)

// State is the loop lifecycle stage.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRunning
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// maxFrameStep bounds dt after the host stalls, such as a hidden tab.
const maxFrameStep = 0.1

// LoopConfig wires a Loop to its host.
type LoopConfig struct {
	Scheduler FrameScheduler
	Resize    ResizeSource
	Surface   SurfaceFactory
	Viewport  Viewport
	Icons     []Icon
	Rand      *rand.Rand
}

// Loop owns a Scene and drives it frame by frame.
type Loop struct {
	cfg LoopConfig

	mu          sync.Mutex
	state       State
	degraded    bool
	scene       *Scene
	surface     Surface
	frame       FrameID
	framePend   bool
	unsubscribe func()
	start       time.Duration
	last        time.Duration
	started     bool
}

// NewLoop returns an uninitialized loop.
func NewLoop(cfg LoopConfig) *Loop {
	return &Loop{cfg: cfg}
}

// State returns the lifecycle stage.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Degraded reports whether the surface could not be created. A degraded loop
// never renders.
func (l *Loop) Degraded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.degraded
}

// Scene exposes the animated state.
func (l *Loop) Scene() *Scene {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scene
}

// Init builds the scene and its surface. A surface failure leaves the loop
// initialized but degraded; it is logged and not returned.
func (l *Loop) Init() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateUninitialized {
		return
	}
	l.state = StateInitialized
	l.scene = New(Options{Viewport: l.cfg.Viewport, Icons: l.cfg.Icons, Rand: l.cfg.Rand})

	var err error
	if l.cfg.Surface == nil {
		err = errors.New("no surface factory")
	} else {
		l.surface, err = l.cfg.Surface()
		if err == nil && l.surface == nil {
			err = errors.New("surface factory returned nil")
		}
	}
	if err != nil {
		l.degraded = true
		l.surface = nil
		log.Printf("scene surface unavailable err=%v", err)
	}
}

// Start subscribes to resizes and schedules the first frame. It is a no-op
// unless the loop is initialized and not degraded.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateInitialized || l.degraded || l.cfg.Scheduler == nil {
		return
	}
	l.state = StateRunning
	if l.cfg.Resize != nil {
		l.unsubscribe = l.cfg.Resize.Subscribe(l.onResize)
	}
	l.requestLocked()
}

func (l *Loop) requestLocked() {
	l.frame = l.cfg.Scheduler.RequestFrame(l.tick)
	l.framePend = true
}

func (l *Loop) tick(now time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.framePend = false
	if l.state != StateRunning {
		return
	}
	if !l.started {
		l.started = true
		l.start = now
		l.last = now
	}
	dt := (now - l.last).Seconds()
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	l.last = now
	l.scene.Update((now - l.start).Seconds(), dt)
	if err := l.surface.Render(l.scene.Frame()); err != nil {
		log.Printf("scene render failed err=%v", err)
		l.degraded = true
		l.disposeLocked()
		return
	}
	l.requestLocked()
}

func (l *Loop) onResize(v Viewport) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateRunning {
		return
	}
	l.scene.Resize(v)
	l.surface.Resize(v)
}

// Dispose stops the loop: the pending frame is canceled, then the resize
// subscription is dropped, then the surface is closed. Later calls do
// nothing.
func (l *Loop) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disposeLocked()
}

func (l *Loop) disposeLocked() {
	if l.state == StateDisposed {
		return
	}
	l.state = StateDisposed
	if l.framePend {
		l.cfg.Scheduler.CancelFrame(l.frame)
		l.framePend = false
	}
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	if l.surface != nil {
		if err := l.surface.Close(); err != nil {
			log.Printf("scene surface close failed err=%v", err)
		}
		l.surface = nil
	}
}
