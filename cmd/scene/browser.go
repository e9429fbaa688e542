//go:build js && wasm

package main

import (
	"encoding/binary"
	"errors"
	"math"
	"syscall/js"
	"time"

	"github.com/sinhaparth5/portfolio/internal/scene"
)

func window() js.Value {
	return js.Global().Get("window")
}

func windowViewport() scene.Viewport {
	w := window()
	return scene.Viewport{
		Width:  w.Get("innerWidth").Float(),
		Height: w.Get("innerHeight").Float(),
	}
}

// pageIconData returns the icon list the bridge script carries, or "".
func pageIconData() string {
	bridge := window().Get("portfolioScene")
	if bridge.IsUndefined() || bridge.IsNull() || bridge.Get("icons").Type() != js.TypeFunction {
		return ""
	}
	data := bridge.Call("icons")
	if data.Type() != js.TypeString {
		return ""
	}
	return data.String()
}

// animationFrames schedules callbacks with requestAnimationFrame.
type animationFrames struct {
	funcs map[scene.FrameID]js.Func
}

func newAnimationFrames() *animationFrames {
	return &animationFrames{funcs: map[scene.FrameID]js.Func{}}
}

func (a *animationFrames) RequestFrame(cb func(time.Duration)) scene.FrameID {
	var id scene.FrameID
	var fn js.Func
	fn = js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn.Release()
		delete(a.funcs, id)
		ms := 0.0
		if len(args) > 0 {
			ms = args[0].Float()
		}
		cb(time.Duration(ms * float64(time.Millisecond)))
		return nil
	})
	id = scene.FrameID(window().Call("requestAnimationFrame", fn).Int())
	a.funcs[id] = fn
	return id
}

func (a *animationFrames) CancelFrame(id scene.FrameID) {
	window().Call("cancelAnimationFrame", int(id))
	if fn, ok := a.funcs[id]; ok {
		fn.Release()
		delete(a.funcs, id)
	}
}

type windowResize struct{}

func (windowResize) Subscribe(fn func(scene.Viewport)) func() {
	handler := js.FuncOf(func(js.Value, []js.Value) any {
		fn(windowViewport())
		return nil
	})
	window().Call("addEventListener", "resize", handler)
	return func() {
		window().Call("removeEventListener", "resize", handler)
		handler.Release()
	}
}

func onPageHide() <-chan struct{} {
	done := make(chan struct{})
	var handler js.Func
	handler = js.FuncOf(func(js.Value, []js.Value) any {
		window().Call("removeEventListener", "pagehide", handler)
		handler.Release()
		close(done)
		return nil
	})
	window().Call("addEventListener", "pagehide", handler)
	return done
}

// canvasSurface hands packed frames to the JavaScript drawing bridge.
type canvasSurface struct {
	bridge js.Value
	buf    []byte
}

// Floats per packed element, matching /static/scene.js.
const (
	particleStride = 6
	edgeStride     = 4
	nodeStride     = 5
	lightStride    = 5
)

func newCanvasSurface(icons []scene.Icon) (scene.Surface, error) {
	bridge := window().Get("portfolioScene")
	if bridge.IsUndefined() || bridge.IsNull() {
		return nil, errors.New("drawing bridge not installed")
	}
	names := make([]any, len(icons))
	for i, icon := range icons {
		names[i] = icon.Name
	}
	if !bridge.Call("attach", js.ValueOf(names)).Truthy() {
		return nil, errors.New("canvas 2d context unavailable")
	}
	return &canvasSurface{bridge: bridge}, nil
}

func (s *canvasSurface) Render(f scene.Frame) error {
	floats := make([]float32, 0,
		len(f.Particles)*particleStride+len(f.Edges)*edgeStride+len(f.Nodes)*nodeStride+len(f.Lights)*lightStride)
	for _, p := range f.Particles {
		floats = append(floats, float32(p.X), float32(p.Y), float32(p.Radius),
			float32(p.Color.R), float32(p.Color.G), float32(p.Color.B))
	}
	for _, e := range f.Edges {
		floats = append(floats, float32(e.X1), float32(e.Y1), float32(e.X2), float32(e.Y2))
	}
	for _, n := range f.Nodes {
		floats = append(floats, float32(n.Index), float32(n.X), float32(n.Y), float32(n.Size), float32(n.Rotation))
	}
	for _, l := range f.Lights {
		floats = append(floats, float32(l.X), float32(l.Y), float32(l.Radius), float32(l.Color), float32(l.Intensity))
	}

	size := len(floats) * 4
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]
	for i, v := range floats {
		binary.LittleEndian.PutUint32(s.buf[i*4:], math.Float32bits(v))
	}
	bytes := js.Global().Get("Uint8Array").New(size)
	js.CopyBytesToJS(bytes, s.buf)
	s.bridge.Call("draw", bytes.Get("buffer"),
		len(f.Particles), len(f.Edges), len(f.Nodes), len(f.Lights))
	return nil
}

func (s *canvasSurface) Resize(v scene.Viewport) {
	s.bridge.Call("resize", v.Width, v.Height)
}

func (s *canvasSurface) Close() error {
	s.bridge.Call("detach")
	return nil
}
