package scene

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testIcons(n int) []Icon {
	icons := make([]Icon, n)
	for i := range icons {
		icons[i] = Icon{Name: "icon", Size: 2}
	}
	return icons
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSpacingFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width float64
		want  Spacing
	}{
		{width: 320, want: Spacing{Spread: 10, ParticleSpread: 30, CameraDistance: 15, IconScale: 0.8}},
		{width: 639, want: Spacing{Spread: 10, ParticleSpread: 30, CameraDistance: 15, IconScale: 0.8}},
		{width: 640, want: Spacing{Spread: 15, ParticleSpread: 40, CameraDistance: 20, IconScale: 1}},
		{width: 1023, want: Spacing{Spread: 15, ParticleSpread: 40, CameraDistance: 20, IconScale: 1}},
		{width: 1024, want: Spacing{Spread: 20, ParticleSpread: 50, CameraDistance: 25, IconScale: 1}},
		{width: 2560, want: Spacing{Spread: 20, ParticleSpread: 50, CameraDistance: 25, IconScale: 1}},
	}
	for _, tt := range tests {
		if got := SpacingFor(tt.width); got != tt.want {
			t.Fatalf("SpacingFor(%v) = %+v, want %+v", tt.width, got, tt.want)
		}
	}
}

func TestSphericalPositionStaysOnSphere(t *testing.T) {
	t.Parallel()

	const n = 27
	for i := 0; i < n; i++ {
		p := SphericalPosition(20, i, n)
		if !p.IsFinite() {
			t.Fatalf("position %d = %+v, want finite", i, p)
		}
		if got := p.Len(); math.Abs(got-20) > 1e-9 {
			t.Fatalf("position %d radius = %v, want 20", i, got)
		}
	}
	if p := SphericalPosition(20, 0, n); math.Abs(p.Z+20) > 1e-9 {
		t.Fatalf("first position = %+v, want south pole", p)
	}
}

func TestSphericalPositionEdgeCases(t *testing.T) {
	t.Parallel()

	if p := SphericalPosition(10, 0, 1); !p.IsFinite() {
		t.Fatalf("n=1 position = %+v, want finite", p)
	}
	if p := SphericalPosition(10, 0, 0); p != (Vec3{}) {
		t.Fatalf("n=0 position = %+v, want origin", p)
	}
	if p := SphericalPosition(10, 5, -3); p != (Vec3{}) {
		t.Fatalf("n<0 position = %+v, want origin", p)
	}
	if p := SphericalPosition(10, 7, 3); !p.IsFinite() {
		t.Fatalf("out of range index = %+v, want finite", p)
	}
}

func TestNewBuildsChainOfEdges(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 27} {
		s := New(Options{Viewport: Viewport{Width: 1280, Height: 720}, Icons: testIcons(n), Rand: seeded()})
		if len(s.Nodes) != n {
			t.Fatalf("n=%d nodes = %d", n, len(s.Nodes))
		}
		wantEdges := max(n-1, 0)
		if len(s.Edges) != wantEdges {
			t.Fatalf("n=%d edges = %d, want %d", n, len(s.Edges), wantEdges)
		}
		for i, e := range s.Edges {
			if e.From != i || e.To != i+1 || e.To >= n {
				t.Fatalf("n=%d edge %d = %+v", n, i, e)
			}
		}
	}
}

func TestNewSceneParameters(t *testing.T) {
	t.Parallel()

	s := New(Options{Viewport: Viewport{Width: 400, Height: 800}, Icons: []Icon{{Name: "go", Size: 2.5}}, Rand: seeded()})
	if s.Camera.FOV != 75 || s.Camera.Near != 0.1 || s.Camera.Far != 1000 {
		t.Fatalf("camera = %+v", s.Camera)
	}
	if s.Camera.Aspect != 0.5 || s.Camera.Distance != 15 {
		t.Fatalf("camera aspect/distance = %v/%v, want 0.5/15", s.Camera.Aspect, s.Camera.Distance)
	}
	if got := s.Nodes[0].Scale; math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("node scale = %v, want 2 (2.5 * 0.8)", got)
	}
	if len(s.Particles.Positions) != ParticleCount || len(s.Particles.Colors) != ParticleCount {
		t.Fatalf("particles = %d/%d", len(s.Particles.Positions), len(s.Particles.Colors))
	}
	for _, p := range s.Particles.Positions {
		if math.Abs(p.X) > 15 || math.Abs(p.Y) > 15 || math.Abs(p.Z) > 15 {
			t.Fatalf("particle %+v outside mobile bounds", p)
		}
	}
	if s.Ambient.Color != 0xffffff || s.Ambient.Intensity != 0.5 {
		t.Fatalf("ambient = %+v", s.Ambient)
	}
	want := [2]Light{
		{Color: 0xff3366, Intensity: 2, Distance: 30, Position: Vec3{X: 5, Y: 5, Z: 5}},
		{Color: 0x3366ff, Intensity: 2, Distance: 30, Position: Vec3{X: -5, Y: -5, Z: -5}},
	}
	if s.Lights != want {
		t.Fatalf("lights = %+v, want %+v", s.Lights, want)
	}
}

func TestUpdateMovesNodesAroundBase(t *testing.T) {
	t.Parallel()

	s := New(Options{Viewport: Viewport{Width: 1280, Height: 720}, Icons: testIcons(3), Rand: seeded()})
	const tm = 1.25
	s.Update(tm, 1.0/60)
	for i, n := range s.Nodes {
		phase := tm + float64(i)
		want := n.Base.Add(Vec3{X: math.Sin(phase) * 0.6, Y: math.Cos(phase) * 0.6, Z: math.Sin(phase) * 0.4})
		if n.Position.Sub(want).Len() > 1e-9 {
			t.Fatalf("node %d position = %+v, want %+v", i, n.Position, want)
		}
		if n.Rotation != -s.Camera.Azimuth {
			t.Fatalf("node %d rotation = %v, want %v", i, n.Rotation, -s.Camera.Azimuth)
		}
	}
	a, b := s.Segment(s.Edges[0])
	if a != s.Nodes[0].Position || b != s.Nodes[1].Position {
		t.Fatalf("segment does not follow nodes")
	}
	if got, want := s.Lights[0].Position.X, math.Sin(tm*0.7)*20; math.Abs(got-want) > 1e-9 {
		t.Fatalf("light 1 x = %v, want %v", got, want)
	}
	if got, want := s.Lights[1].Position.Y, math.Sin(tm*0.5)*20; math.Abs(got-want) > 1e-9 {
		t.Fatalf("light 2 y = %v, want %v", got, want)
	}
	if s.Lights[0].Position.Z != 10 || s.Lights[1].Position.Z != -10 {
		t.Fatalf("light z changed: %v %v", s.Lights[0].Position.Z, s.Lights[1].Position.Z)
	}
}

func TestUpdateDriftScalesWithElapsedTime(t *testing.T) {
	t.Parallel()

	fast := New(Options{Viewport: Viewport{Width: 1280, Height: 720}, Rand: seeded()})
	slow := New(Options{Viewport: Viewport{Width: 1280, Height: 720}, Rand: seeded()})
	for i := 1; i <= 120; i++ {
		fast.Update(float64(i)/120, 1.0/120)
	}
	for i := 1; i <= 30; i++ {
		slow.Update(float64(i)/30, 1.0/30)
	}
	if math.Abs(fast.Particles.RotationX-slow.Particles.RotationX) > 1e-9 {
		t.Fatalf("rotation x differs by frame rate: %v vs %v", fast.Particles.RotationX, slow.Particles.RotationX)
	}
	if math.Abs(fast.Particles.RotationX-0.012) > 1e-9 || math.Abs(fast.Particles.RotationY-0.006) > 1e-9 {
		t.Fatalf("rotation after 1s = %v/%v, want 0.012/0.006", fast.Particles.RotationX, fast.Particles.RotationY)
	}
	if math.Abs(fast.Camera.Azimuth-slow.Camera.Azimuth) > 1e-9 {
		t.Fatalf("azimuth differs by frame rate")
	}
	if want := 2 * math.Pi / 120; math.Abs(fast.Camera.Azimuth-want) > 1e-9 {
		t.Fatalf("azimuth after 1s = %v, want %v", fast.Camera.Azimuth, want)
	}
}

func TestResizeKeepsNodesAndRescattersParticles(t *testing.T) {
	t.Parallel()

	s := New(Options{Viewport: Viewport{Width: 1280, Height: 720}, Icons: testIcons(5), Rand: seeded()})
	bases := make([]Vec3, len(s.Nodes))
	for i, n := range s.Nodes {
		bases[i] = n.Base
	}
	before := s.Particles.Positions[0]

	s.Resize(Viewport{Width: 500, Height: 1000})

	if s.Camera.Aspect != 0.5 || s.Camera.Distance != 15 {
		t.Fatalf("camera after resize = %+v", s.Camera)
	}
	if len(s.Nodes) != 5 || len(s.Edges) != 4 {
		t.Fatalf("nodes/edges = %d/%d, want 5/4", len(s.Nodes), len(s.Edges))
	}
	for i, n := range s.Nodes {
		if n.Base != bases[i] {
			t.Fatalf("node %d base moved", i)
		}
	}
	if s.Particles.Positions[0] == before {
		t.Fatalf("particles not re-scattered")
	}
	for _, p := range s.Particles.Positions {
		if math.Abs(p.X) > 15 || math.Abs(p.Y) > 15 || math.Abs(p.Z) > 15 {
			t.Fatalf("particle %+v outside new bounds", p)
		}
	}
	if s.Spacing().Spread != 10 {
		t.Fatalf("spread = %v, want 10", s.Spacing().Spread)
	}
}

func TestFrameProjectsOriginToCenter(t *testing.T) {
	t.Parallel()

	s := New(Options{Viewport: Viewport{Width: 800, Height: 600}, Icons: []Icon{{Name: "center", Size: 1}}, Rand: seeded()})
	s.Nodes[0].Position = Vec3{}
	frame := s.Frame()
	if len(frame.Nodes) != 1 {
		t.Fatalf("nodes = %d", len(frame.Nodes))
	}
	n := frame.Nodes[0]
	if math.Abs(n.X-400) > 1e-6 || math.Abs(n.Y-300) > 1e-6 {
		t.Fatalf("origin projected to (%v,%v), want (400,300)", n.X, n.Y)
	}
	if n.Size <= 0 {
		t.Fatalf("size = %v", n.Size)
	}
	if frame.Width != 800 || frame.Height != 600 {
		t.Fatalf("frame size = %vx%v", frame.Width, frame.Height)
	}
}

func TestFrameOrdersNodesBackToFront(t *testing.T) {
	t.Parallel()

	s := New(Options{Viewport: Viewport{Width: 800, Height: 600}, Icons: testIcons(3), Rand: seeded()})
	s.Nodes[0].Position = Vec3{Z: 5}
	s.Nodes[1].Position = Vec3{Z: -5}
	s.Nodes[2].Position = Vec3{Z: 100}
	frame := s.Frame()
	if len(frame.Nodes) != 2 {
		t.Fatalf("nodes = %d, want node behind camera clipped", len(frame.Nodes))
	}
	if frame.Nodes[0].Depth < frame.Nodes[1].Depth {
		t.Fatalf("nodes not ordered back to front: %+v", frame.Nodes)
	}
	if len(frame.Edges) != 1 {
		t.Fatalf("edges = %d, want only the fully visible one", len(frame.Edges))
	}
}
