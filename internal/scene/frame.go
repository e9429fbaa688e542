package scene

import (
	"math"
	"slices"
)

// Frame is one rendered image in screen space, ready for a 2D surface.
// Coordinates are CSS pixels from the top-left corner.
type Frame struct {
	Width     float64
	Height    float64
	Particles []ScreenParticle
	Edges     []ScreenSegment
	// Nodes are ordered back to front.
	Nodes  []ScreenNode
	Lights []ScreenLight
}

// ScreenParticle is a projected particle.
type ScreenParticle struct {
	X, Y   float64
	Radius float64
	Color  Color
}

// ScreenSegment is a projected edge.
type ScreenSegment struct {
	X1, Y1, X2, Y2 float64
}

// ScreenNode is a projected icon sprite.
type ScreenNode struct {
	// Index is the node's position in Scene.Nodes.
	Index    int
	Name     string
	X, Y     float64
	Size     float64
	Rotation float64
	Depth    float64
}

// ScreenLight is a projected point light with its glow radius.
type ScreenLight struct {
	X, Y      float64
	Radius    float64
	Color     uint32
	Intensity float64
}

type projector struct {
	eye     Vec3
	right   Vec3
	up      Vec3
	forward Vec3
	focal   float64
	aspect  float64
	near    float64
	far     float64
	width   float64
	height  float64
}

func newProjector(c Camera, v Viewport) projector {
	eye := c.Position()
	forward := eye.Scale(-1).Normalize()
	right := forward.Cross(Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)
	return projector{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   1 / math.Tan(c.FOV*math.Pi/360),
		aspect:  c.Aspect,
		near:    c.Near,
		far:     c.Far,
		width:   v.Width,
		height:  v.Height,
	}
}

// project maps p to screen pixels. scale converts a world-space length at
// p's depth to pixels. ok is false when p is outside the clip range.
func (pr projector) project(p Vec3) (x, y, depth, scale float64, ok bool) {
	rel := p.Sub(pr.eye)
	depth = rel.Dot(pr.forward)
	if depth <= pr.near || depth >= pr.far {
		return 0, 0, depth, 0, false
	}
	ndcX := pr.focal / pr.aspect * rel.Dot(pr.right) / depth
	ndcY := pr.focal * rel.Dot(pr.up) / depth
	x = (ndcX + 1) / 2 * pr.width
	y = (1 - ndcY) / 2 * pr.height
	scale = pr.focal / depth * pr.height / 2
	return x, y, depth, scale, true
}

// Frame projects the current state onto the scene's viewport.
func (s *Scene) Frame() Frame {
	pr := newProjector(s.Camera, s.viewport)
	frame := Frame{
		Width:     s.viewport.Width,
		Height:    s.viewport.Height,
		Particles: make([]ScreenParticle, 0, len(s.Particles.Positions)),
		Edges:     make([]ScreenSegment, 0, len(s.Edges)),
		Nodes:     make([]ScreenNode, 0, len(s.Nodes)),
		Lights:    make([]ScreenLight, 0, len(s.Lights)),
	}

	for i, p := range s.Particles.Positions {
		x, y, _, scale, ok := pr.project(rotateXY(p, s.Particles.RotationX, s.Particles.RotationY))
		if !ok {
			continue
		}
		frame.Particles = append(frame.Particles, ScreenParticle{
			X:      x,
			Y:      y,
			Radius: math.Max(0.5, ParticleSize*scale/2),
			Color:  s.Particles.Colors[i],
		})
	}

	for _, e := range s.Edges {
		a, b := s.Segment(e)
		x1, y1, _, _, okA := pr.project(a)
		x2, y2, _, _, okB := pr.project(b)
		if !okA || !okB {
			continue
		}
		frame.Edges = append(frame.Edges, ScreenSegment{X1: x1, Y1: y1, X2: x2, Y2: y2})
	}

	for i, n := range s.Nodes {
		x, y, depth, scale, ok := pr.project(n.Position)
		if !ok {
			continue
		}
		frame.Nodes = append(frame.Nodes, ScreenNode{
			Index:    i,
			Name:     n.Name,
			X:        x,
			Y:        y,
			Size:     n.Scale * scale,
			Rotation: n.Rotation,
			Depth:    depth,
		})
	}
	slices.SortStableFunc(frame.Nodes, func(a, b ScreenNode) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		default:
			return 0
		}
	})

	for _, l := range s.Lights {
		x, y, _, scale, ok := pr.project(l.Position)
		if !ok {
			continue
		}
		frame.Lights = append(frame.Lights, ScreenLight{
			X:         x,
			Y:         y,
			Radius:    l.Distance * scale / 4,
			Color:     l.Color,
			Intensity: l.Intensity,
		})
	}
	return frame
}
