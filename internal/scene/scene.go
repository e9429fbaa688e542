package scene

import (
	"math"
	"math/rand/v2"
)

// Fixed scene parameters.
const (
	ParticleCount = 2000

	CameraFOV  = 75.0
	CameraNear = 0.1
	CameraFar  = 1000.0

	// AutoRotateSpeed matches an orbit control speed where 1.0 is one
	// revolution per minute.
	AutoRotateSpeed = 0.5

	// Per-frame particle drift at the reference rate of 60 frames a second.
	particleDriftX = 0.0002
	particleDriftY = 0.0001
	referenceFPS   = 60.0

	nodeWobbleXY = 0.03
	nodeWobbleZ  = 0.02

	AmbientColor     = 0xffffff
	AmbientIntensity = 0.5
	Light1Color      = 0xff3366
	Light2Color      = 0x3366ff
	LightIntensity   = 2.0
	lightRangeFactor = 3.0

	EdgeColor   = 0x00ffff
	EdgeOpacity = 0.2
	NodeOpacity = 0.8

	ParticleSize    = 0.1
	ParticleOpacity = 0.6
)

// Viewport is the drawable area in CSS pixels.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Icon is one entry of the node catalog.
type Icon struct {
	Name string
	Size float64
}

// Color is a linear RGB triple in [0,1].
type Color struct {
	R, G, B float64
}

// Node is an icon sprite. Base is fixed at construction; Position moves
// every frame around it.
type Node struct {
	Name     string
	Base     Vec3
	Position Vec3
	Scale    float64
	Rotation float64
}

// Edge links node From to node To.
type Edge struct {
	From, To int
}

// Light is a point light.
type Light struct {
	Color     uint32
	Intensity float64
	Distance  float64
	Position  Vec3
}

// Camera is a perspective camera orbiting the origin.
type Camera struct {
	FOV      float64
	Near     float64
	Far      float64
	Aspect   float64
	Distance float64
	Azimuth  float64
}

// Position returns the camera location on its orbit.
func (c Camera) Position() Vec3 {
	s, co := math.Sincos(c.Azimuth)
	return Vec3{X: c.Distance * s, Z: c.Distance * co}
}

// ParticleCloud is a point cloud rotated as a rigid whole.
type ParticleCloud struct {
	Positions []Vec3
	Colors    []Color
	RotationX float64
	RotationY float64
}

// Options configures New.
type Options struct {
	Viewport Viewport
	Icons    []Icon
	// Rand drives particle placement and colors. Nil uses a random seed.
	Rand *rand.Rand
}

// Scene is the full animated state.
type Scene struct {
	Camera    Camera
	Particles ParticleCloud
	Nodes     []Node
	Edges     []Edge
	Ambient   Light
	Lights    [2]Light
	spacing   Spacing
	viewport  Viewport
	rng       *rand.Rand
}

// New builds a scene for the given viewport and icon catalog.
func New(opts Options) *Scene {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	spacing := SpacingFor(opts.Viewport.Width)
	s := &Scene{
		Camera: Camera{
			FOV:      CameraFOV,
			Near:     CameraNear,
			Far:      CameraFar,
			Aspect:   opts.Viewport.aspect(),
			Distance: spacing.CameraDistance,
		},
		Particles: ParticleCloud{
			Positions: make([]Vec3, ParticleCount),
			Colors:    make([]Color, ParticleCount),
		},
		spacing:  spacing,
		viewport: opts.Viewport,
		rng:      rng,
	}
	s.scatterParticles()
	for i := range s.Particles.Colors {
		s.Particles.Colors[i] = Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	}

	n := len(opts.Icons)
	s.Nodes = make([]Node, n)
	for i, icon := range opts.Icons {
		base := SphericalPosition(spacing.Spread, i, n)
		s.Nodes[i] = Node{
			Name:     icon.Name,
			Base:     base,
			Position: base,
			Scale:    icon.Size * spacing.IconScale,
		}
	}
	if n > 1 {
		s.Edges = make([]Edge, 0, n-1)
		for i := 0; i < n-1; i++ {
			s.Edges = append(s.Edges, Edge{From: i, To: i + 1})
		}
	}

	half := spacing.Spread / 2
	s.Ambient = Light{Color: AmbientColor, Intensity: AmbientIntensity}
	s.Lights[0] = Light{
		Color:     Light1Color,
		Intensity: LightIntensity,
		Distance:  spacing.Spread * lightRangeFactor,
		Position:  Vec3{X: half, Y: half, Z: half},
	}
	s.Lights[1] = Light{
		Color:     Light2Color,
		Intensity: LightIntensity,
		Distance:  spacing.Spread * lightRangeFactor,
		Position:  Vec3{X: -half, Y: -half, Z: -half},
	}
	return s
}

// Spacing returns the active tier.
func (s *Scene) Spacing() Spacing {
	return s.spacing
}

// Viewport returns the last viewport the scene was sized for.
func (s *Scene) Viewport() Viewport {
	return s.viewport
}

// Update advances the animation to t seconds, dt seconds after the previous
// frame. Drift and orbit advance by dt so their speed does not depend on the
// frame rate.
func (s *Scene) Update(t, dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	frames := dt * referenceFPS
	s.Particles.RotationX += particleDriftX * frames
	s.Particles.RotationY += particleDriftY * frames

	spread := s.spacing.Spread
	for i := range s.Nodes {
		phase := t + float64(i)
		sin, cos := math.Sincos(phase)
		s.Nodes[i].Position = s.Nodes[i].Base.Add(Vec3{
			X: sin * spread * nodeWobbleXY,
			Y: cos * spread * nodeWobbleXY,
			Z: sin * spread * nodeWobbleZ,
		})
	}

	s.Lights[0].Position.X = math.Sin(t*0.7) * spread
	s.Lights[0].Position.Y = math.Cos(t*0.5) * spread
	s.Lights[1].Position.X = math.Cos(t*0.3) * spread
	s.Lights[1].Position.Y = math.Sin(t*0.5) * spread

	// One revolution per 60/AutoRotateSpeed seconds.
	s.Camera.Azimuth = math.Mod(s.Camera.Azimuth+2*math.Pi/60*AutoRotateSpeed*dt, 2*math.Pi)
	for i := range s.Nodes {
		s.Nodes[i].Rotation = -s.Camera.Azimuth
	}
}

// Segment returns the current endpoints of edge e.
func (s *Scene) Segment(e Edge) (Vec3, Vec3) {
	return s.Nodes[e.From].Position, s.Nodes[e.To].Position
}

// Resize re-tiers the scene for a new viewport. The camera and particle
// cloud follow the new tier; node bases and the node count do not change.
func (s *Scene) Resize(v Viewport) {
	s.viewport = v
	s.spacing = SpacingFor(v.Width)
	s.Camera.Aspect = v.aspect()
	s.Camera.Distance = s.spacing.CameraDistance
	s.scatterParticles()
}

func (s *Scene) scatterParticles() {
	bound := s.spacing.ParticleSpread
	for i := range s.Particles.Positions {
		s.Particles.Positions[i] = Vec3{
			X: (s.rng.Float64() - 0.5) * bound,
			Y: (s.rng.Float64() - 0.5) * bound,
			Z: (s.rng.Float64() - 0.5) * bound,
		}
	}
}
