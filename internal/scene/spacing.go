package scene

import "math"

// Viewport breakpoints in CSS pixels.
const (
	MobileMaxWidth = 640
	TabletMaxWidth = 1024
)

// Spacing is the set of distances tied to one viewport tier.
type Spacing struct {
	Spread         float64
	ParticleSpread float64
	CameraDistance float64
	IconScale      float64
}

var (
	mobileSpacing  = Spacing{Spread: 10, ParticleSpread: 30, CameraDistance: 15, IconScale: 0.8}
	tabletSpacing  = Spacing{Spread: 15, ParticleSpread: 40, CameraDistance: 20, IconScale: 1}
	desktopSpacing = Spacing{Spread: 20, ParticleSpread: 50, CameraDistance: 25, IconScale: 1}
)

// SpacingFor returns the tier for a viewport width.
func SpacingFor(width float64) Spacing {
	switch {
	case width < MobileMaxWidth:
		return mobileSpacing
	case width < TabletMaxWidth:
		return tabletSpacing
	default:
		return desktopSpacing
	}
}

// SphericalPosition places item i of n on a sphere of radius spread. Items
// are spread evenly along a spiral from pole to pole. n <= 0 yields the
// origin, and the polar angle is clamped so every input gives finite output.
func SphericalPosition(spread float64, i, n int) Vec3 {
	if n <= 0 {
		return Vec3{}
	}
	c := -1 + 2*float64(i)/float64(n)
	c = math.Max(-1, math.Min(1, c))
	phi := math.Acos(c)
	theta := math.Sqrt(float64(n)*math.Pi) * phi
	sinPhi := math.Sin(phi)
	return Vec3{
		X: spread * math.Cos(theta) * sinPhi,
		Y: spread * math.Sin(theta) * sinPhi,
		Z: spread * math.Cos(phi),
	}
}
