// Package scene builds and animates the landing page background: icon nodes
// on a sphere joined by a chain of edges, a drifting particle cloud, two
// orbiting point lights, and a slowly auto-rotating camera.
//
// The package is pure computation. Hosts supply a FrameScheduler, a
// ResizeSource, and a SurfaceFactory to a Loop, which drives Scene.Update and
// hands each projected Frame to the Surface.
package scene
