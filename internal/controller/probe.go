package controller

import "github.com/go-gl/mathgl/mgl64"

// RayQuery is the downward collision probe capability supplied by the physics
// host. Implementations must already exclude the car's own body from the hit
// set; that exclusion is one-time setup, not a per-call argument.
type RayQuery interface {
	CastDown(origin mgl64.Vec3, length float64) (hit bool, normal mgl64.Vec3)
}

// GroundSample is the per-step probe result. It is recomputed every
// presentation step and never persisted.
type GroundSample struct {
	Grounded bool
	Normal   mgl64.Vec3
}

// GroundProbe casts a fixed-length ray straight down from the mesh origin.
type GroundProbe struct {
	query  RayQuery
	length float64
}

// NewGroundProbe binds the probe to a ray capability and ray length.
func NewGroundProbe(query RayQuery, length float64) *GroundProbe {
	return &GroundProbe{query: query, length: length}
}

// Sample queries the ground below origin. A miss means airborne, not failure.
func (p *GroundProbe) Sample(origin mgl64.Vec3) GroundSample {
	hit, normal := p.query.CastDown(origin, p.length)
	return GroundSample{Grounded: hit, Normal: normal}
}
