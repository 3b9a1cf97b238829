package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Params are the solver environment constants.
type Params struct {
	Gravity       mgl64.Vec3
	LinearDamping float64
}

// World owns the terrain and every sphere body it integrates. It is the
// dynamics collaborator the drive controller consumes as a black box.
type World struct {
	terrain Terrain
	bodies  []*SphereBody
	params  Params
}

// New creates a world over the given terrain.
func New(terrain Terrain, params Params) *World {
	if terrain == nil {
		terrain = FlatTerrain{}
	}
	return &World{terrain: terrain, params: params}
}

// AddBody registers a body for integration.
func (w *World) AddBody(b *SphereBody) {
	w.bodies = append(w.bodies, b)
}

// Terrain returns the ground surface the world integrates against.
func (w *World) Terrain() Terrain {
	return w.terrain
}

// Step advances every body by dt seconds using semi-implicit Euler, then
// resolves ground contact. Accumulated forces are consumed here.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		accel := w.params.Gravity.Add(b.force.Mul(1 / b.mass))
		b.velocity = b.velocity.Add(accel.Mul(dt))
		b.velocity = b.velocity.Mul(1 / (1 + w.params.LinearDamping*dt))
		b.position = b.position.Add(b.velocity.Mul(dt))
		b.force = mgl64.Vec3{}
		w.resolveGround(b)
	}
}

// resolveGround clamps a body onto the terrain surface and removes the
// velocity component pushing into it. Restitution is zero: the arcade feel
// wants the sphere to stick, not bounce.
func (w *World) resolveGround(b *SphereBody) {
	ground := w.terrain.HeightAt(b.position.X(), b.position.Z())
	penetration := ground + b.radius - b.position.Y()
	if penetration < 0 {
		b.grounded = false
		return
	}

	normal := w.terrain.NormalAt(b.position.X(), b.position.Z())
	b.position = mgl64.Vec3{b.position.X(), ground + b.radius, b.position.Z()}
	into := b.velocity.Dot(normal)
	if into < 0 {
		b.velocity = b.velocity.Sub(normal.Mul(into))
	}
	b.grounded = true
}

// DownQuery returns a downward ray capability with the given bodies excluded
// from the hit set. Exclusion is fixed once at setup, not per call.
func (w *World) DownQuery(exclude ...*SphereBody) *DownCaster {
	excluded := make(map[*SphereBody]struct{}, len(exclude))
	for _, b := range exclude {
		excluded[b] = struct{}{}
	}
	return &DownCaster{world: w, excluded: excluded}
}

// DownCaster casts rays straight down against bodies and terrain.
type DownCaster struct {
	world    *World
	excluded map[*SphereBody]struct{}
}

// CastDown reports whether anything lies within length below origin and, if
// so, the surface normal at the nearest hit. A miss is a normal outcome.
func (c *DownCaster) CastDown(origin mgl64.Vec3, length float64) (bool, mgl64.Vec3) {
	best := length
	hit := false
	var normal mgl64.Vec3

	for _, b := range c.world.bodies {
		if _, skip := c.excluded[b]; skip {
			continue
		}
		if t, n, ok := rayDownSphere(origin, b.position, b.radius); ok && t <= best {
			best = t
			normal = n
			hit = true
		}
	}

	ground := c.world.terrain.HeightAt(origin.X(), origin.Z())
	if t := origin.Y() - ground; t >= 0 && t <= best {
		normal = c.world.terrain.NormalAt(origin.X(), origin.Z())
		hit = true
	}

	return hit, normal
}

// rayDownSphere intersects a straight-down ray with a sphere, returning the
// entry distance and surface normal at the hit point.
func rayDownSphere(origin, center mgl64.Vec3, radius float64) (float64, mgl64.Vec3, bool) {
	dx := origin.X() - center.X()
	dz := origin.Z() - center.Z()
	horizSq := dx*dx + dz*dz
	if horizSq > radius*radius {
		return 0, mgl64.Vec3{}, false
	}
	dy := origin.Y() - center.Y()
	t := dy - math.Sqrt(radius*radius-horizSq)
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	point := origin.Sub(mgl64.Vec3{0, t, 0})
	return t, point.Sub(center).Mul(1 / radius), true
}
