package world

import "github.com/go-gl/mathgl/mgl64"

// SphereBody is the rolling sphere the solver integrates. Shape is always a
// sphere; damping, gravity and restitution live on the world, not the body.
type SphereBody struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
	force    mgl64.Vec3 // continuous force accumulated for the current step
	radius   float64
	mass     float64
	grounded bool
}

// NewSphereBody creates a body at rest at the given position.
func NewSphereBody(position mgl64.Vec3, radius, mass float64) *SphereBody {
	if radius <= 0 {
		radius = 1
	}
	if mass <= 0 {
		mass = 1
	}
	return &SphereBody{position: position, radius: radius, mass: mass}
}

// Position returns the body's world-space center.
func (b *SphereBody) Position() mgl64.Vec3 {
	return b.position
}

// Velocity returns the body's linear velocity.
func (b *SphereBody) Velocity() mgl64.Vec3 {
	return b.velocity
}

// Speed returns the linear velocity magnitude.
func (b *SphereBody) Speed() float64 {
	return b.velocity.Len()
}

// Radius returns the sphere radius.
func (b *SphereBody) Radius() float64 {
	return b.radius
}

// ApplyForce accumulates a continuous force consumed by the next Step.
// Not an impulse: the solver integrates it against damping and gravity.
func (b *SphereBody) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// InContact reports whether the last solver step resolved ground contact.
func (b *SphereBody) InContact() bool {
	return b.grounded
}

// SetVelocity overrides the body velocity, mainly for tests and spawning.
func (b *SphereBody) SetVelocity(v mgl64.Vec3) {
	b.velocity = v
}
