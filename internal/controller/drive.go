package controller

import "github.com/go-gl/mathgl/mgl64"

// Body is the read/force surface of the sphere rigid body owned by the
// external dynamics solver.
type Body interface {
	Position() mgl64.Vec3
	Speed() float64
	ApplyForce(f mgl64.Vec3)
}

// DriveActuator pushes the sphere along the mesh's facing direction each
// fixed physics step.
type DriveActuator struct {
	offset mgl64.Vec3 // mesh position relative to the sphere center
}

// NewDriveActuator builds an actuator with the mesh offset.
func NewDriveActuator(offset mgl64.Vec3) DriveActuator {
	return DriveActuator{offset: offset}
}

// Step re-asserts the mesh position from the body, then applies the drive
// force. Position comes first so the force direction reads the most current
// facing. The force is continuous; the solver integrates it against damping
// and gravity.
func (d DriveActuator) Step(body Body, mesh *Transform, state ControlState) {
	mesh.Position = body.Position().Add(d.offset)
	body.ApplyForce(mesh.Forward().Mul(-state.Drive))
}
