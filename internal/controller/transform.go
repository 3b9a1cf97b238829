package controller

import "github.com/go-gl/mathgl/mgl64"

// Local axis convention: right-handed, Y up. The mesh's front faces its
// negative Z axis, so the drive force is applied along -Forward.
var (
	axisRight   = mgl64.Vec3{1, 0, 0}
	axisUp      = mgl64.Vec3{0, 1, 0}
	axisForward = mgl64.Vec3{0, 0, 1}
)

// Transform is a rigid transform: world position plus unit-quaternion
// orientation. The orientation is re-normalized after every blend so the
// derived basis stays orthonormal despite accumulated floating error.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform returns an identity-oriented transform at position.
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{Position: position, Rotation: mgl64.QuatIdent()}
}

// Right returns the basis X axis in world space.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(axisRight)
}

// Up returns the basis Y axis in world space.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(axisUp)
}

// Forward returns the basis Z axis in world space.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(axisForward)
}

// quatFromBasis builds an orientation from three orthonormal world axes.
func quatFromBasis(right, up, forward mgl64.Vec3) mgl64.Quat {
	m := mgl64.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		forward.X(), forward.Y(), forward.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}
