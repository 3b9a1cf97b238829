package controller

import "github.com/go-gl/mathgl/mgl64"

const degenerateAxisEps = 1e-9

// OrientationBlender rotates the mesh toward the steering target and then
// toward a ground-normal-aligned basis, once per presentation step. Both
// blends are rate-based exponential approaches: larger dt or rate consumes
// more of the target per step.
type OrientationBlender struct {
	turnSpeed     float64
	turnStopLimit float64
	alignRate     float64
}

// NewOrientationBlender builds a blender with the given rates and gate.
func NewOrientationBlender(turnSpeed, turnStopLimit, alignRate float64) OrientationBlender {
	return OrientationBlender{
		turnSpeed:     turnSpeed,
		turnStopLimit: turnStopLimit,
		alignRate:     alignRate,
	}
}

// Step updates the mesh orientation. Airborne, nothing happens and the
// orientation stays exactly as last computed while grounded. At or below the
// turn-stop limit the steering rotation is skipped so the car cannot spin in
// place, but slope alignment still runs.
func (b OrientationBlender) Step(mesh *Transform, ground GroundSample, steer, speed, dt float64) {
	if !ground.Grounded {
		return
	}

	if speed > b.turnStopLimit {
		target := mesh.Rotation.Mul(mgl64.QuatRotate(steer, axisUp))
		amount := mgl64.Clamp(b.turnSpeed*dt, 0, 1)
		mesh.Rotation = mgl64.QuatSlerp(mesh.Rotation, target, amount).Normalize()
	}

	aligned, ok := alignToNormal(mesh.Rotation, ground.Normal)
	if !ok {
		return
	}
	amount := mgl64.Clamp(b.alignRate*dt, 0, 1)
	mesh.Rotation = mgl64.QuatNlerp(mesh.Rotation, aligned, amount).Normalize()
}

// alignToNormal rebuilds the basis so its up axis matches the surface normal,
// preserving heading. Right-handed Y-up convention: side = normal x forward,
// then forward is recomputed so the frame is orthonormal by construction.
func alignToNormal(q mgl64.Quat, normal mgl64.Vec3) (mgl64.Quat, bool) {
	if normal.Len() < degenerateAxisEps {
		return q, false
	}
	up := normal.Normalize()
	forward := q.Rotate(axisForward)
	right := up.Cross(forward)
	if right.Len() < degenerateAxisEps {
		// Normal parallel to facing; no stable heading to preserve.
		return q, false
	}
	right = right.Normalize()
	forward = right.Cross(up)
	return quatFromBasis(right, up, forward), true
}
