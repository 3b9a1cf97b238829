package controller

import "github.com/go-gl/mathgl/mgl64"

// Wheel is a child transform whose local yaw mirrors the steering input.
type Wheel struct {
	Offset mgl64.Vec3 // local attachment point on the body mesh
	Yaw    float64    // local yaw in radians, set directly each step
}

// EffectsDriver derives the cosmetic wheel yaw and body lean from the same
// steering and speed quantities. Nothing here feeds back into physics.
type EffectsDriver struct {
	tiltDivisor float64
	blendRate   float64
	tilt        float64 // current smoothed roll, radians
}

// NewEffectsDriver builds the driver with its tuning constants.
func NewEffectsDriver(tiltDivisor, blendRate float64) EffectsDriver {
	if tiltDivisor == 0 {
		tiltDivisor = 1
	}
	return EffectsDriver{tiltDivisor: tiltDivisor, blendRate: blendRate}
}

// Step sets both front wheel yaws to the steering angle with no smoothing,
// and eases the body tilt toward -steer*speed/tiltDivisor. The tilt target is
// deliberately unclamped; plausible speed and steer ranges bound it in
// practice.
func (e *EffectsDriver) Step(left, right *Wheel, steer, speed, dt float64) {
	left.Yaw = steer
	right.Yaw = steer

	target := -steer * speed / e.tiltDivisor
	e.tilt += (target - e.tilt) * mgl64.Clamp(e.blendRate*dt, 0, 1)
}

// Tilt returns the current smoothed body roll in radians.
func (e *EffectsDriver) Tilt() float64 {
	return e.tilt
}
