package controller

import "projectdrift/backend/internal/shared/types"

// ControlState holds the two reduced control scalars. The values persist
// while the car is airborne: sampling is skipped rather than zeroed, so the
// last grounded inputs keep driving until touchdown.
type ControlState struct {
	Drive float64 // signed force magnitude
	Steer float64 // signed steering angle in radians
}

// ControlSampler reduces the four raw analog signals to a ControlState.
type ControlSampler struct {
	acceleration float64 // force per unit drive signal
	maxSteer     float64 // radians at full lock
}

// NewControlSampler builds a sampler with the given scaling constants.
func NewControlSampler(acceleration, maxSteerRadians float64) ControlSampler {
	return ControlSampler{acceleration: acceleration, maxSteer: maxSteerRadians}
}

// Sample recomputes state from the raw signals while grounded. Airborne, the
// state is left untouched. Signals are assumed pre-clamped to [0,1] upstream.
func (s ControlSampler) Sample(state *ControlState, ground GroundSample, raw types.Controls) {
	if !ground.Grounded {
		return
	}
	state.Drive = (raw.Accelerate - raw.Brake) * s.acceleration
	state.Steer = (raw.SteerLeft - raw.SteerRight) * s.maxSteer
}
