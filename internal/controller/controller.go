// Package controller implements an arcade drive controller: a rolling sphere
// takes the forces while a separate car mesh is re-positioned and re-oriented
// every step to look like the thing actually driving.
package controller

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"projectdrift/backend/internal/shared/config"
	"projectdrift/backend/internal/shared/types"
)

// CarController couples the sphere body and the visual mesh across two update
// cadences. The host invokes OnPhysicsStep at a fixed rate and
// OnPresentationStep at the render rate, both from the same goroutine; within
// a presentation step the order is probe, sample, orient, effects.
type CarController struct {
	body  Body
	probe *GroundProbe

	mesh       Transform
	leftWheel  Wheel
	rightWheel Wheel
	state      ControlState
	grounded   bool

	sampler ControlSampler
	drive   DriveActuator
	orient  OrientationBlender
	effects EffectsDriver
}

// New wires a controller to its collaborators. The ray query must already
// exclude the car's own body, or the probe reports a trivial self-hit.
func New(body Body, query RayQuery, tuning config.Tuning) (*CarController, error) {
	if body == nil {
		return nil, errors.New("controller: nil body")
	}
	if query == nil {
		return nil, errors.New("controller: nil ray query")
	}

	offset := mgl64.Vec3{0, tuning.SphereOffsetY, 0}
	c := &CarController{
		body:       body,
		probe:      NewGroundProbe(query, tuning.ProbeLength),
		mesh:       NewTransform(body.Position().Add(offset)),
		leftWheel:  Wheel{Offset: mgl64.Vec3{-0.6, 0.3, -1.0}},
		rightWheel: Wheel{Offset: mgl64.Vec3{0.6, 0.3, -1.0}},
		sampler:    NewControlSampler(tuning.Acceleration, mgl64.DegToRad(tuning.MaxSteerDeg)),
		drive:      NewDriveActuator(offset),
		orient:     NewOrientationBlender(tuning.TurnSpeed, tuning.TurnStopLimit, tuning.SlopeAlignRate),
		effects:    NewEffectsDriver(tuning.TiltDivisor, tuning.TiltBlendRate),
	}
	return c, nil
}

// OnPhysicsStep runs once per fixed solver tick: it snaps the mesh onto the
// sphere and hands the drive force to the body. It always reads the most
// recently committed control state, even mid-air (the deliberate coast
// behavior).
func (c *CarController) OnPhysicsStep(dt float64) {
	_ = dt // force is continuous; the solver owns integration
	c.drive.Step(c.body, &c.mesh, c.state)
}

// OnPresentationStep runs once per render tick with the measured frame delta.
func (c *CarController) OnPresentationStep(dt float64, raw types.Controls) {
	ground := c.probe.Sample(c.mesh.Position)
	c.grounded = ground.Grounded

	c.sampler.Sample(&c.state, ground, raw)
	speed := c.body.Speed()
	c.orient.Step(&c.mesh, ground, c.state.Steer, speed, dt)
	c.effects.Step(&c.leftWheel, &c.rightWheel, c.state.Steer, speed, dt)
}

// MeshTransform returns the steering/slope transform before cosmetic roll.
func (c *CarController) MeshTransform() Transform {
	return c.mesh
}

// RenderTransform returns the world transform for the car body mesh: the
// blended orientation composed with the cosmetic roll about the local
// longitudinal axis.
func (c *CarController) RenderTransform() Transform {
	roll := mgl64.QuatRotate(c.effects.Tilt(), axisForward)
	return Transform{
		Position: c.mesh.Position,
		Rotation: c.mesh.Rotation.Mul(roll).Normalize(),
	}
}

// WheelYaws returns the local yaw angles for the left and right front wheels.
func (c *CarController) WheelYaws() (left, right float64) {
	return c.leftWheel.Yaw, c.rightWheel.Yaw
}

// ControlState returns the current reduced control values.
func (c *CarController) ControlState() ControlState {
	return c.state
}

// Grounded reports the probe result from the latest presentation step.
func (c *CarController) Grounded() bool {
	return c.grounded
}

// Tilt returns the current smoothed body roll in radians.
func (c *CarController) Tilt() float64 {
	return c.effects.Tilt()
}

// View assembles the replication snapshot for renderers.
func (c *CarController) View(tick uint64) types.CarView {
	rt := c.RenderTransform()
	return types.CarView{
		Tick: tick,
		Body: types.Transform{
			Position: types.FromMgl(rt.Position),
			Rotation: types.FromMglQuat(rt.Rotation),
		},
		LeftWheelYaw:  c.leftWheel.Yaw,
		RightWheelYaw: c.rightWheel.Yaw,
		Tilt:          c.effects.Tilt(),
		Speed:         c.body.Speed(),
		Grounded:      c.grounded,
	}
}
