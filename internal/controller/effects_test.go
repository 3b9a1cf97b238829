package controller

import (
	"math"
	"testing"
)

func TestWheelYawIsInstant(t *testing.T) {
	effects := NewEffectsDriver(35, 10)
	var left, right Wheel

	effects.Step(&left, &right, 0.3, 5, 1.0/60.0)
	if left.Yaw != 0.3 || right.Yaw != 0.3 {
		t.Fatalf("wheel yaws = %f/%f, want 0.3 with zero lag", left.Yaw, right.Yaw)
	}

	// A changed steer value lands on the very same step, no smoothing.
	effects.Step(&left, &right, -0.15, 5, 1.0/60.0)
	if left.Yaw != -0.15 || right.Yaw != -0.15 {
		t.Fatalf("wheel yaws = %f/%f after change, want -0.15", left.Yaw, right.Yaw)
	}
}

func TestTiltConvergesMonotonically(t *testing.T) {
	const (
		steer = 0.3
		speed = 20.0
		div   = 35.0
	)
	effects := NewEffectsDriver(div, 10)
	var left, right Wheel
	target := -steer * speed / div

	prev := effects.Tilt()
	for i := 0; i < 400; i++ {
		effects.Step(&left, &right, steer, speed, 1.0/60.0)
		cur := effects.Tilt()

		// Exponential approach: each step lands strictly between the previous
		// value and the target, never overshooting.
		if math.Abs(cur-target) > math.Abs(prev-target) {
			t.Fatalf("step %d: tilt diverged, |%g-%g| grew", i, cur, target)
		}
		if (prev-target)*(cur-target) < 0 {
			t.Fatalf("step %d: tilt overshot target, %g -> %g (target %g)", i, prev, cur, target)
		}
		prev = cur
	}
	if math.Abs(prev-target) > 1e-9 {
		t.Fatalf("tilt failed to converge: %g, target %g", prev, target)
	}
}

func TestTiltSignOpposesSteer(t *testing.T) {
	effects := NewEffectsDriver(35, 10)
	var left, right Wheel

	for _i := 0; _i < 60; _i++ {
		effects.Step(&left, &right, 0.3, 10, 1.0/60.0)
	}
	if effects.Tilt() >= 0 {
		t.Fatalf("expected negative tilt for positive steer, got %g", effects.Tilt())
	}
}

func TestTiltIsUnclamped(t *testing.T) {
	effects := NewEffectsDriver(1, 10)
	var left, right Wheel

	// Implausibly large steer*speed still flows straight into the target.
	for _i := 0; _i < 600; _i++ {
		effects.Step(&left, &right, 2, 100, 1.0/60.0)
	}
	if effects.Tilt() > -199 {
		t.Fatalf("expected tilt to approach -200 unclamped, got %g", effects.Tilt())
	}
}
