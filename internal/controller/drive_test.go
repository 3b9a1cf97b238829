package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStepReassertsMeshPosition(t *testing.T) {
	offset := mgl64.Vec3{0, -1, 0}
	drive := NewDriveActuator(offset)
	body := &stubBody{pos: mgl64.Vec3{4, 3, 2}}
	mesh := NewTransform(mgl64.Vec3{99, 99, 99}) // stale on purpose

	drive.Step(body, &mesh, ControlState{})

	if want := body.pos.Add(offset); mesh.Position != want {
		t.Fatalf("mesh position %v, want %v", mesh.Position, want)
	}
}

func TestForceDirectionAtZeroSteer(t *testing.T) {
	const accel = 35.0
	drive := NewDriveActuator(mgl64.Vec3{0, -1, 0})
	body := &stubBody{pos: mgl64.Vec3{0, 1, 0}}
	mesh := NewTransform(mgl64.Vec3{})

	drive.Step(body, &mesh, ControlState{Drive: accel})

	want := mesh.Forward().Mul(-accel)
	if d := body.force.Sub(want).Len(); d > 1e-12 {
		t.Fatalf("force %v, want %v", body.force, want)
	}
	if m := body.force.Len(); math.Abs(m-accel) > 1e-12 {
		t.Fatalf("force magnitude %f, want %f", m, accel)
	}
}

func TestForceFollowsMeshFacing(t *testing.T) {
	drive := NewDriveActuator(mgl64.Vec3{})
	body := &stubBody{}
	mesh := NewTransform(mgl64.Vec3{})
	mesh.Rotation = mgl64.QuatRotate(math.Pi/2, axisUp)

	drive.Step(body, &mesh, ControlState{Drive: 10})

	want := mesh.Forward().Mul(-10)
	if d := body.force.Sub(want).Len(); d > 1e-9 {
		t.Fatalf("rotated force %v, want %v", body.force, want)
	}
	if math.Abs(body.force.X()) < 9.9 {
		t.Fatalf("expected force mostly along X after quarter turn, got %v", body.force)
	}
}
