package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"projectdrift/backend/internal/shared/config"
	"projectdrift/backend/internal/shared/types"
	"projectdrift/backend/internal/world"
)

// stubBody records applied forces and reports canned position/speed.
type stubBody struct {
	pos   mgl64.Vec3
	speed float64
	force mgl64.Vec3
}

func (b *stubBody) Position() mgl64.Vec3 { return b.pos }
func (b *stubBody) Speed() float64       { return b.speed }
func (b *stubBody) ApplyForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// stubQuery reports a fixed probe result.
type stubQuery struct {
	hit    bool
	normal mgl64.Vec3
}

func (q stubQuery) CastDown(_ mgl64.Vec3, _ float64) (bool, mgl64.Vec3) {
	return q.hit, q.normal
}

func testTuning() config.Tuning {
	return config.Tuning{
		SphereOffsetY:  -1.0,
		Acceleration:   35.0,
		MaxSteerDeg:    21.0,
		TurnSpeed:      25.0,
		TurnStopLimit:  0.75,
		TiltDivisor:    35.0,
		SlopeAlignRate: 10.0,
		TiltBlendRate:  10.0,
		ProbeLength:    1.5,
	}
}

func TestNewRejectsMissingDependencies(t *testing.T) {
	if _, err := New(nil, stubQuery{}, testTuning()); err == nil {
		t.Fatal("expected error for nil body")
	}
	if _, err := New(&stubBody{}, nil, testTuning()); err == nil {
		t.Fatal("expected error for nil ray query")
	}
}

func TestPositionCouplingEveryPhysicsStep(t *testing.T) {
	body := &stubBody{pos: mgl64.Vec3{3, 2, -7}}
	c, err := New(body, stubQuery{hit: true, normal: mgl64.Vec3{0, 1, 0}}, testTuning())
	if err != nil {
		t.Fatalf("controller setup failed: %v", err)
	}

	for i := 0; i < 50; i++ {
		body.pos = mgl64.Vec3{float64(i), 2 + float64(i)*0.1, -float64(i)}
		c.OnPhysicsStep(1.0 / 120.0)
		want := body.pos.Add(mgl64.Vec3{0, -1, 0})
		if got := c.MeshTransform().Position; got != want {
			t.Fatalf("step %d: mesh position %v, want body+offset %v", i, got, want)
		}
	}
}

func TestDriveIntegrationOnFlatTerrain(t *testing.T) {
	sim := world.New(world.FlatTerrain{}, world.Params{
		Gravity:       mgl64.Vec3{0, -40, 0},
		LinearDamping: 1.5,
	})
	body := world.NewSphereBody(mgl64.Vec3{0, 1, 0}, 1, 1)
	sim.AddBody(body)

	c, err := New(body, sim.DownQuery(body), testTuning())
	if err != nil {
		t.Fatalf("controller setup failed: %v", err)
	}

	full := types.Controls{Accelerate: 1}
	dt := 1.0 / 120.0
	for i := 0; i < 240; i++ {
		if i%2 == 0 {
			c.OnPresentationStep(1.0/60.0, full)
		}
		c.OnPhysicsStep(dt)
		sim.Step(dt)
	}

	if !c.Grounded() {
		t.Fatal("expected car grounded on flat terrain")
	}
	v := body.Velocity()
	if v.Z() >= 0 {
		t.Fatalf("expected travel along -Z under full accelerate, velocity=%v", v)
	}
	if body.Speed() < 1 {
		t.Fatalf("expected meaningful speed after 2s of drive, got %f", body.Speed())
	}
}

func TestRenderTransformComposesRoll(t *testing.T) {
	body := &stubBody{pos: mgl64.Vec3{0, 1, 0}, speed: 10}
	c, err := New(body, stubQuery{hit: true, normal: mgl64.Vec3{0, 1, 0}}, testTuning())
	if err != nil {
		t.Fatalf("controller setup failed: %v", err)
	}

	steerHeld := types.Controls{SteerLeft: 1}
	for _i := 0; _i < 120; _i++ {
		c.OnPresentationStep(1.0/60.0, steerHeld)
	}

	if c.Tilt() == 0 {
		t.Fatal("expected nonzero tilt while steering at speed")
	}
	mesh := c.MeshTransform()
	render := c.RenderTransform()
	if render.Rotation == mesh.Rotation {
		t.Fatal("expected render rotation to differ from mesh rotation by roll")
	}
	// The roll is about the local forward axis, so facing must be unchanged.
	if d := render.Forward().Sub(mesh.Forward()).Len(); d > 1e-9 {
		t.Fatalf("roll changed facing direction by %g", d)
	}
}

func TestViewSnapshotMirrorsControllerState(t *testing.T) {
	body := &stubBody{pos: mgl64.Vec3{0, 1, 0}, speed: 4}
	c, err := New(body, stubQuery{hit: true, normal: mgl64.Vec3{0, 1, 0}}, testTuning())
	if err != nil {
		t.Fatalf("controller setup failed: %v", err)
	}
	c.OnPresentationStep(1.0/60.0, types.Controls{SteerLeft: 0.5})

	view := c.View(7)
	if view.Tick != 7 {
		t.Fatalf("tick = %d, want 7", view.Tick)
	}
	left, right := c.WheelYaws()
	if view.LeftWheelYaw != left || view.RightWheelYaw != right {
		t.Fatal("view wheel yaws do not match controller")
	}
	if !view.Grounded || view.Speed != 4 {
		t.Fatalf("view grounded=%v speed=%f, want grounded speed=4", view.Grounded, view.Speed)
	}
	if math.Abs(view.Tilt-c.Tilt()) > 0 {
		t.Fatal("view tilt does not match controller")
	}
}
