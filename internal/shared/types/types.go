package types

import "github.com/go-gl/mathgl/mgl64"

// Vec3 represents a position or vector in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromMgl converts a math vector to its wire form.
func FromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Mgl converts the wire vector to its math form.
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Quat is a unit quaternion orientation on the wire.
type Quat struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromMglQuat converts a math quaternion to its wire form.
func FromMglQuat(q mgl64.Quat) Quat {
	return Quat{W: q.W, X: q.V.X(), Y: q.V.Y(), Z: q.V.Z()}
}

// Transform is a rigid world-space transform for rendering.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Quat `json:"rotation"`
}

// Controls carries the four normalized analog driving signals, each in [0,1].
// Clamping to range is the input layer's job, not the simulation's.
type Controls struct {
	Accelerate float64 `json:"accelerate"`
	Brake      float64 `json:"brake"`
	SteerLeft  float64 `json:"steer_left"`
	SteerRight float64 `json:"steer_right"`
	Sequence   uint64  `json:"sequence"`
	ClientMS   int64   `json:"client_ms"`
}

// CarView is the per-frame presentation state replicated to renderers.
type CarView struct {
	Tick          uint64    `json:"tick"`
	Body          Transform `json:"body"`
	LeftWheelYaw  float64   `json:"left_wheel_yaw"`
	RightWheelYaw float64   `json:"right_wheel_yaw"`
	Tilt          float64   `json:"tilt"`
	Speed         float64   `json:"speed"`
	Grounded      bool      `json:"grounded"`
}

// ClientEnvelope is sent from client to server.
type ClientEnvelope struct {
	Type     string    `json:"type"` // hello|controls|ping
	Controls *Controls `json:"controls,omitempty"`
}

// ServerEnvelope is sent from server to client.
type ServerEnvelope struct {
	Type     string   `json:"type"` // welcome|view|pong|error
	Tick     uint64   `json:"tick,omitempty"`
	View     *CarView `json:"view,omitempty"`
	ServerMS int64    `json:"server_ms,omitempty"`
	Message  string   `json:"message,omitempty"`
}
