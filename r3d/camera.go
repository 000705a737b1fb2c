package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera interface {
	// world to eye space, the inverse of the camera world transform
	GetViewMatrix() mgl32.Mat4
	GetProjectionMatrix() mgl32.Mat4
}

// Lens is a perspective frustum, Fov is vertical in degrees
type Lens struct {
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

func (l Lens) GetProjectionMatrix() mgl32.Mat4 {
	aspect := l.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(l.Fov), aspect, l.Near, l.Far)
}

type OrbitController struct {
	Lens

	Target   mgl32.Vec3
	Distance float32
	Pitch    float32 // x rotation
	Yaw      float32 // y rotation
}

func NewOrbitController(target mgl32.Vec3, dist, pitch, yaw float32, lens Lens) *OrbitController {
	return &OrbitController{
		Lens:     lens,
		Target:   target,
		Distance: dist,
		Pitch:    pitch,
		Yaw:      yaw,
	}
}

func (c *OrbitController) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// GetWorldMatrix places the camera in the scene
func (c *OrbitController) GetWorldMatrix() mgl32.Mat4 {
	return c.GetViewMatrix().Inv()
}

func (c *OrbitController) Position() mgl32.Vec3 {
	return mgl32.Vec3{
		c.Distance * float32(math.Cos(float64(mgl32.DegToRad(c.Pitch)))*math.Sin(float64(mgl32.DegToRad(c.Yaw)))),
		c.Distance * float32(math.Sin(float64(mgl32.DegToRad(c.Pitch)))),
		c.Distance * float32(math.Cos(float64(mgl32.DegToRad(c.Pitch)))*math.Cos(float64(mgl32.DegToRad(c.Yaw)))),
	}.Add(c.Target)
}

type OrthographicCamera struct {
	Left, Right, Top, Bottom float32
	Near, Far                float32
	Position                 mgl32.Vec3
}

// NewCanonicalCamera looks down -z at the [-1,1] cube from z=3
func NewCanonicalCamera() *OrthographicCamera {
	return &OrthographicCamera{
		Left: -1, Right: 1, Top: 1, Bottom: -1,
		Near: 1, Far: 10,
		Position: mgl32.Vec3{0, 0, 3},
	}
}

func (c *OrthographicCamera) GetViewMatrix() mgl32.Mat4 {
	return Translation(c.Position.Mul(-1))
}

func (c *OrthographicCamera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
}
