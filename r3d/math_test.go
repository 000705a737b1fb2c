package r3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

// mgl32 ApproxEqual is relative and fails on float noise around zero
func assertMat(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], tol, "expected\n%v\ngot\n%v", expected, actual)
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], tol, "expected %v got %v", expected, actual)
}

func matNear(a, b mgl32.Mat4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}

func TestTranslation(t *testing.T) {
	m := Translation(mgl32.Vec3{1, 2, 3})
	assertMat(t, mgl32.Translate3D(1, 2, 3), m)
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, m.Row(3))

	assertVec(t, mgl32.Vec3{2, 3, 4}, ApplyPoint(m, mgl32.Vec3{1, 1, 1}))
	assertVec(t, mgl32.Vec3{1, 1, 1}, ApplyVector(m, mgl32.Vec3{1, 1, 1}))
}

func TestRotationMatchesRightHanded(t *testing.T) {
	for _, angle := range []float32{0, 0.3, math.Pi / 2, -1.2, math.Pi} {
		assertMat(t, mgl32.HomogRotate3DX(angle), Rotation(AxisX, angle))
		assertMat(t, mgl32.HomogRotate3DY(angle), Rotation(AxisY, angle))
		assertMat(t, mgl32.HomogRotate3DZ(angle), Rotation(AxisZ, angle))
	}

	// x goes to y around z
	assertVec(t, mgl32.Vec3{0, 1, 0}, ApplyPoint(Rotation(AxisZ, math.Pi/2), mgl32.Vec3{1, 0, 0}))
	// y goes to z around x
	assertVec(t, mgl32.Vec3{0, 0, 1}, ApplyPoint(Rotation(AxisX, math.Pi/2), mgl32.Vec3{0, 1, 0}))
	// z goes to x around y
	assertVec(t, mgl32.Vec3{1, 0, 0}, ApplyPoint(Rotation(AxisY, math.Pi/2), mgl32.Vec3{0, 0, 1}))
}

func TestRotationComposition(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		a, b := float32(0.35), float32(-1.1)
		assertMat(t, Rotation(axis, a+b), Mul(Rotation(axis, a), Rotation(axis, b)))
	}
}

func TestMulOrder(t *testing.T) {
	// rotate first, then translate
	m := Mul(Translation(mgl32.Vec3{1, 0, 0}), Rotation(AxisZ, math.Pi/2))
	assertVec(t, mgl32.Vec3{1, 1, 0}, ApplyPoint(m, mgl32.Vec3{1, 0, 0}))
}

func TestApplyHomogeneous(t *testing.T) {
	m := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 10)
	v := mgl32.Vec4{0.5, -0.25, -3, 1}
	expected, got := m.Mul4x1(v), Apply(m, v)
	assert.InDeltaSlice(t, expected[:], got[:], tol)
}

func TestParseAxis(t *testing.T) {
	for _, tt := range []struct {
		in  string
		out Axis
	}{
		{"x", AxisX}, {"Y", AxisY}, {"z", AxisZ},
	} {
		a, err := ParseAxis(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.out, a)
		assert.Equal(t, tt.out, mustParse(t, a.String()))
	}

	_, err := ParseAxis("w")
	assert.Error(t, err)
}

func mustParse(t *testing.T, s string) Axis {
	a, err := ParseAxis(s)
	assert.NoError(t, err)
	return a
}

func TestEulerXYZ(t *testing.T) {
	e := mgl32.Vec3{0.1, 0.2, 0.3}
	expected := mgl32.HomogRotate3DX(0.1).Mul4(mgl32.HomogRotate3DY(0.2)).Mul4(mgl32.HomogRotate3DZ(0.3))
	assertMat(t, expected, EulerXYZ(e))
}
