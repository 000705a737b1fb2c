package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMatrixToEuler(t *testing.T) {
	for _, m := range []struct {
		m        mgl32.Mat4
		expected mgl32.Vec3
	}{
		{mgl32.Ident4(), mgl32.Vec3{}},
		{mgl32.HomogRotate3DX(0.5), mgl32.Vec3{0.5, 0, 0}},
		{mgl32.HomogRotate3DZ(math.Pi / 2).Mul4(mgl32.Translate3D(1, 2, 3)), mgl32.Vec3{0, 0, math.Pi / 2}},
	} {
		e := MatrixToEuler(m.m)
		assert.InDeltaSlice(t, m.expected[:], e[:], 1e-5, "expected %v got %v", m.expected, e)
	}
}

func TestDegrees(t *testing.T) {
	v := mgl32.Vec3{180, 90, -45}
	r := DegreeToRadiansV3(v)
	assert.InDelta(t, math.Pi, r[0], 1e-6)
	d := RadiansToDegreeV3(r)
	assert.InDeltaSlice(t, v[:], d[:], 1e-4)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff000080")
	assert.NoError(t, err)
	assert.Equal(t, ColorFloat{1, 0, 0, float32(0x80) / 255}, c)

	_, err = ParseHexColor("ff00")
	assert.Error(t, err)
	_, err = ParseHexColor("#gg0000")
	assert.Error(t, err)
}
