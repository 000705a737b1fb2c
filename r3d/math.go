package r3d

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisX, errors.Errorf("Unknown axis %q", s)
}

// Translation returns the homogeneous translation by v.
func Translation(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4FromRows(
		mgl32.Vec4{1, 0, 0, v[0]},
		mgl32.Vec4{0, 1, 0, v[1]},
		mgl32.Vec4{0, 0, 1, v[2]},
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// Rotation returns a right-handed rotation about axis, angle in radians.
func Rotation(axis Axis, angle float32) mgl32.Mat4 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	switch axis {
	case AxisX:
		return mgl32.Mat4FromRows(
			mgl32.Vec4{1, 0, 0, 0},
			mgl32.Vec4{0, c, -s, 0},
			mgl32.Vec4{0, s, c, 0},
			mgl32.Vec4{0, 0, 0, 1},
		)
	case AxisY:
		return mgl32.Mat4FromRows(
			mgl32.Vec4{c, 0, s, 0},
			mgl32.Vec4{0, 1, 0, 0},
			mgl32.Vec4{-s, 0, c, 0},
			mgl32.Vec4{0, 0, 0, 1},
		)
	default:
		return mgl32.Mat4FromRows(
			mgl32.Vec4{c, -s, 0, 0},
			mgl32.Vec4{s, c, 0, 0},
			mgl32.Vec4{0, 0, 1, 0},
			mgl32.Vec4{0, 0, 0, 1},
		)
	}
}

// Mul composes a and b, so that b is applied first.
func Mul(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

func Apply(m mgl32.Mat4, v mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

func ApplyPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return Apply(m, p.Vec4(1)).Vec3()
}

// ApplyVector ignores the translation part of m
func ApplyVector(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return Apply(m, v.Vec4(0)).Vec3()
}

// EulerXYZ composes rotations in three.js default order: Rx * Ry * Rz
func EulerXYZ(e mgl32.Vec3) mgl32.Mat4 {
	return Rotation(AxisX, e[0]).Mul4(Rotation(AxisY, e[1])).Mul4(Rotation(AxisZ, e[2]))
}
