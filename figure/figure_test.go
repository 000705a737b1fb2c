package figure

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/figure_viewer/r3d"
)

const tol = 1e-5

func assertMat(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], tol, "expected\n%v\ngot\n%v", expected, actual)
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], tol, msgAndArgs...)
}

func assertConsistent(t *testing.T, f *Figure) {
	t.Helper()
	f.Root.Walk(func(n *r3d.Node) {
		if n == f.Root {
			assertMat(t, f.Placement.Mul4(n.Local), n.World)
		} else {
			assertMat(t, n.Parent.World.Mul4(n.Local), n.World)
		}
	})
}

func TestBuildTopology(t *testing.T) {
	f := BuildDefault()

	assert.Equal(t, "torso", f.Root.Name)
	require.Len(t, f.Root.Childs, 5)

	names := make([]string, 0)
	for _, j := range f.Root.Childs {
		assert.True(t, j.IsJoint())
		require.Len(t, j.Childs, 1)
		assert.False(t, j.Childs[0].IsJoint())
		names = append(names, j.Childs[0].Name)
	}
	assert.Equal(t, []string{"head", "arm_l", "arm_r", "leg_l", "leg_r"}, names)

	for _, leg := range []string{"leg_l", "leg_r"} {
		p := f.Part(leg)
		require.Len(t, p.Childs, 1)
		assert.Equal(t, JointName("foot"+leg[3:]), p.Childs[0].Name)
	}

	assert.Len(t, f.Parts(), 8)
	for _, p := range f.Parts() {
		assert.Equal(t, r3d.MaterialDefault, p.Material)
	}
	assert.False(t, f.Axes.Visible)
	assertConsistent(t, f)
}

func TestBuildIsDeterministic(t *testing.T) {
	a, b := BuildDefault(), BuildDefault()
	assert.Equal(t, a.StringTree(), b.StringTree())
}

func TestHeadRestPose(t *testing.T) {
	f := BuildDefault()
	torso := f.Root.World

	assertMat(t, torso.Mul4(mgl32.Translate3D(0, 1, 0)), f.Part(JointName("head")).World)
	assertMat(t, torso.Mul4(mgl32.Translate3D(0, 1, 0)).Mul4(mgl32.Translate3D(0, 0.4, 0)), f.Part("head").World)
}

func TestRotateLeftArmJoint(t *testing.T) {
	f := BuildDefault()
	joint := f.Part(JointName("arm_l"))
	arm := f.Part("arm_l")

	// far end of the arm box in part space
	end := mgl32.Vec3{0.425, 0, 0}
	assertVec(t, mgl32.Vec3{1.525, 0.5, 0}, r3d.ApplyPoint(arm.World, end))

	joint.SetLocalTransform(joint.Local.Mul4(r3d.Rotation(r3d.AxisZ, math.Pi/2)))
	f.Propagate(joint)

	got := r3d.ApplyPoint(arm.World, end)
	assertVec(t, mgl32.Vec3{0.675, 1.35, 0}, got, "got %v", got)
	assertConsistent(t, f)
}

func TestPlacement(t *testing.T) {
	f := BuildDefault()
	f.SetPlacement(PlacementFrom(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, math.Pi, 0}))
	assertConsistent(t, f)

	// arm origin (1.1, 0.5, 0) turned half around y, then moved by +1 x
	arm := r3d.ApplyPoint(f.Part("arm_l").World, mgl32.Vec3{})
	assertVec(t, mgl32.Vec3{-0.1, 0.5, 0}, arm, "got %v", arm)
}

func TestResetPose(t *testing.T) {
	f := BuildDefault()
	rest := make(map[string]mgl32.Mat4)
	f.Root.Walk(func(n *r3d.Node) { rest[n.Name] = n.World })

	for _, name := range []string{"arm_l_joint", "foot_r_joint", "torso"} {
		n := f.Part(name)
		n.SetLocalTransform(n.Local.Mul4(r3d.Rotation(r3d.AxisX, 0.7)))
		f.Propagate(n)
	}

	f.ResetPose()
	once := make(map[string]mgl32.Mat4)
	f.Root.Walk(func(n *r3d.Node) {
		assertMat(t, rest[n.Name], n.World)
		once[n.Name] = n.World
	})

	f.ResetPose()
	f.Root.Walk(func(n *r3d.Node) {
		assert.Equal(t, once[n.Name], n.World)
	})
}

func TestBuildErrors(t *testing.T) {
	for _, tt := range []struct {
		name   string
		layout string
		err    string
	}{
		{"unknown parent", `
parts:
  - {name: a, shape: box, size: [1, 1, 1]}
  - {name: b, parent: c, shape: box, size: [1, 1, 1]}
`, "unknown parent"},
		{"duplicate", `
parts:
  - {name: a, shape: box, size: [1, 1, 1]}
  - {name: a, parent: a, shape: box, size: [1, 1, 1]}
`, "Duplicate"},
		{"shape", `
parts:
  - {name: a, shape: cone, size: [1, 1, 1]}
`, "unknown shape"},
		{"two roots", `
parts:
  - {name: a, shape: box, size: [1, 1, 1]}
  - {name: b, shape: box, size: [1, 1, 1]}
`, "second root"},
		{"empty", `parts: []`, "no root"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayout([]byte(tt.layout))
			require.NoError(t, err)
			_, err = Build(l)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestParseLayoutError(t *testing.T) {
	_, err := ParseLayout([]byte("parts: {"))
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	f := BuildDefault()
	joint := f.Part(JointName("leg_l"))
	joint.SetLocalTransform(joint.Local.Mul4(r3d.Rotation(r3d.AxisX, 0.3)))
	f.Propagate(joint)
	f.Part("head").Material = r3d.MaterialSelected

	c := f.Clone()
	assert.Equal(t, f.StringTree(), c.StringTree())
	assert.Len(t, c.Parts(), len(f.Parts()))
	assert.NotSame(t, f.Parts()[0], c.Parts()[0])
	assertMat(t, f.Part("foot_l").World, c.Part("foot_l").World)

	c.Part("foot_l").Geometry.Vertices[0] = mgl32.Vec3{}
	assert.NotEqual(t, mgl32.Vec3{}, f.Part("foot_l").Geometry.Vertices[0])
}

func TestStringTree(t *testing.T) {
	s := BuildDefault().StringTree()
	assert.True(t, strings.HasPrefix(s, "Torso (torso)"))
	assert.Contains(t, s, "Left Foot (foot_l)")
	assert.Contains(t, s, "  + head_joint")
}

func TestExportGLTF(t *testing.T) {
	f := BuildDefault()
	f.Part("arm_r").Material = r3d.MaterialSelected

	doc, err := f.ExportGLTFDefault(DefaultPalette)
	require.NoError(t, err)

	// 8 parts + 7 joints
	assert.Len(t, doc.Nodes, 15)
	assert.Len(t, doc.Meshes, 8)
	assert.Len(t, doc.Materials, 2)
	require.Len(t, doc.Scenes[0].Nodes, 1)

	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	assert.Equal(t, "torso", root.Name)
	assert.Len(t, root.Children, 5)

	for _, n := range doc.Nodes {
		if n.Name == "arm_r" {
			require.NotNil(t, n.Mesh)
			assert.Equal(t, uint32(1), *doc.Meshes[*n.Mesh].Primitives[0].Material)
		}
		if n.Name == "arm_r_joint" {
			assert.Nil(t, n.Mesh)
			assert.Equal(t, [16]float32(f.Part("arm_r_joint").Local), n.Matrix)
		}
	}
}

func TestExportObj(t *testing.T) {
	f := BuildDefault()
	var buf bytes.Buffer
	require.NoError(t, f.ExportObj(&buf))

	var objects, vertices, faces int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "o "):
			objects++
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}

	sphere := r3d.NewSphere(1)
	assert.Equal(t, 8, objects)
	assert.Equal(t, 7*8+len(sphere.Vertices), vertices)
	assert.Equal(t, 7*12+sphere.Triangles(), faces)
}

func TestPaletteColor(t *testing.T) {
	assert.InDelta(t, 253.0/255, DefaultPalette.Color(r3d.MaterialDefault)[0], tol)
	assert.InDelta(t, 175.0/255, DefaultPalette.Color(r3d.MaterialSelected)[0], tol)
}
