package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/figure_viewer/config"
	"github.com/mogaika/figure_viewer/figure"
	"github.com/mogaika/figure_viewer/projection"
	"github.com/mogaika/figure_viewer/r3d"
	"github.com/mogaika/figure_viewer/utils"
)

type NodeSnapshot struct {
	Name     string     `json:"name"`
	Title    string     `json:"title,omitempty"`
	Joint    bool       `json:"joint"`
	Material string     `json:"material,omitempty"`
	Local    mgl32.Mat4 `json:"local"`
	World    mgl32.Mat4 `json:"world"`
	Position mgl32.Vec3 `json:"position"`
	// degrees, from Local
	Rotation mgl32.Vec3      `json:"rotation"`
	Vertices []mgl32.Vec3    `json:"vertices,omitempty"`
	Indices  []uint32        `json:"indices,omitempty"`
	Childs   []*NodeSnapshot `json:"childs,omitempty"`
}

type AxesSnapshot struct {
	Node   string        `json:"node"`
	Origin mgl32.Vec3    `json:"origin"`
	Tips   [3]mgl32.Vec3 `json:"tips"`
}

type CameraSnapshot struct {
	Position   mgl32.Vec3 `json:"position"`
	View       mgl32.Mat4 `json:"view"`
	Projection mgl32.Mat4 `json:"projection"`
}

type Snapshot struct {
	Root         *NodeSnapshot   `json:"root"`
	Selected     string          `json:"selected"`
	SiblingIndex int             `json:"sibling_index"`
	Overlay      bool            `json:"overlay"`
	Axes         []AxesSnapshot  `json:"axes,omitempty"`
	Camera       CameraSnapshot  `json:"camera"`
	Settings     config.Settings `json:"settings"`
}

type CanonicalSnapshot struct {
	Root      *NodeSnapshot   `json:"root"`
	Edges     [][2]mgl32.Vec3 `json:"edges"`
	Planes    []string        `json:"planes"`
	Triangles int             `json:"triangles"`
	Camera    CameraSnapshot  `json:"camera"`
}

func snapshotNode(f *figure.Figure, n *r3d.Node, geometry bool) *NodeSnapshot {
	ns := &NodeSnapshot{
		Name:     n.Name,
		Joint:    n.IsJoint(),
		Local:    n.Local,
		World:    n.World,
		Position: n.World.Col(3).Vec3(),
		Rotation: utils.RadiansToDegreeV3(utils.MatrixToEuler(n.Local)),
	}
	if !n.IsJoint() {
		ns.Title = f.Title(n.Name)
		ns.Material = n.Material.String()
		if geometry {
			ns.Vertices = n.Geometry.Vertices
			ns.Indices = n.Geometry.Indices
		}
	}
	for _, c := range n.Childs {
		ns.Childs = append(ns.Childs, snapshotNode(f, c, geometry))
	}
	return ns
}

func snapshotAxes(g *r3d.AxesGroup) []AxesSnapshot {
	if !g.Visible {
		return nil
	}
	axes := make([]AxesSnapshot, 0, len(g.Helpers))
	for _, h := range g.Helpers {
		origin, tips := h.Endpoints()
		axes = append(axes, AxesSnapshot{Node: h.Node, Origin: origin, Tips: tips})
	}
	return axes
}

func snapshotCamera(position mgl32.Vec3, cam r3d.Camera) CameraSnapshot {
	return CameraSnapshot{
		Position:   position,
		View:       cam.GetViewMatrix(),
		Projection: cam.GetProjectionMatrix(),
	}
}

func snapshotCanonical(c *projection.Canonical) *CanonicalSnapshot {
	return &CanonicalSnapshot{
		Root:      snapshotNode(c.Figure, c.Figure.Root, true),
		Edges:     c.Edges,
		Planes:    c.Planes.EnabledNames(),
		Triangles: len(c.Triangles()),
		Camera:    snapshotCamera(c.Camera.Position, c.Camera),
	}
}
