package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultAxesSize = 3

// AxesHelper draws x/y/z lines of Size at World.
// It is display-only and references its source node by name.
type AxesHelper struct {
	Node  string
	World mgl32.Mat4
	Size  float32
}

// Endpoints returns origin and the tips of x, y and z axes in world space
func (h AxesHelper) Endpoints() (origin mgl32.Vec3, tips [3]mgl32.Vec3) {
	origin = ApplyPoint(h.World, mgl32.Vec3{})
	tips[0] = ApplyPoint(h.World, mgl32.Vec3{h.Size, 0, 0})
	tips[1] = ApplyPoint(h.World, mgl32.Vec3{0, h.Size, 0})
	tips[2] = ApplyPoint(h.World, mgl32.Vec3{0, 0, h.Size})
	return
}

type AxesGroup struct {
	Visible bool
	Helpers []AxesHelper
}

// Rebuild drops all helpers and adds one per non-leaf node of root.
func (g *AxesGroup) Rebuild(root *Node) {
	g.Helpers = nil
	root.Walk(func(n *Node) {
		if !n.IsLeaf() {
			g.Helpers = append(g.Helpers, AxesHelper{
				Node:  n.Name,
				World: n.World,
				Size:  DefaultAxesSize,
			})
		}
	})
}

func (g *AxesGroup) Toggle() {
	g.Visible = !g.Visible
}
