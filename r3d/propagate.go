package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Propagate recomputes World for n and all its descendants.
// The parent's World must already be current.
func Propagate(n *Node) {
	if n.Parent == nil {
		PropagateFrom(n, mgl32.Ident4())
	} else {
		PropagateFrom(n, n.Parent.World)
	}
}

// PropagateFrom treats base as the world transform n is attached to.
func PropagateFrom(n *Node, base mgl32.Mat4) {
	n.World = base.Mul4(n.Local)
	for _, c := range n.Childs {
		PropagateFrom(c, n.World)
	}
}

// ResetPose discards accumulated rotations of the subtree.
func ResetPose(n *Node) {
	if n.Parent == nil {
		ResetPoseFrom(n, mgl32.Ident4())
	} else {
		ResetPoseFrom(n, n.Parent.World)
	}
}

func ResetPoseFrom(n *Node, base mgl32.Mat4) {
	n.Walk(func(c *Node) {
		c.Local = Translation(c.RestOffset)
	})
	PropagateFrom(n, base)
}
