package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

type MaterialTag int

const (
	MaterialDefault MaterialTag = iota
	MaterialSelected
)

func (t MaterialTag) String() string {
	if t == MaterialSelected {
		return "selected"
	}
	return "default"
}

/*
Local is authored (builder, rotations).
World is derived by Propagate and must never be written by hand.
RestOffset keeps the construction-time translation for ResetPose.
*/
type Node struct {
	Name string

	Local      mgl32.Mat4
	World      mgl32.Mat4
	RestOffset mgl32.Vec3

	// nil for joints
	Geometry *Geometry
	Material MaterialTag

	// navigation only, the parent owns its Childs
	Parent *Node
	Childs []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Local: mgl32.Ident4(),
		World: mgl32.Ident4(),
	}
}

func NewJoint(name string, restOffset mgl32.Vec3) *Node {
	n := NewNode(name)
	n.RestOffset = restOffset
	n.Local = Translation(restOffset)
	return n
}

func NewPart(name string, geometry *Geometry, restOffset mgl32.Vec3) *Node {
	n := NewJoint(name, restOffset)
	n.Geometry = geometry
	return n
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Childs = append(n.Childs, child)
}

func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Childs {
		if c == child {
			n.Childs = append(n.Childs[:i], n.Childs[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// SetLocalTransform only assigns. Call Propagate to make it visible.
func (n *Node) SetLocalTransform(m mgl32.Mat4) {
	n.Local = m
}

func (n *Node) IsJoint() bool { return n.Geometry == nil }
func (n *Node) IsLeaf() bool  { return len(n.Childs) == 0 }
func (n *Node) IsRoot() bool  { return n.Parent == nil }

// IndexInParent returns position in parent's Childs or -1 for root
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Childs {
		if c == n {
			return i
		}
	}
	return -1
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Childs {
		c.Walk(fn)
	}
}

// Clone deep-copies the subtree. The copy has no parent.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:       n.Name,
		Local:      n.Local,
		World:      n.World,
		RestOffset: n.RestOffset,
		Material:   n.Material,
	}
	if n.Geometry != nil {
		c.Geometry = n.Geometry.Clone()
	}
	for _, child := range n.Childs {
		c.AddChild(child.Clone())
	}
	return c
}

// Find returns the first node named name in the subtree
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Childs {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
