// Package selection walks a figure part by part and poses the selected part.
//
// The cursor is a selected part plus its index among the joints of its parent
// part. Parts are always reached through their joint: part -> joint -> part.
package selection

import (
	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/figure"
	"github.com/mogaika/figure_viewer/r3d"
)

type Navigator struct {
	figure       *figure.Figure
	selected     *r3d.Node
	siblingIndex int
}

// New selects the figure root. Any selected tag left on the figure is cleared.
func New(f *figure.Figure) *Navigator {
	f.Root.Walk(func(n *r3d.Node) {
		n.Material = r3d.MaterialDefault
	})
	nav := &Navigator{figure: f}
	nav.selectPart(f.Root, 0)
	return nav
}

func (nav *Navigator) Figure() *figure.Figure { return nav.figure }
func (nav *Navigator) Selected() *r3d.Node    { return nav.selected }
func (nav *Navigator) SiblingIndex() int      { return nav.siblingIndex }

func (nav *Navigator) selectPart(part *r3d.Node, index int) {
	if nav.selected != nil {
		nav.selected.Material = r3d.MaterialDefault
	}
	part.Material = r3d.MaterialSelected
	nav.selected = part
	nav.siblingIndex = index
}

// partOf returns the part positioned by joint
func partOf(joint *r3d.Node) *r3d.Node {
	for _, c := range joint.Childs {
		if !c.IsJoint() {
			return c
		}
	}
	return nil
}

// siblings are the joints of the selection's parent part, nil for root
func (nav *Navigator) siblings() []*r3d.Node {
	joint := nav.selected.Parent
	if joint == nil || joint.Parent == nil {
		return nil
	}
	return joint.Parent.Childs
}

func (nav *Navigator) SelectParent() {
	joint := nav.selected.Parent
	if joint == nil || joint.Parent == nil {
		return
	}
	parent := joint.Parent

	index := 0
	if parent.Parent != nil {
		index = parent.Parent.IndexInParent()
	}
	nav.selectPart(parent, index)
}

func (nav *Navigator) SelectFirstChild() {
	if nav.selected.IsLeaf() {
		return
	}
	if part := partOf(nav.selected.Childs[0]); part != nil {
		nav.selectPart(part, 0)
	}
}

func (nav *Navigator) SelectNextSibling() {
	nav.stepSibling(1)
}

// SelectPreviousSibling wraps from the first sibling to the last one
func (nav *Navigator) SelectPreviousSibling() {
	nav.stepSibling(-1)
}

func (nav *Navigator) stepSibling(delta int) {
	siblings := nav.siblings()
	count := len(siblings)
	if count == 0 {
		return
	}

	index := ((nav.siblingIndex+delta)%count + count) % count
	if part := partOf(siblings[index]); part != nil {
		nav.selectPart(part, index)
	}
}

// rotationOrigin is the joint holding the selection, or the root itself
func (nav *Navigator) rotationOrigin() *r3d.Node {
	if joint := nav.selected.Parent; joint != nil && joint.IsJoint() {
		return joint
	}
	return nav.selected
}

// Rotate turns the selected part around its attachment point.
// angle is in radians, about the joint's local axis.
func (nav *Navigator) Rotate(axis r3d.Axis, angle float32) {
	origin := nav.rotationOrigin()
	origin.SetLocalTransform(origin.Local.Mul4(r3d.Rotation(axis, angle)))
	nav.figure.Propagate(origin)
	nav.figure.RebuildAxes()
}

func (nav *Navigator) ToggleOverlay() {
	nav.figure.RebuildAxes()
	nav.figure.Axes.Toggle()
}

func (nav *Navigator) Reset() {
	nav.figure.ResetPose()
	nav.selectPart(nav.figure.Root, 0)
	nav.figure.RebuildAxes()
}

func (nav *Navigator) Apply(cmd Command) error {
	switch cmd.Action {
	case ActionParent:
		nav.SelectParent()
	case ActionFirstChild:
		nav.SelectFirstChild()
	case ActionNextSibling:
		nav.SelectNextSibling()
	case ActionPreviousSibling:
		nav.SelectPreviousSibling()
	case ActionRotate:
		nav.Rotate(cmd.Axis, cmd.Angle)
	case ActionToggleOverlay:
		nav.ToggleOverlay()
	case ActionReset:
		nav.Reset()
	default:
		return errors.Errorf("Command %v is not a navigation command", cmd)
	}
	return nil
}
