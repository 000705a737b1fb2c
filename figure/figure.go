package figure

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mogaika/figure_viewer/r3d"
)

// Figure is a jointed robot: part -> joint -> part -> ...
// Every joint has exactly one part child.
type Figure struct {
	Root *r3d.Node
	// overlay, rebuilt from world transforms, never owns nodes
	Axes *r3d.AxesGroup
	// scene placement of the root, fed by the settings panel
	Placement mgl32.Mat4

	parts  []*r3d.Node
	titles map[string]string
}

func newShape(pl *PartLayout) (*r3d.Geometry, error) {
	switch pl.Shape {
	case SHAPE_BOX:
		return r3d.NewBox(pl.Size[0], pl.Size[1], pl.Size[2]), nil
	case SHAPE_SPHERE:
		return r3d.NewSphere(pl.Size[0]), nil
	default:
		return nil, errors.Errorf("Part %q has unknown shape %q", pl.Name, pl.Shape)
	}
}

func Build(l *Layout) (*Figure, error) {
	f := &Figure{
		Axes:      &r3d.AxesGroup{},
		Placement: mgl32.Ident4(),
		titles:    make(map[string]string),
	}

	byName := make(map[string]*r3d.Node)
	for i := range l.Parts {
		pl := &l.Parts[i]
		if pl.Name == "" {
			return nil, errors.Errorf("Part #%d has no name", i)
		}
		if _, exists := byName[pl.Name]; exists {
			return nil, errors.Errorf("Duplicate part %q", pl.Name)
		}

		geometry, err := newShape(pl)
		if err != nil {
			return nil, err
		}

		part := r3d.NewPart(pl.Name, geometry, pl.Offset)
		if pl.Parent == "" {
			if f.Root != nil {
				return nil, errors.Errorf("Part %q is a second root (first is %q)", pl.Name, f.Root.Name)
			}
			f.Root = part
		} else {
			parent, ok := byName[pl.Parent]
			if !ok {
				return nil, errors.Errorf("Part %q references unknown parent %q", pl.Name, pl.Parent)
			}
			joint := r3d.NewJoint(JointName(pl.Name), pl.Joint)
			parent.AddChild(joint)
			joint.AddChild(part)
		}

		byName[pl.Name] = part
		f.parts = append(f.parts, part)
		f.titles[pl.Name] = pl.Title
	}

	if f.Root == nil {
		return nil, errors.New("Layout has no root part")
	}

	f.Update()
	f.Axes.Rebuild(f.Root)
	return f, nil
}

func BuildDefault() *Figure {
	f, err := Build(DefaultLayout())
	if err != nil {
		panic(err)
	}
	return f
}

// Part returns part or joint by name
func (f *Figure) Part(name string) *r3d.Node {
	return f.Root.Find(name)
}

// Parts in layout order, joints excluded
func (f *Figure) Parts() []*r3d.Node {
	return f.parts
}

// Update propagates the whole figure
func (f *Figure) Update() {
	r3d.PropagateFrom(f.Root, f.Placement)
}

// Propagate recomputes world transforms of n and below
func (f *Figure) Propagate(n *r3d.Node) {
	if n == f.Root {
		f.Update()
	} else {
		r3d.Propagate(n)
	}
}

func (f *Figure) ResetPose() {
	r3d.ResetPoseFrom(f.Root, f.Placement)
}

func (f *Figure) SetPlacement(m mgl32.Mat4) {
	f.Placement = m
	f.Update()
}

// Placement from the settings panel: translate, then euler rotation (radians)
func PlacementFrom(translate, rotate mgl32.Vec3) mgl32.Mat4 {
	return r3d.Translation(translate).Mul4(r3d.EulerXYZ(rotate))
}

func (f *Figure) RebuildAxes() {
	f.Axes.Rebuild(f.Root)
}

func (f *Figure) Clone() *Figure {
	c := &Figure{
		Root:      f.Root.Clone(),
		Axes:      &r3d.AxesGroup{Visible: f.Axes.Visible},
		Placement: f.Placement,
		titles:    f.titles,
	}
	for _, p := range f.parts {
		c.parts = append(c.parts, c.Root.Find(p.Name))
	}
	c.Axes.Rebuild(c.Root)
	return c
}

func (f *Figure) Title(name string) string {
	title := f.titles[name]
	if title == "" {
		title = name
	}
	return cases.Title(language.English).String(title)
}

func (f *Figure) StringTree() string {
	var buffer bytes.Buffer
	var dump func(n *r3d.Node, spaces string)
	dump = func(n *r3d.Node, spaces string) {
		pos := n.World.Col(3)
		if n.IsJoint() {
			fmt.Fprintf(&buffer, "%s+ %s [%.3f %.3f %.3f]\n", spaces, n.Name, pos[0], pos[1], pos[2])
		} else {
			fmt.Fprintf(&buffer, "%s%s (%s) [%.3f %.3f %.3f] %s\n",
				spaces, f.Title(n.Name), n.Name, pos[0], pos[1], pos[2], n.Material)
		}
		for _, c := range n.Childs {
			dump(c, spaces+"  ")
		}
	}
	dump(f.Root, "")
	return buffer.String()
}
