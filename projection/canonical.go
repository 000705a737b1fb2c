package projection

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/figure_viewer/figure"
	"github.com/mogaika/figure_viewer/r3d"
)

type Plane int

const (
	PlaneX0 Plane = iota
	PlaneX1
	PlaneY0
	PlaneY1
	PlaneZ0
	PlaneZ1
	PLANES_COUNT
)

// slightly outside the cube so faces lying on it survive
const PlaneConstant = 1.000001

var planeNames = [PLANES_COUNT]string{"x0", "x1", "y0", "y1", "z0", "z1"}

var planeNormals = [PLANES_COUNT]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func (p Plane) String() string {
	if p >= 0 && p < PLANES_COUNT {
		return planeNames[p]
	}
	return "?"
}

func ParsePlane(s string) (Plane, error) {
	for i, name := range planeNames {
		if name == strings.ToLower(s) {
			return Plane(i), nil
		}
	}
	return 0, errors.Errorf("Unknown clipping plane %q", s)
}

// Keeps reports whether p is on the kept side: normal . p + constant >= 0
func (pl Plane) Keeps(p mgl32.Vec3) bool {
	return planeNormals[pl].Dot(p)+PlaneConstant >= 0
}

// Planes holds the enabled state of each clipping plane
type Planes [PLANES_COUNT]bool

func (ps *Planes) Toggle(p Plane) {
	ps[p] = !ps[p]
}

func (ps *Planes) Enabled(p Plane) bool {
	return ps[p]
}

// Contains reports whether p survives every enabled plane
func (ps *Planes) Contains(p mgl32.Vec3) bool {
	for i, enabled := range ps {
		if enabled && !Plane(i).Keeps(p) {
			return false
		}
	}
	return true
}

func (ps *Planes) EnabledNames() []string {
	names := make([]string, 0)
	for i, enabled := range ps {
		if enabled {
			names = append(names, Plane(i).String())
		}
	}
	return names
}

// Canonical is the live figure seen through the live camera, laid out in NDC
// and observed by a fixed orthographic camera.
type Canonical struct {
	Figure *figure.Figure
	Edges  [][2]mgl32.Vec3
	Camera *r3d.OrthographicCamera
	Planes Planes
}

func NewCanonical(live *figure.Figure, cam r3d.Camera) *Canonical {
	c := &Canonical{
		Edges:  r3d.CubeEdges(1),
		Camera: r3d.NewCanonicalCamera(),
	}
	c.Update(live, cam)
	return c
}

// Update replaces the projected figure with a fresh projection of live.
// Plane states are kept.
func (c *Canonical) Update(live *figure.Figure, cam r3d.Camera) {
	fig := live.Clone()
	TransformObject(fig.Root, cam)
	fig.Placement = mgl32.Ident4()
	fig.Update()
	fig.RebuildAxes()
	fig.Axes.Visible = false
	c.Figure = fig
}

// Triangle in NDC with the material of its part
type Triangle struct {
	Part     string
	Material r3d.MaterialTag
	Points   [3]mgl32.Vec3
}

// Triangles returns the projected triangles that survive the enabled planes
func (c *Canonical) Triangles() []Triangle {
	tris := make([]Triangle, 0)
	for _, part := range c.Figure.Parts() {
		g := part.Geometry
		for i := 0; i < g.Triangles(); i++ {
			t := g.Triangle(i)
			if !c.Planes.Contains(t[0]) || !c.Planes.Contains(t[1]) || !c.Planes.Contains(t[2]) {
				continue
			}
			tris = append(tris, Triangle{Part: part.Name, Material: part.Material, Points: t})
		}
	}
	return tris
}
