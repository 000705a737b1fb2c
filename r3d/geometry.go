package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereWidthSegments  = 32
	sphereHeightSegments = 16
)

// Geometry is an indexed triangle list in object space
type Geometry struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Vertices: make([]mgl32.Vec3, len(g.Vertices)),
		Indices:  make([]uint32, len(g.Indices)),
	}
	copy(c.Vertices, g.Vertices)
	copy(c.Indices, g.Indices)
	return c
}

func (g *Geometry) Triangles() int {
	return len(g.Indices) / 3
}

// Triangle returns vertices of triangle i
func (g *Geometry) Triangle(i int) [3]mgl32.Vec3 {
	return [3]mgl32.Vec3{
		g.Vertices[g.Indices[i*3]],
		g.Vertices[g.Indices[i*3+1]],
		g.Vertices[g.Indices[i*3+2]],
	}
}

// NewBox is centered at origin
func NewBox(width, height, depth float32) *Geometry {
	x, y, z := width/2, height/2, depth/2
	return &Geometry{
		Vertices: []mgl32.Vec3{
			{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
			{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // front
			5, 4, 7, 5, 7, 6, // back
			4, 0, 3, 4, 3, 7, // left
			1, 5, 6, 1, 6, 2, // right
			3, 2, 6, 3, 6, 7, // top
			4, 5, 1, 4, 1, 0, // bottom
		},
	}
}

func NewSphere(radius float32) *Geometry {
	g := &Geometry{}

	for iy := 0; iy <= sphereHeightSegments; iy++ {
		v := float64(iy) / sphereHeightSegments
		for ix := 0; ix <= sphereWidthSegments; ix++ {
			u := float64(ix) / sphereWidthSegments
			g.Vertices = append(g.Vertices, mgl32.Vec3{
				float32(-float64(radius) * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(float64(radius) * math.Cos(v*math.Pi)),
				float32(float64(radius) * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			})
		}
	}

	row := uint32(sphereWidthSegments + 1)
	for iy := uint32(0); iy < sphereHeightSegments; iy++ {
		for ix := uint32(0); ix < sphereWidthSegments; ix++ {
			a := iy*row + ix + 1
			b := iy*row + ix
			c := (iy+1)*row + ix
			d := (iy+1)*row + ix + 1

			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != sphereHeightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// CubeEdges returns the 12 edges of an axis aligned cube with half size h
func CubeEdges(h float32) [][2]mgl32.Vec3 {
	corners := NewBox(h*2, h*2, h*2).Vertices
	pairs := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	edges := make([][2]mgl32.Vec3, len(pairs))
	for i, p := range pairs {
		edges[i] = [2]mgl32.Vec3{corners[p[0]], corners[p[1]]}
	}
	return edges
}
