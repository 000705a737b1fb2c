// Package projection turns a posed figure into camera space.
//
// Projected geometry holds NDC directly, with z negated for display, and the
// owning nodes carry identity transforms so nothing is applied twice.
package projection

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/figure_viewer/r3d"
)

// NDC maps a world point through cam: view, projection, perspective divide.
// w == 0 is not guarded, the result is non-finite then.
func NDC(world mgl32.Vec3, cam r3d.Camera) mgl32.Vec3 {
	view := r3d.Apply(cam.GetViewMatrix(), world.Vec4(1))
	clip := r3d.Apply(cam.GetProjectionMatrix(), view)
	return mgl32.Vec3{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}
}

// TransformVertices rewrites the geometry of n as (ndc.x, ndc.y, -ndc.z)
// and resets n to identity. Joints are only reset.
func TransformVertices(n *r3d.Node, cam r3d.Camera) {
	if g := n.Geometry; g != nil {
		for i, v := range g.Vertices {
			ndc := NDC(r3d.ApplyPoint(n.World, v), cam)
			g.Vertices[i] = mgl32.Vec3{ndc[0], ndc[1], -ndc[2]}
		}
	}

	n.RestOffset = mgl32.Vec3{}
	n.Local = mgl32.Ident4()
	n.World = mgl32.Ident4()
}

// TransformObject projects every node under root.
// Pre-order keeps children World untouched until they are visited.
func TransformObject(root *r3d.Node, cam r3d.Camera) {
	root.Walk(func(n *r3d.Node) {
		TransformVertices(n, cam)
	})
}
