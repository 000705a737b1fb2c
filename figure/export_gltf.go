package figure

import (
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/figure_viewer/r3d"
	"github.com/mogaika/figure_viewer/utils"
	"github.com/mogaika/figure_viewer/utils/gltfutils"
)

// Palette resolves material tags to colors at export time
type Palette struct {
	Default  utils.ColorFloat
	Selected utils.ColorFloat
}

var DefaultPalette = Palette{
	Default:  utils.MustParseHexColor("#FD5DA8"),
	Selected: utils.MustParseHexColor("#AF69EE"),
}

func (p Palette) Color(tag r3d.MaterialTag) utils.ColorFloat {
	if tag == r3d.MaterialSelected {
		return p.Selected
	}
	return p.Default
}

type GLTFFigureExported struct {
	RootNode  uint32
	Nodes     map[string]uint32
	Materials map[r3d.MaterialTag]uint32
}

func exportMaterials(doc *gltf.Document, palette Palette) map[r3d.MaterialTag]uint32 {
	materials := make(map[r3d.MaterialTag]uint32)
	for _, tag := range []r3d.MaterialTag{r3d.MaterialDefault, r3d.MaterialSelected} {
		color := new([4]float32)
		*color = [4]float32(palette.Color(tag))

		materials[tag] = uint32(len(doc.Materials))
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:        tag.String(),
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: color,
			},
		})
	}
	return materials
}

func exportMesh(doc *gltf.Document, name string, g *r3d.Geometry, material uint32) uint32 {
	positions := make([][3]float32, len(g.Vertices))
	for i, v := range g.Vertices {
		positions[i] = v
	}
	positionAccessor := modeler.WritePosition(doc, positions)
	indicesAccessor := modeler.WriteIndices(doc, g.Indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{
			&gltf.Primitive{
				Indices:    gltf.Index(indicesAccessor),
				Attributes: map[string]uint32{"POSITION": positionAccessor},
				Material:   gltf.Index(material),
			},
		},
	})
	return uint32(len(doc.Meshes) - 1)
}

// ExportGLTF adds the figure hierarchy with local matrices to doc.
// The root node carries Placement * Local so the scene looks as viewed.
func (f *Figure) ExportGLTF(doc *gltf.Document, palette Palette) (*GLTFFigureExported, error) {
	fe := &GLTFFigureExported{
		Nodes:     make(map[string]uint32),
		Materials: exportMaterials(doc, palette),
	}

	var export func(n *r3d.Node) uint32
	export = func(n *r3d.Node) uint32 {
		matrix := n.Local
		if n == f.Root {
			matrix = f.Placement.Mul4(n.Local)
		}
		node := &gltf.Node{
			Name:   n.Name,
			Matrix: [16]float32(matrix),
		}
		if n.Geometry != nil {
			node.Mesh = gltf.Index(exportMesh(doc, n.Name, n.Geometry, fe.Materials[n.Material]))
		}

		id := uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, node)
		fe.Nodes[n.Name] = id

		for _, c := range n.Childs {
			node.Children = append(node.Children, export(c))
		}
		return id
	}

	fe.RootNode = export(f.Root)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, fe.RootNode)

	return fe, nil
}

func (f *Figure) ExportGLTFDefault(palette Palette) (*gltf.Document, error) {
	doc := gltfutils.NewDocument()
	if _, err := f.ExportGLTF(doc, palette); err != nil {
		return nil, err
	}
	return doc, nil
}
