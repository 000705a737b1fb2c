package figure

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mogaika/figure_viewer/r3d"
)

// ExportObj writes parts in world space, one object per part
func (f *Figure) ExportObj(_w io.Writer) error {
	bw := bufio.NewWriter(_w)
	w := func(format string, args ...interface{}) {
		fmt.Fprintf(bw, format+"\n", args...)
	}

	iV := uint32(1)
	f.Root.Walk(func(n *r3d.Node) {
		if n.Geometry == nil {
			return
		}

		w("o %s", n.Name)
		w("usemtl %s", n.Material)
		for _, v := range n.Geometry.Vertices {
			p := r3d.ApplyPoint(n.World, v)
			w("v %f %f %f", p[0], p[1], p[2])
		}

		indexes := n.Geometry.Indices
		for i := 0; i+2 < len(indexes); i += 3 {
			w("f %v %v %v", iV+indexes[i], iV+indexes[i+1], iV+indexes[i+2])
		}
		iV += uint32(len(n.Geometry.Vertices))
	})

	return bw.Flush()
}
