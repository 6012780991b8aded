package export

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/Faultbox/gearworks/pkg/gear"
)

const stlHeaderSize = 80

// WriteSTL writes mesh as binary STL. The facet normal is the first
// vertex's normal, which is the face normal for flat-shaded gears.
func WriteSTL(w io.Writer, mesh *gear.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "gearworks "+name)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(mesh.TriangleCount())); err != nil {
		return err
	}

	type facet struct {
		Normal [3]float32
		Verts  [3][3]float32
		Attr   uint16
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		f := facet{Normal: mesh.Vertices[mesh.Indices[i]].Normal}
		for k := 0; k < 3; k++ {
			f.Verts[k] = mesh.Vertices[mesh.Indices[i+k]].Position
		}
		if err := binary.Write(bw, binary.LittleEndian, &f); err != nil {
			return err
		}
	}
	return bw.Flush()
}
