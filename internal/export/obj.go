// Package export writes gear meshes to interchange formats.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/gearworks/pkg/gear"
)

// ErrUnknownFormat is returned by WriteFile for unsupported extensions.
var ErrUnknownFormat = errors.New("export: unknown mesh format")

// WriteOBJ writes mesh as a Wavefront OBJ object named name. Every vertex
// keeps its own normal, so v and vn indices are equal.
func WriteOBJ(w io.Writer, mesh *gear.Mesh, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# gearworks mesh: %d vertices, %d triangles\n", mesh.VertexCount(), mesh.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
	}
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
	}
	// flat shading: no smoothing groups
	bw.WriteString("s off\n")
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}

// WriteFile writes mesh to path, choosing OBJ or binary STL by extension.
func WriteFile(path string, mesh *gear.Mesh, name string) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		write = func(w io.Writer) error { return WriteOBJ(w, mesh, name) }
	case ".stl":
		write = func(w io.Writer) error { return WriteSTL(w, mesh, name) }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
