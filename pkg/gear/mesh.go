package gear

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vertex is one mesh vertex. Normal is unit length.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds is the axis-aligned bounding box of a mesh in gear-local space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is the generated gear solid. Triangles are counter-clockwise seen from
// outside the solid.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds

	// DegenerateChords counts flank walls that fell back to a radial normal.
	DegenerateChords int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return len(m.Indices) == 0 }

type emitter func(p Profile, f *Frame, base uint32) patch

// emitters run in this order for every tooth.
var emitters = [...]emitter{
	emitFrontCap,
	emitFrontFlank,
	emitBackCap,
	emitBackFlank,
	emitWalls,
	emitBore,
}

// assembler accumulates patches and tracks the running vertex cursor.
type assembler struct {
	mesh   *Mesh
	cursor uint32
}

func newAssembler(teeth int) *assembler {
	return &assembler{mesh: &Mesh{
		Vertices: make([]Vertex, 0, teeth*VerticesPerTooth),
		Indices:  make([]uint32, 0, teeth*TrianglesPerTooth*3),
		Bounds:   emptyBounds(),
	}}
}

func (a *assembler) add(p patch) {
	for _, v := range p.Vertices {
		updateBounds(&a.mesh.Bounds, v.Position)
	}
	a.mesh.Vertices = append(a.mesh.Vertices, p.Vertices...)
	a.mesh.Indices = append(a.mesh.Indices, p.Indices...)
	a.mesh.DegenerateChords += p.Fallbacks
	a.cursor += uint32(len(p.Vertices))
}

// Build generates the mesh for s. The Spec's Position and Angle are not
// applied; the mesh is in gear-local space centred on the origin.
//
// A non-positive tooth count yields an empty mesh and ErrInvalidTeeth.
// Other parameters are used as given, so inverted radii produce an
// inside-out solid rather than an error.
func Build(s Spec) (*Mesh, error) {
	if s.Teeth <= 0 {
		return &Mesh{}, fmt.Errorf("build gear: %w: got %d", ErrInvalidTeeth, s.Teeth)
	}

	prof := s.Profile()
	asm := newAssembler(s.Teeth)
	for i := 0; i < s.Teeth; i++ {
		f := NewFrame(i, s.Teeth)
		for _, emit := range emitters {
			asm.add(emit(prof, &f, asm.cursor))
		}
	}
	return asm.mesh, nil
}

// MustBuild is like Build but panics on error. Intended for constants.
func MustBuild(s Spec) *Mesh {
	m, err := Build(s)
	if err != nil {
		panic(err)
	}
	return m
}

func emptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}
