package gear

// Topology is the primitive type of an index buffer.
type Topology int

const (
	// Triangles is an independent triangle list.
	Triangles Topology = iota
	// Lines is an independent line list.
	Lines
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// Attribute describes one vertex attribute inside the interleaved buffer.
// Offset and Size are in float32 components.
type Attribute struct {
	Name     string
	Location uint32
	Size     int
	Offset   int
}

// Layout describes an interleaved float32 vertex buffer.
type Layout struct {
	Attributes []Attribute
	Stride     int // floats per vertex
}

// StrideBytes returns the stride in bytes.
func (l Layout) StrideBytes() int { return l.Stride * 4 }

// VertexLayout is the layout of Handle.Data: position then normal.
var VertexLayout = Layout{
	Attributes: []Attribute{
		{Name: "position", Location: 0, Size: 3, Offset: 0},
		{Name: "normal", Location: 1, Size: 3, Offset: 3},
	},
	Stride: 6,
}

// Handle is a mesh flattened for upload: vertex data interleaved as
// [x y z nx ny nz] per vertex in emission order.
type Handle struct {
	Data     []float32
	Indices  []uint32
	Layout   Layout
	Topology Topology
}

// VertexCount returns the number of vertices in Data.
func (h *Handle) VertexCount() int {
	if h.Layout.Stride == 0 {
		return 0
	}
	return len(h.Data) / h.Layout.Stride
}

// Handle interleaves the mesh into an upload-ready buffer.
func (m *Mesh) Handle() *Handle {
	data := make([]float32, 0, len(m.Vertices)*VertexLayout.Stride)
	for _, v := range m.Vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Normal[:]...)
	}
	return &Handle{
		Data:     data,
		Indices:  m.Indices,
		Layout:   VertexLayout,
		Topology: Triangles,
	}
}

// Resource is a mesh living in some other memory, usually the GPU.
type Resource interface {
	Release()
}

// Uploader moves handles into a Resource. The renderer implements it.
type Uploader interface {
	Upload(h *Handle) (Resource, error)
}
