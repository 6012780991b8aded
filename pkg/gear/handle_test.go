package gear

import "testing"

func TestHandleInterleaves(t *testing.T) {
	m := MustBuild(specWithTeeth(3))
	h := m.Handle()

	if h.Topology != Triangles {
		t.Errorf("Topology = %v, want triangles", h.Topology)
	}
	if got, want := len(h.Data), m.VertexCount()*6; got != want {
		t.Fatalf("len(Data) = %d, want %d", got, want)
	}
	if h.VertexCount() != m.VertexCount() {
		t.Errorf("VertexCount() = %d, want %d", h.VertexCount(), m.VertexCount())
	}
	for i, v := range m.Vertices {
		row := h.Data[i*6 : i*6+6]
		if row[0] != v.Position[0] || row[1] != v.Position[1] || row[2] != v.Position[2] ||
			row[3] != v.Normal[0] || row[4] != v.Normal[1] || row[5] != v.Normal[2] {
			t.Fatalf("vertex %d: row %v does not match %+v", i, row, v)
		}
	}
	if len(h.Indices) != len(m.Indices) {
		t.Errorf("len(Indices) = %d, want %d", len(h.Indices), len(m.Indices))
	}
}

func TestVertexLayout(t *testing.T) {
	if VertexLayout.Stride != 6 || VertexLayout.StrideBytes() != 24 {
		t.Errorf("stride = %d floats / %d bytes, want 6 / 24", VertexLayout.Stride, VertexLayout.StrideBytes())
	}
	tests := []struct {
		name     string
		location uint32
		offset   int
	}{
		{"position", 0, 0},
		{"normal", 1, 3},
	}
	for i, tt := range tests {
		a := VertexLayout.Attributes[i]
		if a.Name != tt.name || a.Location != tt.location || a.Offset != tt.offset || a.Size != 3 {
			t.Errorf("attribute %d = %+v, want %s at location %d offset %d", i, a, tt.name, tt.location, tt.offset)
		}
	}
}

func TestEmptyHandle(t *testing.T) {
	h := (&Mesh{}).Handle()
	if len(h.Data) != 0 || len(h.Indices) != 0 {
		t.Errorf("empty mesh handle has %d floats, %d indices", len(h.Data), len(h.Indices))
	}
}
