package renderer

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gearworks/pkg/gear"
)

func TestGLMode(t *testing.T) {
	tests := []struct {
		name    string
		in      gear.Topology
		want    uint32
		wantErr bool
	}{
		{"triangles", gear.Triangles, gl.TRIANGLES, false},
		{"lines", gear.Lines, gl.LINES, false},
		{"unknown", gear.Topology(42), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := glMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("glMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("glMode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUploadRejectsEmptyHandle(t *testing.T) {
	r := &Renderer{}
	if _, err := r.Upload(&gear.Handle{Layout: gear.VertexLayout}); err == nil {
		t.Error("Upload(empty) should fail before touching GL")
	}
}

func TestMeshReleaseIdempotentWhenZero(t *testing.T) {
	m := &Mesh{}
	m.Release()
	m.Release()
	if m.count != 0 {
		t.Errorf("count = %d after release", m.count)
	}
}
