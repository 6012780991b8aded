package debug

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gearworks/pkg/math"
)

func TestFlipPixels(t *testing.T) {
	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))

	_, err = FlipPixels(pixels, 2, 2)
	assert.Error(t, err)
}

func TestCaptureFromPixels(t *testing.T) {
	for _, f := range []Format{PNG, WebP} {
		t.Run(string(f), func(t *testing.T) {
			dir := t.TempDir()
			sc := NewScreenshotCapture(dir, "gears", f)
			sc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

			pixels := make([]byte, 4*4*4)
			for i := range pixels {
				pixels[i] = 200
			}

			first, err := sc.CaptureFromPixels(pixels, 4, 4)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, "gears_2026-01-02_03-04-05."+string(f)), first)

			second, err := sc.CaptureFromPixels(pixels, 4, 4)
			require.NoError(t, err)
			assert.NotEqual(t, first, second, "same-second captures must not overwrite")

			info, err := os.Stat(second)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.png", PNG, false},
		{"dir/b.WEBP", WebP, false},
		{"c.jpg", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestSaveImageDecodes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.NRGBA{10, 20, 30, 255})
	path := filepath.Join(t.TempDir(), "out", "x.png")
	require.NoError(t, SaveImage(path, img))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	decoded, _, err := image.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestBoxWireframe(t *testing.T) {
	v := BoxWireframe(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})
	assert.Len(t, v, BoxWireframeVertexCount*3)
}

func TestCylinderWireframe(t *testing.T) {
	const segments = 12
	m := math.Translate(6, 0, 0)
	v := CylinderWireframe(3, 0.5, segments, m)

	// 3 lines per segment plus one spoke, 2 vertices each.
	require.Len(t, v, (segments*3+1)*2*3)
	for i := 0; i < len(v); i += 3 {
		p := math.Vec3{X: v[i] - 6, Y: v[i+1], Z: v[i+2]}
		r := math32.Hypot(p.X, p.Y)
		assert.LessOrEqual(t, r, float32(3.0001))
		assert.InDelta(t, 0.5, math32.Abs(p.Z), 1e-6)
	}
}
