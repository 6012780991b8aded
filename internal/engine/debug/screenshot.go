// Package debug provides screenshots and debug line geometry.
package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"
)

// ScreenshotCapture handles screenshot capture functionality.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	format    Format

	// now is replaced in tests.
	now func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string, format Format) *ScreenshotCapture {
	if format == "" {
		format = PNG
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// FlipPixels converts bottom-up RGBA rows, as glReadPixels returns them,
// into a top-down image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels saves raw bottom-up RGBA pixel data and returns the path.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	path := sc.nextPath()
	if err := SaveImage(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// nextPath returns a timestamped file name that does not exist yet.
func (sc *ScreenshotCapture) nextPath() string {
	stamp := sc.now().Format("2006-01-02_15-04-05")
	base := fmt.Sprintf("%s_%s", sc.prefix, stamp)
	for n := 0; ; n++ {
		name := base + "." + string(sc.format)
		if n > 0 {
			name = fmt.Sprintf("%s_%d.%s", base, n, sc.format)
		}
		path := filepath.Join(sc.outputDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}
