package gear

import "github.com/chewxy/math32"

// Samples is the number of angles sampled per tooth.
const Samples = 5

// Frame holds the angular samples for one tooth: ta + k*da for k = 0..4,
// where ta = tooth*2π/teeth and da = 2π/teeth/4. Sample 0 and sample 4 are the
// tooth boundaries; 1 and 2 bound the tip land, 3 to 4 is the root land.
type Frame struct {
	Angle [Samples]float32
	Cos   [Samples]float32
	Sin   [Samples]float32
}

// NewFrame computes the samples for tooth i of a gear with teeth teeth.
// teeth must be positive.
func NewFrame(i, teeth int) Frame {
	pitch := 2 * math32.Pi / float32(teeth)
	ta := float32(i) * pitch
	da := pitch / 4

	var f Frame
	for k := 0; k < Samples; k++ {
		a := ta + float32(k)*da
		f.Angle[k] = a
		f.Sin[k], f.Cos[k] = math32.Sincos(a)
	}
	return f
}
