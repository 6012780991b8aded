package gear

import "github.com/Faultbox/gearworks/pkg/math"

// chordEpsilon is the shortest wall chord that still yields a usable normal.
const chordEpsilon = 1e-6

// Vertices emitted per tooth by each face category.
const (
	capVertices   = 6
	flankVertices = 4
	wallVertices  = 16
	boreVertices  = 4

	// VerticesPerTooth is the exact vertex count Build emits for one tooth.
	VerticesPerTooth = 2*capVertices + 2*flankVertices + wallVertices + boreVertices
	// TrianglesPerTooth is the exact triangle count Build emits for one tooth.
	TrianglesPerTooth = 2*4 + 2*2 + 8 + 2
)

// patch is the output of one emitter. Indices are absolute: they already
// include the base offset the emitter was given.
type patch struct {
	Vertices []Vertex
	Indices  []uint32
	// Fallbacks counts walls whose chord was too short to define a normal.
	Fallbacks int
}

func (p *patch) vertex(pos math.Vec3, n math.Vec3) {
	p.Vertices = append(p.Vertices, Vertex{Position: pos.Array(), Normal: n.Array()})
}

func (p *patch) tri(base uint32, a, b, c uint32) {
	p.Indices = append(p.Indices, base+a, base+b, base+c)
}

// quad appends the pair (0,1,2),(1,3,2) used by flanks, walls and the bore,
// or its mirror when flip is set.
func (p *patch) quad(base uint32, flip bool) {
	if flip {
		p.tri(base, 0, 2, 1)
		p.tri(base, 1, 2, 3)
		return
	}
	p.tri(base, 0, 1, 2)
	p.tri(base, 1, 3, 2)
}

func point(r float32, f *Frame, k int) math.Vec2 {
	return math.Polar(r, f.Cos[k], f.Sin[k])
}

func radial(f *Frame, k int) math.Vec3 {
	return math.Vec3{X: f.Cos[k], Y: f.Sin[k]}
}

// capRing returns the six cap points: the two bore corners, the root points at
// samples 0, 3 and 4, and the midpoint of the root chord shared with the
// flank. The inner edge is the bore chord between samples 0 and 4, the
// same chord the bore panel spans, so the cap meets the bore without a gap.
func capRing(p Profile, f *Frame) [capVertices]math.Vec2 {
	root0, root3 := point(p.R1, f, 0), point(p.R1, f, 3)
	return [capVertices]math.Vec2{
		point(p.R0, f, 0), root0,
		root0.Add(root3).Scale(0.5), root3,
		point(p.R0, f, 4), point(p.R1, f, 4),
	}
}

// capTriangles fans the cap outline from its bore edge. Each entry winds
// counter-clockwise seen from +Z.
var capTriangles = [4][3]uint32{
	{0, 1, 2},
	{0, 2, 4},
	{2, 3, 4},
	{3, 5, 4},
}

func emitCap(p Profile, f *Frame, base uint32, back bool) patch {
	var out patch
	z, n := p.HalfWidth, math.UnitZ
	if back {
		z, n = -p.HalfWidth, math.UnitZ.Scale(-1)
	}
	for _, q := range capRing(p, f) {
		out.vertex(q.Vec3(z), n)
	}
	for _, t := range capTriangles {
		if back {
			out.tri(base, t[0], t[2], t[1])
			continue
		}
		out.tri(base, t[0], t[1], t[2])
	}
	return out
}

func emitFlank(p Profile, f *Frame, base uint32, back bool) patch {
	var out patch
	z, n := p.HalfWidth, math.UnitZ
	if back {
		z, n = -p.HalfWidth, math.UnitZ.Scale(-1)
	}
	for _, q := range [flankVertices]math.Vec2{
		point(p.R1, f, 0), point(p.R2, f, 1),
		point(p.R1, f, 3), point(p.R2, f, 2),
	} {
		out.vertex(q.Vec3(z), n)
	}
	out.quad(base, back)
	return out
}

func emitFrontCap(p Profile, f *Frame, base uint32) patch   { return emitCap(p, f, base, false) }
func emitBackCap(p Profile, f *Frame, base uint32) patch    { return emitCap(p, f, base, true) }
func emitFrontFlank(p Profile, f *Frame, base uint32) patch { return emitFlank(p, f, base, false) }
func emitBackFlank(p Profile, f *Frame, base uint32) patch  { return emitFlank(p, f, base, true) }

// chordNormal returns the outward normal of the wall running from a to b
// counter-clockwise. ok is false when the chord is too short, in which case
// the caller's fallback is returned.
func chordNormal(a, b math.Vec2, fallback math.Vec3) (n math.Vec3, ok bool) {
	c := b.Sub(a)
	l := c.Length()
	if l < chordEpsilon {
		return fallback, false
	}
	return c.Perp().Scale(1 / l).Vec3(0), true
}

// wall describes one outward quad between two profile points.
type wall struct {
	from, to   int
	rFrom, rTo float32
	chord      bool
}

func emitWalls(p Profile, f *Frame, base uint32) patch {
	var out patch
	walls := [4]wall{
		{from: 0, to: 1, rFrom: p.R1, rTo: p.R2, chord: true}, // leading flank
		{from: 1, to: 2, rFrom: p.R2, rTo: p.R2},              // tip land
		{from: 2, to: 3, rFrom: p.R2, rTo: p.R1, chord: true}, // trailing flank
		{from: 3, to: 4, rFrom: p.R1, rTo: p.R1},              // root land
	}
	for i, w := range walls {
		a := point(w.rFrom, f, w.from)
		b := point(w.rTo, f, w.to)
		n := radial(f, w.from)
		if w.chord {
			var ok bool
			if n, ok = chordNormal(a, b, n); !ok {
				out.Fallbacks++
			}
		}
		out.vertex(a.Vec3(p.HalfWidth), n)
		out.vertex(a.Vec3(-p.HalfWidth), n)
		out.vertex(b.Vec3(p.HalfWidth), n)
		out.vertex(b.Vec3(-p.HalfWidth), n)
		out.quad(base+uint32(i*4), false)
	}
	return out
}

func emitBore(p Profile, f *Frame, base uint32) patch {
	var out patch
	for _, k := range []int{0, 4} {
		q := point(p.R0, f, k)
		n := radial(f, k).Scale(-1)
		out.vertex(q.Vec3(-p.HalfWidth), n)
		out.vertex(q.Vec3(p.HalfWidth), n)
	}
	out.quad(base, false)
	return out
}
