package core

// FieldID names one of the scalar layers carried by a FieldGrid.
type FieldID int

const (
	FieldDensity FieldID = iota
	FieldInfrastructure
	FieldResources
	FieldSignal

	fieldCount
)

// FieldGrid stores the four coupled scalar fields of a toroidal W×H
// lattice in row-major order. Each field keeps a current and a next
// buffer so a tick can read frozen values while writing the following
// state; Swap promotes all next buffers together.
type FieldGrid struct {
	W, H int
	cur  [fieldCount][]float32
	nxt  [fieldCount][]float32
}

// NewFieldGrid allocates a grid with the given dimensions.
func NewFieldGrid(w, h int) *FieldGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &FieldGrid{W: w, H: h}
	for f := FieldID(0); f < fieldCount; f++ {
		g.cur[f] = make([]float32, w*h)
		g.nxt[f] = make([]float32, w*h)
	}
	return g
}

// Cur exposes the current buffer of a field for direct reads.
func (g *FieldGrid) Cur(f FieldID) []float32 { return g.cur[f] }

// Next exposes the next buffer of a field for direct writes.
func (g *FieldGrid) Next(f FieldID) []float32 { return g.nxt[f] }

// Index returns the linear slice index for coordinates (x, y).
func (g *FieldGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *FieldGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Get reads the current value of field f at (x, y), wrapping the
// coordinates.
func (g *FieldGrid) Get(f FieldID, x, y int) float32 {
	x, y = g.Wrap(x, y)
	return g.cur[f][y*g.W+x]
}

// Set writes a clamped value into the current buffer of field f at
// (x, y), wrapping the coordinates. Used during seeding and in tests;
// the step sweep writes into Next directly.
func (g *FieldGrid) Set(f FieldID, x, y int, v float32) {
	x, y = g.Wrap(x, y)
	g.cur[f][y*g.W+x] = Clamp01(v)
}

// Laplacian4 returns the 4-neighbor discrete Laplacian of field f at
// (x, y): the orthogonal neighbor sum minus four times the center, with
// toroidal wraparound.
func (g *FieldGrid) Laplacian4(f FieldID, x, y int) float32 {
	w, h := g.W, g.H
	x, y = g.Wrap(x, y)
	buf := g.cur[f]
	xl := x - 1
	if xl < 0 {
		xl = w - 1
	}
	xr := x + 1
	if xr == w {
		xr = 0
	}
	yu := y - 1
	if yu < 0 {
		yu = h - 1
	}
	yd := y + 1
	if yd == h {
		yd = 0
	}
	row := y * w
	return buf[row+xl] + buf[row+xr] + buf[yu*w+x] + buf[yd*w+x] - 4*buf[row+x]
}

// Swap promotes the next buffers of all four fields to current. Callers
// must only invoke it once every cell of every field has been written
// for the tick.
func (g *FieldGrid) Swap() {
	for f := FieldID(0); f < fieldCount; f++ {
		g.cur[f], g.nxt[f] = g.nxt[f], g.cur[f]
	}
}

// Clear zeroes both buffers of every field.
func (g *FieldGrid) Clear() {
	for f := FieldID(0); f < fieldCount; f++ {
		for i := range g.cur[f] {
			g.cur[f][i] = 0
			g.nxt[f][i] = 0
		}
	}
}

// Clamp01 bounds v to the unit interval every field value lives in.
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
