package noisefx

import (
	"image"
	"math"
	"testing"
)

func TestEvaluate_PinnedScenario(t *testing.T) {
	got := Evaluate(42, Coord{X: 10, Y: 20})
	want := RGBA{
		R: 13402803.0 / (1 << 24),
		G: 2496051.0 / (1 << 24),
		B: 11075218.0 / (1 << 24),
		A: 1,
	}
	if got != want {
		t.Errorf("Evaluate(42, (10, 20)) = %+v, want %+v", got, want)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	coords := []Coord{{0, 0}, {0.5, 0.5}, {-3.25, 1e6}, {1919.5, 1079.5}}
	for _, seed := range []uint32{0, 1, 42, math.MaxUint32} {
		for _, c := range coords {
			a := Evaluate(seed, c)
			b := Evaluate(seed, c)
			if a != b {
				t.Errorf("Evaluate(%d, %v) not reproducible: %v vs %v", seed, c, a, b)
			}
		}
	}
}

func TestEvaluate_AlphaAndRange(t *testing.T) {
	for seed := uint32(0); seed < 16; seed++ {
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				c := Evaluate(seed*2654435761, PixelCenter(image.Point{X: -16, Y: 7}, x, y))
				if c.A != 1 {
					t.Fatalf("alpha = %v, want exactly 1", c.A)
				}
				for _, v := range []float32{c.R, c.G, c.B} {
					if v < 0 || v >= 1 {
						t.Fatalf("channel %v outside [0, 1)", v)
					}
				}
			}
		}
	}
}

func TestEvaluate_SeedChangesOutput(t *testing.T) {
	c := Coord{X: 10.5, Y: 3.5}
	if Evaluate(1, c) == Evaluate(2, c) {
		t.Error("different seeds produced the same pixel")
	}
}

// correlation returns the Pearson correlation of a and b.
func correlation(a, b []float64) float64 {
	n := float64(len(a))
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= n
	mb /= n
	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	return cov / math.Sqrt(va*vb)
}

func TestEvaluate_Decorrelated(t *testing.T) {
	const size = 128
	for _, seed := range []uint32{0, 42, 12345} {
		var red [size][size]float64
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				red[y][x] = float64(Evaluate(seed, PixelCenter(image.Point{}, x, y)).R)
			}
		}

		var left, right, up, down []float64
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if x+1 < size {
					left = append(left, red[y][x])
					right = append(right, red[y][x+1])
				}
				if y+1 < size {
					up = append(up, red[y][x])
					down = append(down, red[y+1][x])
				}
			}
		}

		if c := correlation(left, right); math.Abs(c) > 0.05 {
			t.Errorf("seed %d: horizontal neighbour correlation = %.4f", seed, c)
		}
		if c := correlation(up, down); math.Abs(c) > 0.05 {
			t.Errorf("seed %d: vertical neighbour correlation = %.4f", seed, c)
		}
	}
}

func TestEvaluate_ChannelsDecorrelated(t *testing.T) {
	var r, g, b []float64
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			c := Evaluate(7, PixelCenter(image.Point{}, x, y))
			r = append(r, float64(c.R))
			g = append(g, float64(c.G))
			b = append(b, float64(c.B))
		}
	}
	if c := correlation(r, g); math.Abs(c) > 0.05 {
		t.Errorf("R/G correlation = %.4f", c)
	}
	if c := correlation(g, b); math.Abs(c) > 0.05 {
		t.Errorf("G/B correlation = %.4f", c)
	}
}

func TestPixelCenter(t *testing.T) {
	got := PixelCenter(image.Point{X: 100, Y: -2}, 3, 4)
	want := Coord{X: 103.5, Y: 2.5}
	if got != want {
		t.Errorf("PixelCenter = %v, want %v", got, want)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Evaluate(42, Coord{X: float32(i & 1023), Y: float32(i >> 10)})
	}
}
