package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Pool
// =============================================================================

func TestPool_Create(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", p.Workers())
	}
	if !p.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		p := NewPool(n)
		if p.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewPool(%d).Workers() = %d, want GOMAXPROCS", n, p.Workers())
		}
		p.Close()
	}
}

func TestPool_Run(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var counter atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	p.Run(tasks)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestPool_RunEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	p.Run(nil)
	p.Run([]func(){})
}

func TestPool_RunAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	if p.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	ran := false
	p.Run([]func(){func() { ran = true }})
	if !ran {
		t.Error("Run on a closed pool should execute inline")
	}
}

// =============================================================================
// Bands
// =============================================================================

func TestBands_Cover(t *testing.T) {
	tests := []struct {
		height, n int
		wantLen   int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{8, 4, 1},
		{9, 4, 2},
		{64, 4, 4},
		{100, 16, 13},
		{1080, 16, 16},
		{10, 0, 1},
	}
	for _, tt := range tests {
		bands := Bands(tt.height, tt.n)
		if len(bands) != tt.wantLen {
			t.Errorf("Bands(%d, %d) len = %d, want %d", tt.height, tt.n, len(bands), tt.wantLen)
			continue
		}
		y := 0
		for _, b := range bands {
			if b.Y0 != y || b.Y1 <= b.Y0 {
				t.Errorf("Bands(%d, %d): bad band %+v at row %d", tt.height, tt.n, b, y)
			}
			y = b.Y1
		}
		if y != tt.height {
			t.Errorf("Bands(%d, %d) cover %d rows", tt.height, tt.n, y)
		}
	}
}

func TestPool_RowsVisitsEachRowOnce(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const height = 257
	var hits [height]atomic.Int32
	p.Rows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			hits[y].Add(1)
		}
	})
	for y := range hits {
		if n := hits[y].Load(); n != 1 {
			t.Errorf("row %d visited %d times", y, n)
		}
	}
}
