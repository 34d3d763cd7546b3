package parallel

// MinBandRows is the smallest band handed to a worker. Smaller bands cost
// more in scheduling than they gain in balance.
const MinBandRows = 8

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Bands splits height rows into at most n bands of at least MinBandRows
// rows each. The bands cover [0, height) in order without overlap.
func Bands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if limit := (height + MinBandRows - 1) / MinBandRows; n > limit {
		n = limit
	}

	bands := make([]Band, 0, n)
	step, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := step
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}

// Rows calls fn once per band of the image, in parallel, and waits for all
// calls to return. fn must only touch the rows it is given.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	// Two bands per worker leaves room for stealing.
	bands := Bands(height, p.workers*2)
	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { fn(b.Y0, b.Y1) }
	}
	p.Run(tasks)
}
