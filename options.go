package noisefx

// Option configures a Graph during creation.
//
// Example:
//
//	g, err := noisefx.CreateGraph(dev, dst,
//	    noisefx.WithWorkers(4),
//	    noisefx.WithSeedSource(noisefx.NewSeedSource(key)),
//	)
type Option func(*graphOptions)

type graphOptions struct {
	seeds   *SeedSource
	workers int
}

func defaultOptions() graphOptions {
	return graphOptions{
		seeds:   DefaultSeedSource(),
		workers: 0, // GOMAXPROCS
	}
}

// WithSeedSource makes the graph draw its seeds from s instead of the
// process-wide source. Tests use it to get reproducible seeds.
func WithSeedSource(s *SeedSource) Option {
	return func(o *graphOptions) {
		if s != nil {
			o.seeds = s
		}
	}
}

// WithWorkers sets the number of goroutines used by the grayscale and
// blend nodes. Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *graphOptions) {
		o.workers = n
	}
}
