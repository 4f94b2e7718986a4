package buffer

// Option configures a ResponseBuffer using the functional options pattern.
type Option func(*bufferOptions)

type bufferOptions struct {
	initialCapacity int
	maxSize         int
	stats           *Statistics
}

// WithInitialCapacity sets the capacity allocated up front. Negative values are ignored.
func WithInitialCapacity(n int) Option {
	return func(opts *bufferOptions) {
		if n >= 0 {
			opts.initialCapacity = n
		}
	}
}

// WithMaxSize bounds the number of bytes the buffer accepts. Zero means unbounded.
func WithMaxSize(n int) Option {
	return func(opts *bufferOptions) {
		if n >= 0 {
			opts.maxSize = n
		}
	}
}

// WithStatistics makes the buffer report into a shared Statistics, so that a
// producer creating many buffers can aggregate them.
func WithStatistics(stats *Statistics) Option {
	return func(opts *bufferOptions) {
		opts.stats = stats
	}
}

func applyOptions(options ...Option) *bufferOptions {
	opts := &bufferOptions{
		initialCapacity: defaultInitialCapacity,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
