package corosched

// StackSize is the default per-coroutine stack-size budget, 1 MiB. It bounds
// the diagnostic stack-usage watermark sampled at Yield; see
// Coroutine.sampleStack.
const StackSize = 1 << 20

// DefaultInitialCapacity is the default coroutine table capacity a fresh
// Scheduler starts with.
const DefaultInitialCapacity = 16

// Option configures a Scheduler at Open time.
type Option func(*config)

type config struct {
	stackSize       int
	initialCapacity int
	logger          logger
}

func defaultConfig() config {
	return config{
		stackSize:       StackSize,
		initialCapacity: DefaultInitialCapacity,
		logger:          defaultLogger(),
	}
}

// WithStackSize overrides the default 1 MiB stack-size budget.
func WithStackSize(n int) Option {
	return func(c *config) { c.stackSize = n }
}

// WithInitialCapacity overrides the default initial table capacity of 16.
func WithInitialCapacity(n int) Option {
	return func(c *config) { c.initialCapacity = n }
}

// WithLogger attaches a zerolog.Logger the scheduler uses to trace New,
// Resume, Yield, and death events at debug level. The default logger is
// disabled (zerolog.Nop()).
func WithLogger(l logger) Option {
	return func(c *config) { c.logger = l }
}
