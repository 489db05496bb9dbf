package corosched

import (
	"runtime"

	"github.com/corosched/corosched/internal/fiber"
)

// Func is the signature of a coroutine body: a scheduler and an opaque
// user argument, no return value. The scheduler handed to fn is the same
// Scheduler that created the coroutine; fn calls Scheduler.Yield on it to
// suspend.
type Func func(s *Scheduler, ud any)

// Coroutine is one entry in a Scheduler's coroutine table. It is never
// constructed directly by callers; Scheduler.New returns an id, and all
// further interaction goes through the Scheduler's methods.
type Coroutine struct {
	fn     Func
	ud     any
	status Status
	ctx    *fiber.Context
	sch    *Scheduler

	// savedSize/savedCap are a diagnostic watermark of the coroutine's own
	// goroutine stack usage at its last Yield, sampled via runtime.Stack.
	// They play no part in actually preserving the coroutine's state, which
	// the parked goroutine already does on its own.
	savedSize int
	savedCap  int
}

// newCoroutine allocates a coroutine record in the Ready state. The fiber
// context's entry routine is the trampoline that invokes fn; Resume reaps
// the slot once the context reports itself dead.
func newCoroutine(sch *Scheduler, fn Func, ud any) *Coroutine {
	co := &Coroutine{
		fn:     fn,
		ud:     ud,
		status: Ready,
		sch:    sch,
	}
	co.ctx = fiber.New(func(*fiber.Context) {
		co.fn(sch, co.ud)
	})
	return co
}

// sampleStack takes a diagnostic snapshot of the calling goroutine's stack
// trace and records its length as the coroutine's current saved-size
// watermark, growing savedCap only when the new sample exceeds the current
// capacity.
func (co *Coroutine) sampleStack() {
	buf := make([]byte, co.savedCap)
	if len(buf) == 0 {
		buf = make([]byte, 4096)
	}
	n := runtime.Stack(buf, false)
	limit := co.sch.StackSize()
	for n == len(buf) && len(buf) < limit {
		buf = make([]byte, len(buf)*2)
		n = runtime.Stack(buf, false)
	}
	if cap(buf) > co.savedCap {
		co.savedCap = cap(buf)
	}
	co.savedSize = n
	if co.savedSize > limit {
		fatal("coroutine %p stack usage %d exceeds configured stack size %d", co, co.savedSize, limit)
	}
}
