// Package corosched implements a minimal asymmetric stackful coroutine
// library for cooperative multitasking on a single host goroutine. A
// Scheduler owns a coroutine table; the host creates coroutines with New and
// drives them by explicitly Resuming a chosen id. A running coroutine
// returns control to the host by calling Yield on the Scheduler it was
// handed; coroutines never run concurrently and never transfer control to
// each other directly.
package corosched

// Scheduler owns the coroutine table and arbitrates which coroutine, if any,
// is currently running. A Scheduler must be used from a single host
// goroutine for its entire lifetime.
type Scheduler struct {
	// workingStack is a fixed-size, address-stable byte arena allocated
	// once in Open. It is the backing store sampleStack's diagnostic
	// watermarks are bounds-checked against, keeping the configured
	// stack-size budget observable as a real allocation rather than just a
	// number.
	workingStack []byte

	coTable []*Coroutine
	nco     int
	running int

	log logger
}

// Open allocates a fresh Scheduler. With no options, capacity starts at 16
// and the stack-size budget is 1 MiB.
func Open(opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Scheduler{
		workingStack: make([]byte, cfg.stackSize),
		coTable:      make([]*Coroutine, cfg.initialCapacity),
		running:      noCoroutine,
		log:          cfg.logger,
	}
	s.log.Debug().Int("capacity", cfg.initialCapacity).Int("stackSize", cfg.stackSize).Msg("corosched: open")
	return s
}

// Close destroys every registered coroutine and releases the table. A
// coroutine that is Ready and was never resumed has no goroutine backing it
// yet, so clearing its slot is enough; one that is Suspended is parked
// inside its own Yield call, and Close kills it there so its goroutine
// actually exits instead of staying parked for the rest of the process.
// Closing while a coroutine is RUNNING, or from within a coroutine body, is
// a programmer error; the host is single-threaded and, by contract, never
// inside a coroutine when it calls Close.
func (s *Scheduler) Close() {
	if s.running != noCoroutine {
		fatal("close called while coroutine %d is running", s.running)
	}
	ids := s.LiveIDs()
	for _, id := range ids {
		s.coTable[id].ctx.Kill()
		s.coTable[id] = nil
	}
	s.nco = 0
	s.log.Debug().Int("destroyed", len(ids)).Msg("corosched: close")
}

// New registers a coroutine body and returns its id. The coroutine starts in
// the Ready state; it does not run until the host calls Resume with the
// returned id.
//
// Slot selection: if the table is full, its capacity doubles and the new
// coroutine takes the first slot of the new half. Otherwise the table is
// scanned starting at nco modulo its capacity, a heuristic meant to skip
// over slots likely still occupied, and the first empty slot found is used.
func (s *Scheduler) New(fn Func, ud any) int {
	co := newCoroutine(s, fn, ud)

	if s.nco >= len(s.coTable) {
		oldCap := len(s.coTable)
		newCap := oldCap * 2
		grown := make([]*Coroutine, newCap)
		copy(grown, s.coTable)
		s.coTable = grown
		id := oldCap
		s.coTable[id] = co
		s.nco++
		s.log.Debug().Int("id", id).Int("capacity", newCap).Msg("corosched: new (grew table)")
		return id
	}

	capacity := len(s.coTable)
	start := s.nco % capacity
	for i := 0; i < capacity; i++ {
		idx := (start + i) % capacity
		if s.coTable[idx] == nil {
			s.coTable[idx] = co
			s.nco++
			s.log.Debug().Int("id", idx).Msg("corosched: new")
			return idx
		}
	}
	fatal("new: no empty slot found with nco=%d cap=%d", s.nco, capacity)
	return -1
}

// Resume transfers control to the coroutine identified by id. It returns
// once that coroutine either yields or its body returns.
//
// Preconditions: no coroutine may currently be running, and id must be
// within [0, capacity). A call on a nil slot (a dead coroutine) is a silent
// no-op. A call on a RUNNING or already-DEAD coroutine is a programmer
// error.
func (s *Scheduler) Resume(id int) {
	if s.running != noCoroutine {
		fatal("resume: coroutine %d is already running", s.running)
	}
	if id < 0 || id >= len(s.coTable) {
		fatal("resume: id %d out of range [0, %d)", id, len(s.coTable))
	}
	co := s.coTable[id]
	if co == nil {
		return
	}
	switch co.status {
	case Ready, Suspend:
		from := co.status
		s.running = id
		co.status = Running
		s.log.Debug().Int("id", id).Str("from", from.String()).Msg("corosched: resume")
		co.ctx.SwitchTo()
		if co.ctx.Dead() {
			s.reap(id)
		}
	case Running, Dead:
		fatal("resume: coroutine %d is %s", id, co.status)
	}
}

// Yield suspends the currently running coroutine and returns control to
// whichever call to Resume started or last resumed it. It is a programmer
// error to call Yield when no coroutine is running, or from any goroutine
// other than the running coroutine's own.
func (s *Scheduler) Yield() {
	if s.running == noCoroutine {
		fatal("yield: called outside a running coroutine")
	}
	id := s.running
	co := s.coTable[id]
	co.sampleStack()
	co.status = Suspend
	s.running = noCoroutine
	s.log.Debug().Int("id", id).Int("savedSize", co.savedSize).Msg("corosched: yield")
	co.ctx.Yield()
}

// Status reports the lifecycle state of the coroutine identified by id. A
// nil slot, including one that was never assigned, always reports Dead. id
// must be within [0, capacity).
func (s *Scheduler) Status(id int) Status {
	if id < 0 || id >= len(s.coTable) {
		fatal("status: id %d out of range [0, %d)", id, len(s.coTable))
	}
	co := s.coTable[id]
	if co == nil {
		return Dead
	}
	return co.status
}

// Running returns the id of the currently executing coroutine, or -1 if no
// coroutine is running.
func (s *Scheduler) Running() int {
	return s.running
}

// reap clears a dead coroutine's slot: destroy the record, clear the slot,
// decrement nco, mark no coroutine running.
func (s *Scheduler) reap(id int) {
	s.coTable[id] = nil
	s.nco--
	s.running = noCoroutine
	s.log.Debug().Int("id", id).Msg("corosched: dead")
}

// LiveIDs returns the ids of every non-dead coroutine, in ascending order.
// It exists for diagnostics and for Close's teardown walk.
func (s *Scheduler) LiveIDs() []int {
	ids := make([]int, 0, s.nco)
	for id, co := range s.coTable {
		if co == nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Len reports how many coroutines are currently live (status != Dead).
func (s *Scheduler) Len() int {
	return s.nco
}

// Cap reports the coroutine table's current capacity.
func (s *Scheduler) Cap() int {
	return len(s.coTable)
}

// StackSize reports the scheduler's configured stack-size budget, the
// length of its address-stable working-stack arena (see the Scheduler
// struct's workingStack field).
func (s *Scheduler) StackSize() int {
	return len(s.workingStack)
}
