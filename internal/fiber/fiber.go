// Package fiber implements the low-level machine-context primitive beneath
// corosched: creation, save/restore, and switching of an execution context.
//
// Go gives user code no way to snapshot or relocate a goroutine's stack, so a
// Context is not a register/stack-pointer pair the way a ucontext_t would be.
// Instead it is a goroutine parked on a rendezvous handoff: the goroutine's
// own stack and locals are the saved state, and SwitchTo/Yield are the
// save/restore points. This gives every caller of Context the same contract
// a machine-context primitive normally offers (create once, switch in,
// switch out, repeat, then a final switch in that does not return control
// until the entry routine itself returns) without unsafe code.
package fiber

import (
	"sync"

	zenq "github.com/alphadose/zenq/v2"
)

// kind distinguishes a normal resume handoff from a kill request sent across
// the same rendezvous queue.
type kind int

const (
	resume kind = iota
	kill
)

// signal is the token passed across the rendezvous queues.
type signal struct {
	kind kind
}

// killed unwinds a parked context's goroutine out through Yield and entry
// without ever reaching entry's return path. run recovers it; nothing else
// should.
type killed struct{}

// Context is a suspendable, resumable execution context backed by a
// dedicated goroutine and a pair of ZenQ rendezvous queues, one per
// direction. alphadose/zenq's Write/Read pair is a CAS-and-park
// single-producer/single-consumer handoff, which is exactly the shape of a
// two-party context switch and a closer domain analogue to a hand-rolled
// context-switch primitive than an unbuffered channel.
type Context struct {
	toFiber  *zenq.ZenQ[signal]
	toCaller *zenq.ZenQ[signal]
	start    sync.Once
	launched bool
	entry    func(*Context)
	dead     bool
}

// New creates a context that will invoke entry, on its own goroutine, the
// first time SwitchTo is called. entry must call Yield before returning if
// the caller is meant to resume it again; once entry returns, the context is
// permanently dead and any further SwitchTo is a caller bug (see
// corosched.Scheduler, which never calls SwitchTo again once a slot is
// cleared).
func New(entry func(*Context)) *Context {
	return &Context{
		toFiber:  zenq.New[signal](),
		toCaller: zenq.New[signal](),
		entry:    entry,
	}
}

// SwitchTo transfers control to the context, blocking the calling goroutine
// until the context either calls Yield or its entry routine returns.
func (c *Context) SwitchTo() {
	c.start.Do(func() {
		c.launched = true
		go c.run()
	})
	c.toFiber.Write(signal{kind: resume})
	c.toCaller.Read()
}

// Kill terminates the context without ever resuming entry again. If entry
// has never been started, Kill just marks the context dead. If the
// context's goroutine is parked inside Yield, Kill unparks it with a
// sentinel that unwinds entry's call stack instead of returning into it,
// and blocks until that unwind has finished, so the goroutine is guaranteed
// gone before Kill returns. Kill on an already-dead context is a no-op.
func (c *Context) Kill() {
	if c.dead {
		return
	}
	if !c.launched {
		c.dead = true
		return
	}
	c.toFiber.Write(signal{kind: kill})
	c.toCaller.Read()
}

// run is the context's goroutine body. It parks immediately, waiting for the
// first SwitchTo or a Kill, then invokes entry. entry may call Yield any
// number of times; each Yield parks run again until the next SwitchTo or
// Kill.
func (c *Context) run() {
	sig := c.toFiber.Read()
	if sig.kind == kill {
		c.dead = true
		c.toCaller.Write(signal{})
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(killed); !ok {
					panic(r)
				}
			}
		}()
		c.entry(c)
	}()
	c.dead = true
	c.toCaller.Write(signal{})
}

// Yield parks the calling goroutine, which must be the context's own
// goroutine running inside entry, until the next SwitchTo or Kill. If the
// next handoff is a Kill, Yield never returns to its caller: it panics with
// the context's internal kill sentinel, which unwinds back up through entry
// and is recovered by run.
func (c *Context) Yield() {
	c.toCaller.Write(signal{})
	sig := c.toFiber.Read()
	if sig.kind == kill {
		panic(killed{})
	}
}

// Dead reports whether the context has permanently stopped, either because
// entry returned on its own or because Kill tore it down. Only meaningful
// after a SwitchTo or Kill has returned control to the caller.
func (c *Context) Dead() bool {
	return c.dead
}
