package fiber

import "testing"

// TestSwitchToRunsEntryOnce verifies that a fresh Context only begins
// running its entry on the first SwitchTo, not on creation.
func TestSwitchToRunsEntryOnce(t *testing.T) {
	started := false
	c := New(func(c *Context) {
		started = true
	})
	if started {
		t.Fatal("entry ran before first SwitchTo")
	}
	c.SwitchTo()
	if !started {
		t.Fatal("entry did not run after SwitchTo")
	}
	if !c.Dead() {
		t.Fatal("context should be dead after entry returns without yielding")
	}
}

// TestYieldRoundTrip verifies that a value written to a local before Yield is
// observed unchanged after the next SwitchTo resumes the same goroutine.
func TestYieldRoundTrip(t *testing.T) {
	var seen []int
	c := New(func(c *Context) {
		x := 10
		seen = append(seen, x)
		c.Yield()
		seen = append(seen, x)
		x = 20
		c.Yield()
		seen = append(seen, x)
	})
	c.SwitchTo()
	c.SwitchTo()
	c.SwitchTo()
	want := []int{10, 10, 20}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("got %v, want %v", seen, want)
		}
	}
	if !c.Dead() {
		t.Fatal("context should be dead after entry returns")
	}
}

// TestInterleaving drives two contexts alternately and checks the observed
// order reflects the resume sequence, not creation order.
func TestInterleaving(t *testing.T) {
	var order []int
	var a, b *Context
	a = New(func(c *Context) {
		order = append(order, 1)
		c.Yield()
		order = append(order, 2)
	})
	b = New(func(c *Context) {
		order = append(order, 10)
		c.Yield()
		order = append(order, 20)
	})
	a.SwitchTo()
	b.SwitchTo()
	a.SwitchTo()
	b.SwitchTo()

	want := []int{1, 10, 2, 20}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
	if !a.Dead() || !b.Dead() {
		t.Fatal("both contexts should be dead")
	}
}

// TestKillBeforeStartIsNoop verifies that killing a context whose entry has
// never run just marks it dead without starting a goroutine.
func TestKillBeforeStartIsNoop(t *testing.T) {
	started := false
	c := New(func(c *Context) {
		started = true
	})
	c.Kill()
	if !c.Dead() {
		t.Fatal("context should be dead after Kill")
	}
	if started {
		t.Fatal("entry should never have run")
	}
}

// TestKillUnparksSuspendedContext verifies that killing a context parked
// inside Yield unwinds its goroutine instead of leaving it parked forever,
// and that code after the killing Yield call never executes.
func TestKillUnparksSuspendedContext(t *testing.T) {
	reachedAfterYield := false
	c := New(func(c *Context) {
		c.Yield()
		reachedAfterYield = true
	})
	c.SwitchTo()
	if c.Dead() {
		t.Fatal("context should still be alive after yielding once")
	}
	c.Kill()
	if !c.Dead() {
		t.Fatal("context should be dead after Kill")
	}
	if reachedAfterYield {
		t.Fatal("entry should not have resumed past the killing Yield")
	}
}
