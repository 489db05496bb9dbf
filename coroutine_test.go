package corosched

import "testing"

// TestStatusString checks the human-readable form used in log lines and
// panic messages.
func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		Dead:    "dead",
		Ready:   "ready",
		Running: "running",
		Suspend: "suspend",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

// TestCloseDestroysSuspendedCoroutines checks that Close tears down a
// coroutine that is merely suspended, not just dead ones, leaving the table
// empty (Len is 0 and the id reports Dead). It also checks that Close
// actually terminates the suspended coroutine's backing goroutine rather
// than abandoning it: Close blocks until the kill unwinds past the
// coroutine's parked Yield call, so if body code after that Yield ever ran,
// it would already have run by the time Close returns.
func TestCloseDestroysSuspendedCoroutines(t *testing.T) {
	s := Open()
	reachedAfterYield := false
	id := s.New(func(s *Scheduler, ud any) {
		s.Yield()
		reachedAfterYield = true
	}, nil)
	s.Resume(id)
	if s.Status(id) != Suspend {
		t.Fatalf("coroutine should be Suspend before Close")
	}

	s.Close()
	if s.Len() != 0 {
		t.Fatalf("nco after Close = %d, want 0", s.Len())
	}
	if s.Status(id) != Dead {
		t.Fatalf("status after Close = %v, want Dead", s.Status(id))
	}
	if reachedAfterYield {
		t.Fatal("coroutine body resumed past Yield after Close killed it; its goroutine leaked")
	}
}

// TestUserDataPassedThrough checks that the opaque ud argument reaches the
// coroutine body unchanged.
func TestUserDataPassedThrough(t *testing.T) {
	s := Open()
	defer s.Close()

	var got any
	id := s.New(func(s *Scheduler, ud any) {
		got = ud
	}, "payload")
	s.Resume(id)

	if got != "payload" {
		t.Fatalf("ud observed in body = %v, want %q", got, "payload")
	}
}

// TestNewDoesNotAffectOtherStatuses checks that New leaves every other
// coroutine's status untouched.
func TestNewDoesNotAffectOtherStatuses(t *testing.T) {
	s := Open()
	defer s.Close()

	a := s.New(func(s *Scheduler, ud any) { s.Yield() }, nil)
	s.Resume(a)
	if s.Status(a) != Suspend {
		t.Fatalf("a should be Suspend")
	}

	b := s.New(func(s *Scheduler, ud any) {}, nil)
	if s.Status(a) != Suspend {
		t.Fatalf("a's status changed after unrelated New: %v", s.Status(a))
	}
	if s.Status(b) != Ready {
		t.Fatalf("b's status after New = %v, want Ready", s.Status(b))
	}
}
