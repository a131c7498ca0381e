package hook

import (
	"sync"
	"testing"
)

func TestTracker_InitializedSet(t *testing.T) {
	tr := NewTracker()
	if tr.IsInitialized("s1") {
		t.Fatal("fresh tracker should have no initialized sessions")
	}
	tr.MarkInitialized("s1")
	if !tr.IsInitialized("s1") {
		t.Fatal("s1 should be initialized")
	}
	// Idempotent re-mark.
	tr.MarkInitialized("s1")
	if !tr.IsInitialized("s1") {
		t.Fatal("s1 should stay initialized")
	}
	if tr.IsInitialized("s2") {
		t.Fatal("s2 was never initialized")
	}
}

func TestTracker_ContextSlotStates(t *testing.T) {
	tr := NewTracker()

	// State 1: never fetched.
	if _, _, fetched := tr.CachedContext(); fetched {
		t.Fatal("fresh slot should be unfetched")
	}

	// State 2: fetched-present.
	tr.StoreContext("ctx", true)
	value, present, fetched := tr.CachedContext()
	if !fetched || !present || value != "ctx" {
		t.Fatalf("expected fetched-present slot, got value=%q present=%v fetched=%v", value, present, fetched)
	}

	// Invalidation returns to state 1.
	tr.InvalidateContext()
	if _, _, fetched := tr.CachedContext(); fetched {
		t.Fatal("invalidated slot should be unfetched")
	}

	// State 3: fetched-absent (a remembered miss).
	tr.StoreContext("", false)
	value, present, fetched = tr.CachedContext()
	if !fetched || present || value != "" {
		t.Fatalf("expected fetched-absent slot, got value=%q present=%v fetched=%v", value, present, fetched)
	}
}

func TestTracker_HealthMemoized(t *testing.T) {
	tr := NewTracker()
	probes := 0
	probe := func() bool {
		probes++
		return true
	}

	for i := 0; i < 5; i++ {
		if !tr.Healthy(probe) {
			t.Fatal("expected healthy")
		}
	}
	if probes != 1 {
		t.Fatalf("expected exactly one probe, got %d", probes)
	}

	// A later probe claiming the opposite is never consulted.
	if !tr.Healthy(func() bool { return false }) {
		t.Fatal("memoized health must not be re-probed")
	}
}

func TestTracker_HealthMemoized_Unhealthy(t *testing.T) {
	tr := NewTracker()
	if tr.Healthy(func() bool { return false }) {
		t.Fatal("expected unhealthy")
	}
	// Even a recovered worker stays invisible for the process lifetime.
	if tr.Healthy(func() bool { return true }) {
		t.Fatal("unhealthy result must be memoized")
	}
}

func TestTracker_StartupToastPending_Once(t *testing.T) {
	tr := NewTracker()
	if !tr.StartupToastPending() {
		t.Fatal("first call should report pending")
	}
	for i := 0; i < 10; i++ {
		if tr.StartupToastPending() {
			t.Fatal("toast flag must flip exactly once")
		}
	}
}

func TestTracker_CurrentSession(t *testing.T) {
	tr := NewTracker()
	if got := tr.CurrentSession(); got != "" {
		t.Fatalf("expected empty current session, got %q", got)
	}
	tr.SetCurrentSession("s1")
	if got := tr.CurrentSession(); got != "s1" {
		t.Fatalf("expected s1, got %q", got)
	}
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			tr.SetCurrentSession(id)
			tr.MarkInitialized(id)
			tr.StoreContext("ctx", true)
			tr.InvalidateContext()
			_ = tr.Healthy(func() bool { return true })
			_ = tr.StartupToastPending()
			_ = tr.IsInitialized(id)
		}(i)
	}
	wg.Wait()
}
