package hook

import "sync"

// contextSlot is the single-slot context cache. Three states: not fetched
// since the last invalidation, fetched-absent, fetched-present. Remembering a
// fetch miss matters: a worker that reported "no context" is not asked again
// until the next session-created event invalidates the slot.
type contextSlot struct {
	fetched bool
	value   string
	present bool
}

// Tracker holds the process-local session state mutated by hook handlers:
// the current session identifier, the set of sessions that completed remote
// initialization, the cached context slot, the memoized worker health and the
// one-shot startup toast flag.
//
// Contract:
//   - A session id enters the initialized set only after a successful remote
//     init; failed attempts leave it absent so a later hook can retry.
//   - Initialized membership is write-once; nothing ever removes an id.
//   - Health is probed at most once per process lifetime and never re-checked,
//     even if the worker later restarts.
//
// Field access is mutex-guarded, but the mutex is never held across a network
// call: two hooks racing on an uninitialized session may both reach the remote
// init endpoint. The worker tolerates duplicate init calls, so that window is
// accepted instead of serialized.
type Tracker struct {
	mu               sync.Mutex
	currentSessionID string
	initialized      map[string]struct{}
	context          contextSlot
	healthy          *bool
	startupToastDone bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{initialized: make(map[string]struct{})}
}

// CurrentSession returns the last-seen session identifier, or "".
func (t *Tracker) CurrentSession() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentSessionID
}

// SetCurrentSession records id as the active session.
func (t *Tracker) SetCurrentSession(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentSessionID = id
}

// IsInitialized reports whether id completed remote initialization.
func (t *Tracker) IsInitialized(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.initialized[id]
	return ok
}

// MarkInitialized adds id to the initialized set. Idempotent.
func (t *Tracker) MarkInitialized(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.initialized[id] = struct{}{}
}

// InvalidateContext clears the cache slot, forcing the next context read to
// fetch from the worker.
func (t *Tracker) InvalidateContext() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.context = contextSlot{}
}

// CachedContext returns the slot contents. fetched=false means the slot is
// invalid and the caller must fetch; present distinguishes fetched-present
// from fetched-absent.
func (t *Tracker) CachedContext() (value string, present, fetched bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.context.value, t.context.present, t.context.fetched
}

// StoreContext records a fetch result, including a miss.
func (t *Tracker) StoreContext(value string, present bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.context = contextSlot{fetched: true, value: value, present: present}
}

// Healthy returns the memoized worker health, running probe on the first call
// only. The probe executes outside the lock; if two callers race here the
// first stored result wins and the duplicate probe is discarded.
func (t *Tracker) Healthy(probe func() bool) bool {
	t.mu.Lock()
	if t.healthy != nil {
		h := *t.healthy
		t.mu.Unlock()
		return h
	}
	t.mu.Unlock()

	h := probe()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.healthy == nil {
		t.healthy = &h
	}
	return *t.healthy
}

// StartupToastPending flips the one-shot startup notification flag. It returns
// true exactly once per process.
func (t *Tracker) StartupToastPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startupToastDone {
		return false
	}
	t.startupToastDone = true
	return true
}
