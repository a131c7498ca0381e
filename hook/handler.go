package hook

import (
	"context"

	"github.com/membridge/membridge/core"
	"github.com/membridge/membridge/logging"
	"github.com/membridge/membridge/worker"
)

// emptyPromptFallback is sent as the init prompt when the triggering hook has
// no user text to offer (empty first message, or init piggybacked on a
// non-message hook).
const emptyPromptFallback = "(no prompt)"

// Memory context is wrapped in these markers before being prepended to the
// system prompt so the model can tell injected history from host instructions.
const (
	memoryTagOpen  = "<project-memory>"
	memoryTagClose = "</project-memory>"
)

// User-facing notification texts. Notifications are the only channel that ever
// shows a failure to the user.
const (
	toastWorkerOnline  = "Memory worker connected"
	toastWorkerOffline = "Memory worker offline, continuing without memory"
	toastSessionSaved  = "Session memory saved"

	messageNoContext = "No project context recorded yet."
)

// WorkerAPI is the subset of the worker client used by the handlers. Using an
// interface keeps this package loosely coupled and testable.
type WorkerAPI interface {
	Healthy(ctx context.Context) bool
	InitSession(ctx context.Context, sessionID, project, prompt string) *worker.InitResult
	SendObservation(ctx context.Context, ev core.ToolEvent)
	Summarize(ctx context.Context, sessionID, lastUser, lastAssistant string)
	CompleteSession(ctx context.Context, sessionID string)
	SubagentComplete(ctx context.Context, sessionID, project string)
	FetchContext(ctx context.Context, project string) (string, bool)
	Search(ctx context.Context, query, project string) string
}

// Options configures a Handler.
type Options struct {
	// Tracker holds the process-local session state. A fresh Tracker is
	// created when nil; supply one to share state across handler instances.
	Tracker *Tracker

	// Notifier receives user-visible toasts. Nil disables notifications.
	Notifier core.Notifier

	// Messenger renders model-invisible conversation output. Nil disables the
	// context-view command's output.
	Messenger core.Messenger

	// CWD is attached to observations that arrive without a working
	// directory.
	CWD string

	// Logger receives debug diagnostics. Defaults to no-op.
	Logger logging.Logger
}

// Handler adapts host lifecycle events to worker calls. One Handler is
// constructed per plugin instance and shared by every hook; all mutable state
// lives in the Tracker.
type Handler struct {
	tracker   *Tracker
	worker    WorkerAPI
	project   string
	cwd       string
	notifier  core.Notifier
	messenger core.Messenger
	logger    logging.Logger
}

// NewHandler creates a Handler for the given worker client and project name.
func NewHandler(w WorkerAPI, project string, optFns ...func(o *Options)) *Handler {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Tracker == nil {
		opts.Tracker = NewTracker()
	}
	return &Handler{
		tracker:   opts.Tracker,
		worker:    w,
		project:   project,
		cwd:       opts.CWD,
		notifier:  opts.Notifier,
		messenger: opts.Messenger,
		logger:    logging.OrNoOp(opts.Logger),
	}
}

// Tracker exposes the handler's session state, primarily for tests and for
// hosts that want to inspect the current session id.
func (h *Handler) Tracker() *Tracker {
	return h.tracker
}

// SessionStarted handles the host's session-created notification: record the
// id as current, invalidate the context cache so the next prompt assembly
// re-fetches, and run the lazy health probe. The first session of the process
// additionally shows the one-shot worker status toast.
func (h *Handler) SessionStarted(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	h.tracker.SetCurrentSession(sessionID)
	h.tracker.InvalidateContext()
	healthy := h.healthy(ctx)
	if h.tracker.StartupToastPending() {
		if healthy {
			h.toast(toastWorkerOnline)
		} else {
			h.toast(toastWorkerOffline)
		}
	}
}

// UserMessage handles a user-authored message. The first message of a session
// carries the literal prompt text into remote initialization.
func (h *Handler) UserMessage(ctx context.Context, sessionID, text string) {
	h.ensureSessionInit(ctx, sessionID, text)
}

// TransformSystemPrompt is invoked once per model turn while the host builds
// the outgoing system prompt. It opportunistically ensures session init, then
// prepends the tagged project context when the worker is healthy and has any.
// Every failure is silent: prompt assembly must never fail the turn, so the
// worst case returns the prompt unchanged.
func (h *Handler) TransformSystemPrompt(ctx context.Context, sessionID, prompt string) string {
	h.ensureSessionInit(ctx, sessionID, "")
	if !h.healthy(ctx) {
		return prompt
	}
	text, ok := h.projectContext(ctx)
	if !ok {
		return prompt
	}
	return memoryTagOpen + "\n" + text + "\n" + memoryTagClose + "\n\n" + prompt
}

// ToolExecuted handles the after-tool hook: ensure session init, then record
// the invocation as an observation. Never blocks long (the client's transport
// timeout bounds it) and never fails the tool call.
func (h *Handler) ToolExecuted(ctx context.Context, ev core.ToolEvent) {
	if ev.SessionID == "" {
		return
	}
	if !h.ensureSessionInit(ctx, ev.SessionID, "") {
		return
	}
	if ev.CWD == "" {
		ev.CWD = h.cwd
	}
	h.worker.SendObservation(ctx, ev)
}

// SessionIdle handles the host's end-of-turn/inactivity signal: the most
// recent user and assistant texts are sent to the worker for summarization,
// then the session is completed and a success toast shown. With an unhealthy
// worker the whole sequence is a no-op; failure is only ever visible as the
// absence of that success toast.
func (h *Handler) SessionIdle(ctx context.Context, sessionID string, history []core.Message) {
	if sessionID == "" {
		sessionID = h.tracker.CurrentSession()
	}
	if sessionID == "" {
		return
	}
	if !h.healthy(ctx) {
		return
	}
	lastUser := core.LastByRole(history, core.RoleUser)
	lastAssistant := core.LastByRole(history, core.RoleAssistant)
	h.worker.Summarize(ctx, sessionID, lastUser, lastAssistant)
	h.worker.CompleteSession(ctx, sessionID)
	h.toast(toastSessionSaved)
}

// SubagentStopped notifies the worker that a subagent finished so it can
// process any observations the subagent queued.
func (h *Handler) SubagentStopped(ctx context.Context, sessionID string) {
	if sessionID == "" {
		sessionID = h.tracker.CurrentSession()
	}
	if sessionID == "" {
		return
	}
	if !h.healthy(ctx) {
		return
	}
	h.worker.SubagentComplete(ctx, sessionID, h.project)
}

// ShowContext implements the explicit context-view command. The returned
// outcome tells the host dispatcher to stop default processing; only a
// missing session id yields CommandNoSession. Offline and empty-context cases
// still count as handled.
func (h *Handler) ShowContext(ctx context.Context, sessionID string) core.CommandOutcome {
	if sessionID == "" {
		sessionID = h.tracker.CurrentSession()
	}
	if sessionID == "" {
		return core.CommandNoSession
	}
	if !h.healthy(ctx) {
		h.toast(toastWorkerOffline)
		return core.CommandHandled
	}
	text, ok := h.worker.FetchContext(ctx, h.project)
	if !ok {
		h.showMessage(messageNoContext)
		return core.CommandHandled
	}
	h.showMessage(text)
	return core.CommandHandled
}

// healthy bridges the tracker's memoized health state to the client: the
// remote probe runs on the first call only, every later call answers from the
// tracker.
func (h *Handler) healthy(ctx context.Context) bool {
	return h.tracker.Healthy(func() bool { return h.worker.Healthy(ctx) })
}

// ensureSessionInit performs at most one successful remote initialization per
// session id. Returns true once the session is initialized, false when init
// is impossible right now (no id, worker unhealthy, init failed). Failures
// leave the id uninitialized so any later hook retries.
func (h *Handler) ensureSessionInit(ctx context.Context, sessionID, prompt string) bool {
	if sessionID == "" {
		return false
	}
	if h.tracker.IsInitialized(sessionID) {
		return true
	}
	if !h.healthy(ctx) {
		return false
	}
	if prompt == "" {
		prompt = emptyPromptFallback
	}
	res := h.worker.InitSession(ctx, sessionID, h.project, prompt)
	if res == nil {
		return false
	}
	h.tracker.MarkInitialized(sessionID)
	h.tracker.SetCurrentSession(sessionID)
	h.logger.Debug("session initialized", "session_id", sessionID, "db_id", res.SessionDBID, "prompt_number", res.PromptNumber)
	return true
}

// projectContext returns the cached context, fetching it once per cache
// generation. Fetch misses are cached too.
func (h *Handler) projectContext(ctx context.Context) (string, bool) {
	if value, present, fetched := h.tracker.CachedContext(); fetched {
		return value, present
	}
	value, present := h.worker.FetchContext(ctx, h.project)
	h.tracker.StoreContext(value, present)
	return value, present
}

// toast delivers a best-effort notification. A panicking Notifier is contained
// here; notification failure must never leak into a hook result.
func (h *Handler) toast(msg string) {
	if h.notifier == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.logger.Debug("notification delivery failed", "panic", r)
		}
	}()
	h.notifier.Toast(msg)
}

// showMessage renders model-invisible conversation output, same containment as
// toast.
func (h *Handler) showMessage(text string) {
	if h.messenger == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			h.logger.Debug("message delivery failed", "panic", r)
		}
	}()
	h.messenger.ShowMessage(text)
}
