package core

// Notifier is the host's user-visible notification channel (a toast or status
// line). Delivery is best-effort by contract: handlers never let a failed or
// panicking notification escape into hook results.
type Notifier interface {
	// Toast shows a short, transient status message to the user.
	Toast(msg string)
}

// Messenger emits text into the conversation that the user can read but the
// model never receives. Used by the context-view command.
type Messenger interface {
	// ShowMessage renders text in the conversation, invisible to the model.
	ShowMessage(text string)
}

// CommandOutcome is the tagged result a command handler returns to the host's
// command dispatcher. It replaces the thrown-sentinel pattern some hosts use to
// signal "handled": the dispatcher inspects the value instead of recovering an
// exception.
type CommandOutcome int

const (
	// CommandNotHandled lets the host continue default command processing.
	CommandNotHandled CommandOutcome = iota

	// CommandHandled terminates command dispatch; the command was consumed
	// regardless of whether its work succeeded.
	CommandHandled

	// CommandNoSession reports that no session identifier could be resolved,
	// so the command could not be attributed to a conversation.
	CommandNoSession
)

// String returns the string representation of the outcome.
func (o CommandOutcome) String() string {
	switch o {
	case CommandNotHandled:
		return "not_handled"
	case CommandHandled:
		return "handled"
	case CommandNoSession:
		return "no_session"
	default:
		return "unknown"
	}
}

// ToolEvent describes one completed tool invocation as reported by the host's
// after-tool hook. Input and Output carry whatever the host decoded from the
// tool call; they are serialized as-is when forwarded to the worker.
type ToolEvent struct {
	SessionID string
	ToolName  string
	Input     any
	Output    any
	CWD       string
}
