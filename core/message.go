package core

// Conversation roles as reported by the host's message history. Only user and
// assistant entries are relevant to summarization; other roles (tool, system)
// are ignored by LastByRole.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry of the host's conversation history. The host owns
// the history; this module only ever reads it.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// LastByRole returns the text of the most recent message authored by the given
// role, scanning from the end of the history backward. It returns the empty
// string when no message of that role exists, which callers treat as "nothing
// to report" rather than an error.
func LastByRole(history []Message, role string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == role {
			return history[i].Text
		}
	}
	return ""
}
