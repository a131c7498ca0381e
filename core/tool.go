package core

import "context"

// Tool defines the interface for capabilities registered with the model.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a JSON-schema-like parameter map
//   - Handle errors gracefully (surface failures as result text where the
//     caller expects data, never panic)
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is provided to the LLM so it can decide when to invoke the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Execute runs the tool with arguments already decoded from JSON and
	// returns the text relayed back to the model as tool output.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
