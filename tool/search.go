// Package tool exposes the memory worker's search capability as a registrable
// model tool. Worker-side failures are intentionally surfaced as result text
// rather than errors: whatever comes back is relayed to the model verbatim,
// and a readable "search unavailable" line is more useful in a conversation
// than a failed tool call.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/membridge/membridge/core"
)

// Searcher is the single worker operation this tool needs.
type Searcher interface {
	Search(ctx context.Context, query, project string) string
}

// SearchTool lets the model query the worker's memory index for prior project
// history. It has no mutable state and is safe for concurrent use.
type SearchTool struct {
	searcher Searcher
	project  string
}

var _ core.Tool = (*SearchTool)(nil)

// NewSearchTool creates the search tool bound to a project.
func NewSearchTool(s Searcher, project string) *SearchTool {
	return &SearchTool{searcher: s, project: project}
}

// Name returns the tool identifier.
func (t *SearchTool) Name() string { return "search_memory" }

// Description returns the usage guidance shown to the model.
func (t *SearchTool) Description() string {
	return "Search the project's long-term memory for past sessions, decisions and tool activity. " +
		"Use when prior work on this project is relevant to the current task."
}

// Parameters returns the argument schema.
func (t *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Free-text search query",
			},
		},
		"required": []string{"query"},
	}
}

// Execute runs the search. Only a missing or blank query argument is an
// error; every downstream failure arrives as descriptive result text.
func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("search_memory: required argument %q is missing or empty", "query")
	}
	return t.searcher.Search(ctx, query, t.project), nil
}
