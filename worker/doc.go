// Package worker contains the HTTP client for the external memory worker
// process. The worker owns every hard problem (summarization, embeddings,
// full-text search, persistence); this client treats it as an opaque
// collaborator behind a fixed REST contract on a local port.
//
// The client is deliberately failure-silent: every operation performs exactly
// one bounded request and normalizes any transport error, timeout or non-2xx
// status to a safe fallback (false, nil, absent, or a descriptive string).
// Callers never need error handling and never retry. The single exception is
// Search, which surfaces failures as human-readable text because its output is
// relayed verbatim to the model as tool output.
package worker
