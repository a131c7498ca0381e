// Package core provides the shared domain types exchanged between the host
// adapter, the hook handlers and the worker client. It defines:
//
//   - Messages (role-tagged conversation entries supplied by the host)
//   - ToolEvents (one completed tool invocation, as reported by the host)
//   - Host output channels (Notifier for toasts, Messenger for in-conversation
//     text the model never sees)
//   - CommandOutcome (the tagged result a command handler returns to the host
//     dispatcher instead of throwing a control-flow sentinel)
//   - The Tool interface used to register capabilities with the model
//
// The package intentionally keeps implementation concerns (HTTP transport,
// session bookkeeping, host wiring) out of scope, exposing small interfaces so
// any host runtime can be adapted without touching the handler logic.
package core
