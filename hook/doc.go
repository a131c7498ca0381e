// Package hook implements the session bookkeeping and the lifecycle handlers
// the host invokes on plugin events (session created, user message, system
// prompt assembly, tool completion, idle, subagent stop, context command).
//
// Two rules govern every handler: never fail the host's operation and never
// surface an error anywhere but the notification channel. All worker calls
// degrade to fallbacks inside the worker client, so handler logic reduces to
// guarded state transitions over the Tracker.
package hook
