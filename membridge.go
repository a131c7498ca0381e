// Package membridge provides a high-level façade over the hook handlers,
// session tracker and worker client that together adapt a host editor's
// plugin-hook API to a local memory worker process. Most hosts interact with
// this package by:
//  1. Creating a Plugin via New() (optionally overriding config, logger and
//     the host output channels)
//  2. Forwarding lifecycle events (session created/idle, user message, system
//     prompt assembly, tool completion) to the matching Plugin method
//  3. Registering SearchTool() with the model and routing the context-view
//     command through ShowContext()
//
// The façade delegates all behavior to the hook package while keeping setup
// ergonomics concise. Every method degrades silently when the worker is
// absent; nothing here can fail the host.
package membridge

import (
	"context"
	"os"

	"github.com/membridge/membridge/config"
	"github.com/membridge/membridge/core"
	"github.com/membridge/membridge/hook"
	"github.com/membridge/membridge/logging"
	"github.com/membridge/membridge/tool"
	"github.com/membridge/membridge/worker"
)

// Options configures the Plugin instance.
type Options struct {
	// Config supplies the worker address, project name and probe timeout.
	// The zero value triggers config.Load("") resolution (per-user file plus
	// environment overrides).
	Config config.Config

	// Worker overrides the HTTP client, primarily for tests. Defaults to a
	// worker.Client built from Config.
	Worker hook.WorkerAPI

	// Notifier receives user-visible toasts. Nil disables them.
	Notifier core.Notifier

	// Messenger renders model-invisible conversation output. Nil disables it.
	Messenger core.Messenger

	// CWD is attached to observations lacking a working directory. Defaults
	// to the process working directory.
	CWD string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Plugin is the high-level façade aggregating the handler, tracker and worker
// client. Construct exactly one per host plugin instantiation; its tracker
// carries the process-lifetime session state.
type Plugin struct {
	cfg     config.Config
	handler *hook.Handler
	search  core.Tool
}

// New creates a Plugin with optional overrides. Any unset dependency is
// initialized from configuration or a safe default.
func New(optFns ...func(o *Options)) *Plugin {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.OrNoOp(opts.Logger)

	cfg := opts.Config
	if cfg == (config.Config{}) {
		loaded, err := config.Load("")
		if err != nil {
			logger.Debug("config load failed, using defaults", "error", err)
		}
		cfg = loaded
	}

	w := opts.Worker
	if w == nil {
		w = worker.NewClient(cfg.WorkerURL, func(o *worker.Options) {
			o.HealthTimeout = cfg.HealthTimeoutDuration()
			o.Logger = logger
		})
	}

	cwd := opts.CWD
	if cwd == "" {
		cwd, _ = os.Getwd()
	}

	handler := hook.NewHandler(w, cfg.Project, func(o *hook.Options) {
		o.Notifier = opts.Notifier
		o.Messenger = opts.Messenger
		o.CWD = cwd
		o.Logger = logger
	})

	return &Plugin{
		cfg:     cfg,
		handler: handler,
		search:  tool.NewSearchTool(w, cfg.Project),
	}
}

// Project returns the resolved project name reported to the worker.
func (p *Plugin) Project() string { return p.cfg.Project }

// SearchTool returns the memory-search capability for registration with the
// model.
func (p *Plugin) SearchTool() core.Tool { return p.search }

// SessionStarted forwards the host's session-created notification.
func (p *Plugin) SessionStarted(ctx context.Context, sessionID string) {
	p.handler.SessionStarted(ctx, sessionID)
}

// UserMessage forwards a user-authored message.
func (p *Plugin) UserMessage(ctx context.Context, sessionID, text string) {
	p.handler.UserMessage(ctx, sessionID, text)
}

// TransformSystemPrompt injects project memory into the outgoing system
// prompt, returning it unchanged on any failure.
func (p *Plugin) TransformSystemPrompt(ctx context.Context, sessionID, prompt string) string {
	return p.handler.TransformSystemPrompt(ctx, sessionID, prompt)
}

// ToolExecuted forwards the host's after-tool hook.
func (p *Plugin) ToolExecuted(ctx context.Context, ev core.ToolEvent) {
	p.handler.ToolExecuted(ctx, ev)
}

// SessionIdle forwards the host's end-of-turn/inactivity signal together with
// the conversation history.
func (p *Plugin) SessionIdle(ctx context.Context, sessionID string, history []core.Message) {
	p.handler.SessionIdle(ctx, sessionID, history)
}

// SubagentStopped forwards the host's subagent-completion signal.
func (p *Plugin) SubagentStopped(ctx context.Context, sessionID string) {
	p.handler.SubagentStopped(ctx, sessionID)
}

// ShowContext runs the context-view command and reports how the host
// dispatcher should proceed.
func (p *Plugin) ShowContext(ctx context.Context, sessionID string) core.CommandOutcome {
	return p.handler.ShowContext(ctx, sessionID)
}
