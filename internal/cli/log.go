// Package cli implements the px command-line interface.
//
// px resolves the project governing the working directory, detects its
// package manager from the lock file, and forwards commands to it. The
// install and uninstall commands additionally reconcile @types declaration
// packages in TypeScript projects.
//
// # Commands
//
//   - install, uninstall: forward with @types reconciliation
//   - run: forward a script, suggesting near matches for typos
//   - context: show the resolved project
//   - cache: inspect or reset the verification cache
//   - config: show configuration
//   - anything else: forwarded verbatim
//
// # Logging
//
// Logging defaults to warnings only so forwarded output stays clean.
// --verbose (-v), given before the subcommand, enables debug logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/px/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports library events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetReconcileHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnReconcileStart(_ context.Context, flow string, packages int) {
	h.logger.Debug("reconcile started", "flow", flow, "packages", packages)
}

func (h logHooks) OnReconcileComplete(_ context.Context, flow string, declarations, lookups int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("reconcile failed", "flow", flow, "error", err)
		return
	}
	h.logger.Debug("reconcile finished", "flow", flow, "declarations", declarations, "lookups", lookups, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, pkg, availability string) {
	h.logger.Debug("cache hit", "package", pkg, "availability", availability)
}

func (h logHooks) OnCacheMiss(_ context.Context, pkg string) {
	h.logger.Debug("cache miss", "package", pkg)
}

func (h logHooks) OnCacheFlush(_ context.Context, n int, err error) {
	h.logger.Debug("cache flushed", "entries", n, "error", err)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "host", host, "path", path, "error", err)
}

var (
	_ observability.ReconcileHooks = logHooks{}
	_ observability.CacheHooks     = logHooks{}
	_ observability.HTTPHooks      = logHooks{}
)
