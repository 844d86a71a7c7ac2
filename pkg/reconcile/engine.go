package reconcile

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/px/pkg/declaration"
	"github.com/matzehuels/px/pkg/observability"
	"github.com/matzehuels/px/pkg/project"
	"github.com/matzehuels/px/pkg/verify"
)

// DefaultConcurrency bounds parallel registry lookups.
const DefaultConcurrency = 8

// Project is the view of the governing project the engine needs.
// *project.Context implements it.
type Project interface {
	IsTypeScript() (bool, error)
	Manifest() (*project.Manifest, error)
}

// Options configures an [Engine].
type Options struct {
	Project     Project
	Store       verify.Store   // Defaults to an in-memory store
	Checker     verify.Checker // Required for installs
	Concurrency int            // Defaults to DefaultConcurrency
	Logger      *log.Logger
}

// Engine reconciles declaration packages for one project.
type Engine struct {
	project     Project
	store       verify.Store
	checker     verify.Checker
	concurrency int
	logger      *log.Logger
}

// New creates an engine from opts.
func New(opts Options) *Engine {
	if opts.Store == nil {
		opts.Store = verify.NewMemoryStore()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{
		project:     opts.Project,
		store:       opts.Store,
		checker:     opts.Checker,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
}

// InstallRequest describes the packages being installed.
type InstallRequest struct {
	Packages []string
	Dev      bool // The original command carries a dev-dependency flag
}

// InstallResult lists the declaration packages to install.
type InstallResult struct {
	Declarations []string

	// SameInvocation is true when Declarations go into the original command
	// rather than a second dev-dependency install.
	SameInvocation bool

	// Lookups counts registry checks performed.
	Lookups int
}

// Install returns the declaration packages for req, in request order.
// The error is non-nil only when the project cannot be inspected or ctx is
// cancelled mid-batch; registry and cache failures degrade silently.
func (e *Engine) Install(ctx context.Context, req InstallRequest) (result *InstallResult, err error) {
	result = &InstallResult{SameInvocation: req.Dev}

	ts, err := e.project.IsTypeScript()
	if err != nil || !ts {
		return result, err
	}

	pkgs := candidates(req.Packages)
	start := time.Now()
	hooks := observability.Reconcile()
	hooks.OnReconcileStart(ctx, "install", len(pkgs))
	defer func() {
		hooks.OnReconcileComplete(ctx, "install", len(result.Declarations), result.Lookups, time.Since(start), err)
	}()

	states, pending := e.lookupStore(ctx, pkgs)
	if len(pending) > 0 {
		if err := e.checkAll(ctx, pkgs, states, pending); err != nil {
			return result, err
		}
		result.Lookups = len(pending)
		e.persist(ctx, pkgs, states, pending)
	}

	for i, pkg := range pkgs {
		if states[i] == verify.HasTypes {
			result.Declarations = append(result.Declarations, declaration.Name(pkg))
		}
	}
	e.logger.Debug("resolved declarations", "requested", len(pkgs), "declarations", result.Declarations, "lookups", result.Lookups)
	return result, nil
}

// lookupStore resolves cached availability. It returns the state per
// package and the indexes that still need a registry check.
func (e *Engine) lookupStore(ctx context.Context, pkgs []string) ([]verify.Availability, []int) {
	hooks := observability.Cache()
	states := make([]verify.Availability, len(pkgs))
	var pending []int
	for i, pkg := range pkgs {
		a, err := e.store.Get(ctx, pkg)
		if err != nil {
			e.logger.Debug("cache read failed", "package", pkg, "error", err)
		}
		if a.Known() {
			hooks.OnCacheHit(ctx, pkg, a.String())
			states[i] = a
			continue
		}
		hooks.OnCacheMiss(ctx, pkg)
		pending = append(pending, i)
	}
	return states, pending
}

// checkAll verifies the pending packages concurrently. Results land in
// states by index so completion order does not matter.
func (e *Engine) checkAll(ctx context.Context, pkgs []string, states []verify.Availability, pending []int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, i := range pending {
		g.Go(func() error {
			states[i] = e.checker.Check(gctx, declaration.Name(pkgs[i]))
			return nil
		})
	}
	g.Wait()

	// An interrupted batch must not be persisted: its failures are
	// cancellations, not registry answers.
	return ctx.Err()
}

func (e *Engine) persist(ctx context.Context, pkgs []string, states []verify.Availability, pending []int) {
	for _, i := range pending {
		if err := e.store.Set(ctx, pkgs[i], states[i]); err != nil {
			e.logger.Debug("cache update failed", "package", pkgs[i], "error", err)
		}
	}
	err := e.store.Flush(ctx)
	observability.Cache().OnCacheFlush(ctx, len(pending), err)
	if err != nil {
		e.logger.Warn("could not save verification cache", "error", err)
	}
}

// Uninstall returns the declaration packages to remove alongside packages:
// those the manifest lists that the user did not already request.
func (e *Engine) Uninstall(ctx context.Context, packages []string) (decls []string, err error) {
	ts, err := e.project.IsTypeScript()
	if err != nil || !ts {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Reconcile()
	hooks.OnReconcileStart(ctx, "uninstall", len(packages))
	defer func() {
		hooks.OnReconcileComplete(ctx, "uninstall", len(decls), 0, time.Since(start), err)
	}()

	manifest, err := e.project.Manifest()
	if err != nil {
		return nil, err
	}

	for _, pkg := range candidates(packages) {
		decl := declaration.Name(pkg)
		if !manifest.Declares(decl) || slices.Contains(packages, decl) || slices.Contains(decls, decl) {
			continue
		}
		decls = append(decls, decl)
	}
	e.logger.Debug("declarations to remove", "manifest", manifest.Path, "declarations", decls)
	return decls, nil
}

// candidates removes duplicates and @types packages, preserving order.
func candidates(pkgs []string) []string {
	out := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		if declaration.IsDeclaration(pkg) || slices.Contains(out, pkg) {
			continue
		}
		out = append(out, pkg)
	}
	return out
}
