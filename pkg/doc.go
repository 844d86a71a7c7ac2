// Package pkg provides the libraries behind px, a package-manager dispatcher
// for JavaScript projects.
//
// # Overview
//
// px finds the project governing the working directory, detects its package
// manager from the lock file, and forwards commands to it. In TypeScript
// projects it also keeps @types declaration packages in step with installs
// and uninstalls. The pkg directory is organized into three areas:
//
//  1. Project resolution ([project], [declaration])
//  2. Reconciliation ([reconcile], [verify], [integrations])
//  3. Execution and support ([command], [config], [errors], [observability])
//
// # Architecture
//
// The data flow of `px install react`:
//
//	working directory
//	         ↓
//	    [project] package (root, lock file, manager, tsconfig)
//	         ↓
//	    [reconcile] package (which @types packages to add)
//	         ↓            ↘
//	    [verify] cache     [integrations/npm] registry lookups
//	         ↓
//	    [command] package (plan, echo and run the manager)
//
// # Quick Start
//
// Plan the commands for an install:
//
//	pctx, err := project.Locator{}.Resolve()
//	if err != nil {
//	    return err // errors.ErrCodeContextNotFound: "Package manager not found!"
//	}
//
//	checker := verify.NewRegistryChecker(npm.NewClient(npm.Options{}), nil)
//	engine := reconcile.New(reconcile.Options{
//	    Project: pctx,
//	    Store:   verify.NewFileStore(path),
//	    Checker: checker,
//	})
//
//	args := []string{"install", "react"}
//	result, err := engine.Install(ctx, reconcile.InstallRequest{
//	    Packages: reconcile.Packages(args),
//	    Dev:      command.IsDevInstall(args[1:]),
//	})
//	cmds := reconcile.InstallCommands(pctx.Manager, args, result)
//	// npm install react
//	// npm install -D @types/react
//
// # Main Packages
//
// [project] - Ancestor search over directory listings. Strict root finding
// requires package.json next to a lock file; relaxed root finding (monorepo
// subpackages) only package.json.
//
// [declaration] - DefinitelyTyped naming (@babel/core -> @types/babel__core)
// and package-name extraction from manager arguments.
//
// [verify] - Tri-state availability, the verification cache (file, Redis,
// memory, null) and the registry checker.
//
// [reconcile] - The install and uninstall flows and command planning.
//
// [integrations] - Shared registry HTTP client; [integrations/npm] decodes
// package documents keeping version publication order.
//
// [command] - Manager verb normalization and subprocess execution.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test -tags integration ./pkg/...  # Include live registry tests
//
// [project]: https://pkg.go.dev/github.com/matzehuels/px/pkg/project
// [declaration]: https://pkg.go.dev/github.com/matzehuels/px/pkg/declaration
// [verify]: https://pkg.go.dev/github.com/matzehuels/px/pkg/verify
// [reconcile]: https://pkg.go.dev/github.com/matzehuels/px/pkg/reconcile
// [integrations]: https://pkg.go.dev/github.com/matzehuels/px/pkg/integrations
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/px/pkg/integrations/npm
// [command]: https://pkg.go.dev/github.com/matzehuels/px/pkg/command
// [config]: https://pkg.go.dev/github.com/matzehuels/px/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/px/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/px/pkg/observability
package pkg
