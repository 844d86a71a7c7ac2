// Package reconcile decides which @types declaration packages accompany an
// install or uninstall, and plans the resulting package-manager commands.
//
// # Install
//
// [Engine.Install] resolves each requested package through the verification
// store. Packages with unknown availability are checked against the registry
// in one bounded-concurrency batch, written back, and the store is flushed
// once. Packages in the @types scope are never checked and never produce a
// declaration. Nothing happens outside TypeScript projects.
//
// [InstallCommands] turns the result into commands. Declarations are dev
// dependencies, so a regular install needs a second invocation:
//
//	npm install react lodash
//	npm install -D @types/react @types/lodash
//
// while a dev install carries them in the same one:
//
//	npm install -D react lodash @types/react @types/lodash
//
// # Uninstall
//
// [Engine.Uninstall] removes the declaration package of each requested
// package when the manifest lists it. It never touches the network.
package reconcile
