// Package integrations provides the shared HTTP client for package registry
// APIs.
//
// # Overview
//
// Registry-specific clients live in subpackages and embed [Client]:
//
//   - [npm]: npm registry metadata, used to verify @types packages
//
// # Client Pattern
//
//	client := npm.NewClient(npm.Options{})
//	doc, err := client.FetchPackument(ctx, "@types/react")
//
// [Client] handles:
//   - Status mapping (200 ok, 404 [ErrNotFound], everything else [ErrNetwork])
//   - Optional retries for network errors and 5xx responses
//   - Default request headers
//   - HTTP events through [observability.HTTP]
//
// [npm]: github.com/matzehuels/px/pkg/integrations/npm
// [observability.HTTP]: github.com/matzehuels/px/pkg/observability.HTTP
package integrations
