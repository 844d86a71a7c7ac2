// Package npm provides an HTTP client for the npm registry metadata API.
//
// # Overview
//
// px only needs two facts about a package document ("packument"): whether it
// exists, and whether its most recently published version is deprecated.
// [Client.FetchPackument] requests the abbreviated install document
// (application/vnd.npm.install-v1+json), which is much smaller than the full
// document and still carries the deprecation notice of every version.
//
// # Version Order
//
// The registry lists "versions" in publication order. [Packument.Versions]
// preserves that order (the document is decoded with easyjson's lexer rather
// than into a Go map) and [Packument.Latest] is simply the last entry. This is
// deliberately not a semver comparison and not dist-tags.latest.
//
// # Usage
//
//	client := npm.NewClient(npm.Options{})
//	doc, err := client.FetchPackument(ctx, "@types/react")
//	if errors.Is(err, integrations.ErrNotFound) {
//	    // no declaration package
//	}
//	if v, ok := doc.Latest(); ok && !v.IsDeprecated() {
//	    // usable
//	}
package npm
