// Package httputil provides HTTP helpers for the registry client.
//
// [Retry] re-runs a request only for errors wrapped in [RetryableError]
// (network failures, 5xx responses), doubling the delay between attempts.
// px calls it with a single attempt unless the user opts into retries through
// the "retries" config key, because registry failures are already recovered
// as "no types" and must never hold up the user's install.
package httputil
