// Package verify records and checks whether npm packages have usable
// TypeScript declaration packages in the @types scope.
//
// # Availability
//
// [Availability] is a tri-state: [Unknown] (the zero value, "never checked"),
// [HasTypes] and [NoTypes]. Stores return Unknown for packages they have not
// seen, so a missing entry is never mistaken for a negative result.
//
// # Stores
//
// A [Store] remembers availability across invocations. Reads and writes are
// cheap and in-memory; [Store.Flush] persists pending writes:
//
//   - [FileStore]: JSON file under the user config directory (default)
//   - [RedisStore]: shared cache for teams and CI runners
//   - [MemoryStore]: in-process map, useful in tests
//   - [NullStore]: remembers nothing (--no-cache)
//
// Entries never expire. A package that gains declarations after being
// recorded as [NoTypes] stays that way until the cache is cleared.
//
// # Checking
//
// [RegistryChecker] asks the npm registry whether a declaration package
// exists and its most recently published version is not deprecated. It never
// returns an error: every failure is logged at debug level and reported as
// [NoTypes].
package verify
