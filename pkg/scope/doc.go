// Package scope decides which outbound calls are in scope for recording.
//
// The matcher is a pure predicate evaluated once per call, before any
// correlation state is created. By default a call matches when its host
// contains the configured primary API hostname and its path contains the
// configured high-value endpoint, or when its host matches the alternate
// provider pattern unconditionally. The include-all switch widens scope to
// any call against the primary or alternate host.
//
// Malformed targets never fail the intercepted call: they are reported as
// out of scope.
package scope
