// Package metrics provides Prometheus counters for the interception engine.
//
// Failures on the persistence path are swallowed rather than propagated
// to the intercepted call. These counters are the operational-visibility
// channel for those swallowed failures.
package metrics
