// Package correlate tracks in-flight calls and assembles exchange records.
//
// The correlator exclusively owns the Pending Call set. Each in-scope call
// moves through a small per-call state machine: Begin registers it,
// Complete pairs it with its response and forwards the assembled record to
// the sink, Abort removes it without producing a record, and Drain (called
// exactly once at shutdown) converts every remaining pending call into an
// orphan record with a nil response.
//
// In-flight calls run on arbitrary goroutines, so the pending set is
// mutex-guarded; Begin registers the identifier before returning, so no
// two in-flight calls ever share one.
package correlate
