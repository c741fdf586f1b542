// Package trace defines the data model shared by the interception engine:
// the Exchange Record (the persisted, immutable pairing of one request and
// its possibly absent response) and the snapshots it is built from.
//
// An Exchange Record is constructed exactly once per correlated pair, or
// once per orphan at shutdown, and is never modified after it has been
// handed to a sink.
package trace
