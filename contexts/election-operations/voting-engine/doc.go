// Package votingengine implements the vote-casting transaction inside the
// election-operations context.
//
// The module owns the single state transition of the system that must be
// correct under concurrency: accepting a ballot. It validates the voter, the
// election window and the selection, then appends exactly one vote row and
// flips the voter's ja_votou flag as one atomic storage unit. Business rules
// live in application/domain layers; infrastructure stays behind ports and
// adapters.
package votingengine
