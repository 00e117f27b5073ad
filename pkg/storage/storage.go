package storage

import (
	"github.com/ethereum/go-ethereum/common"
)

// ProcessedClaim is the audit record kept for every claim a verifier has
// decided on. Records are append-only; a present record means the claim
// id must never be processed again.
type ProcessedClaim struct {
	Submitter common.Address `msgpack:"s"`
	Seconds   uint64         `msgpack:"t"`
	Outcome   string         `msgpack:"o"`
}

// VerifierStore persists the state a long-lived verifier needs across
// restarts: per-submitter rate-limit timestamps and the set of claim ids
// already decided. A store is exclusively owned by one verifier process.
type VerifierStore interface {
	// LastAccepted returns the last accepted request time (seconds since
	// epoch) recorded for a submitter, with ok=false when no record
	// exists.
	LastAccepted(submitter common.Address) (uint64, bool, error)

	// RecordAccepted durably records the last accepted request time for a
	// submitter. The write is flushed before returning.
	RecordAccepted(submitter common.Address, seconds uint64) error

	// MarkProcessed durably records the decision taken for a claim id.
	MarkProcessed(id common.Hash, rec *ProcessedClaim) error

	// Processed returns the recorded decision for a claim id, or
	// ErrNotFound.
	Processed(id common.Hash) (*ProcessedClaim, error)

	Close() error
}
