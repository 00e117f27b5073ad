package verifier

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vsl-labs/vsl-go/internal/utils/logging"
	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/client"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
	"github.com/vsl-labs/vsl-go/pkg/storage"
)

// RejectReason names the first pipeline check a claim failed. Rejections
// are logged locally and never reported back to the submitter.
type RejectReason string

const (
	ReasonBadSignature  RejectReason = "bad signature"
	ReasonVerifierSet   RejectReason = "not addressed to this verifier alone"
	ReasonBadAmount     RejectReason = "unparseable requested amount"
	ReasonAmountTooHigh RejectReason = "requested amount above maximum"
	ReasonDuplicate     RejectReason = "claim already processed"
	ReasonTooEarly      RejectReason = "request before waiting window elapsed"
	ReasonBadProof      RejectReason = "eligibility proof rejected"
	ReasonStoreFailure  RejectReason = "persistence failure"
	ReasonSettleFailure RejectReason = "settlement request failed"
)

// Decision is the terminal outcome for one claim. Each claim reaches
// exactly one terminal state: settled, or rejected with the reason of the
// first failed check.
type Decision struct {
	ClaimID   common.Hash
	Submitter common.Address
	Settled   bool
	Reason    RejectReason
}

func settled(id common.Hash, submitter common.Address) Decision {
	return Decision{ClaimID: id, Submitter: submitter, Settled: true}
}

func rejected(id common.Hash, submitter common.Address, reason RejectReason) Decision {
	return Decision{ClaimID: id, Submitter: submitter, Reason: reason}
}

// Verifier decides submitted funding requests addressed to its own
// address, one at a time. A request's claim field carries the hex amount
// asked for; first-time submitters must cite a settled claim proving the
// master account paid them. The rate-limit store is exclusively owned by
// this process.
type Verifier struct {
	account *client.Account
	store   storage.VerifierStore
	seen    *storage.SeenSet

	validator common.Address
	master    common.Address
	maxAmount amount.Amount
	minWait   uint64

	now func() claims.Timestamp
	log *logrus.Entry
}

type Config struct {
	ValidatorAddress     common.Address
	MasterAccountAddress common.Address
	MaxAmount            amount.Amount
	MinWaitingTime       uint64
	SeenCapacity         int
}

const defaultSeenCapacity = 1 << 16

func New(account *client.Account, store storage.VerifierStore, cfg Config) (*Verifier, error) {
	capacity := cfg.SeenCapacity
	if capacity <= 0 {
		capacity = defaultSeenCapacity
	}

	seen, err := storage.NewSeenSet(capacity)
	if err != nil {
		return nil, errors.Wrap(err, "building dedup set")
	}

	return &Verifier{
		account:   account,
		store:     store,
		seen:      seen,
		validator: cfg.ValidatorAddress,
		master:    cfg.MasterAccountAddress,
		maxAmount: cfg.MaxAmount,
		minWait:   cfg.MinWaitingTime,
		now:       claims.Now,
		log:       logging.Component("verifier"),
	}, nil
}

// Process runs the ordered checks for one submitted claim and commits the
// outcome. The first failed check rejects; a rejection is final for the
// claim id.
func (v *Verifier) Process(ctx context.Context, req *cryptography.Signed[claims.SubmittedClaim]) (Decision, error) {
	msg, ok := cryptography.CheckAndStripSignature(req)
	if !ok {
		return rejected(common.Hash{}, common.Address{}, ReasonBadSignature), nil
	}

	id := msg.ClaimID()
	submitter := msg.From

	if len(msg.To) != 1 || msg.To[0] != v.account.Address() {
		return rejected(id, submitter, ReasonVerifierSet), nil
	}

	requested, err := amount.ParseHex(msg.Claim)
	if err != nil {
		return rejected(id, submitter, ReasonBadAmount), nil
	}
	if requested.Cmp(v.maxAmount) > 0 {
		return rejected(id, submitter, ReasonAmountTooHigh), nil
	}

	if v.seen.Seen(id) {
		return rejected(id, submitter, ReasonDuplicate), nil
	}
	if _, err := v.store.Processed(id); err == nil {
		v.seen.Mark(id)
		return rejected(id, submitter, ReasonDuplicate), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		if errors.Is(err, storage.ErrCorruptRecord) {
			return rejected(id, submitter, ReasonStoreFailure), err
		}
		return rejected(id, submitter, ReasonStoreFailure), nil
	}

	now := v.now().Seconds

	last, exists, err := v.store.LastAccepted(submitter)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptRecord) {
			return rejected(id, submitter, ReasonStoreFailure), err
		}
		return rejected(id, submitter, ReasonStoreFailure), nil
	}

	if exists {
		if last+v.minWait > now {
			return v.finish(rejected(id, submitter, ReasonTooEarly))
		}
	} else if reason := v.checkProof(ctx, msg.Proof, submitter); reason != "" {
		return v.finish(rejected(id, submitter, reason))
	}

	// Persist before settling: a settlement failure then rate-limits the
	// submitter until the next window instead of allowing unbounded
	// retries.
	if err := v.store.RecordAccepted(submitter, now); err != nil {
		return rejected(id, submitter, ReasonStoreFailure), nil
	}

	if _, err := v.account.SettleClaim(ctx, id); err != nil {
		v.log.WithError(err).WithField("claim", id.Hex()).Error("requesting settlement")
		return v.finish(rejected(id, submitter, ReasonSettleFailure))
	}

	return v.finish(settled(id, submitter))
}

// checkProof validates a first-time submitter's eligibility: proof names
// a settled claim, signed by the trusted validator, whose content is a
// payment from the master account to the submitter. An empty reason means
// the proof holds.
func (v *Verifier) checkProof(ctx context.Context, proof string, submitter common.Address) RejectReason {
	proofID, err := claims.ParseHash("proof", proof)
	if err != nil {
		return ReasonBadProof
	}

	settledClaim, err := v.account.Client().GetSettledClaimByID(ctx, proofID)
	if err != nil {
		return ReasonBadProof
	}

	signer, err := settledClaim.Data.RecoverSigner()
	if err != nil {
		return ReasonBadProof
	}
	if signer != v.validator {
		return ReasonBadProof
	}

	var pay claims.PayMessage
	dec := json.NewDecoder(bytes.NewReader([]byte(settledClaim.Data.Message.VerifiedClaim.Claim)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pay); err != nil {
		return ReasonBadProof
	}

	payer, ok := pay.Sender()
	if !ok || payer != v.master {
		return ReasonBadProof
	}
	if pay.To != submitter {
		return ReasonBadProof
	}

	return ""
}

// finish records the terminal decision for the claim id so it is never
// reprocessed, then returns it. Audit-record write failures are logged
// but do not change the decision.
func (v *Verifier) finish(d Decision) (Decision, error) {
	v.seen.Mark(d.ClaimID)

	outcome := "settled"
	if !d.Settled {
		outcome = string(d.Reason)
	}

	rec := &storage.ProcessedClaim{
		Submitter: d.Submitter,
		Seconds:   v.now().Seconds,
		Outcome:   outcome,
	}
	if err := v.store.MarkProcessed(d.ClaimID, rec); err != nil {
		v.log.WithError(err).WithField("claim", d.ClaimID.Hex()).Error("recording decision")
	}

	return d, nil
}
