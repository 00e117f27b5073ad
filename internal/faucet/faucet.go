package faucet

import (
	"context"
	"time"

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

const (
	defaultInterval = 5 * time.Second
	seenCapacity    = 1 << 16
)

// Faucet pays out funding requests a trusted verifier has already
// checked. It polls claims settled by that verifier and, trusting its
// judgement, transfers the requested amount to each claim's owner
// exactly once.
type Faucet struct {
	account *client.Account

	validator common.Address
	verifier  common.Address
	maxAmount amount.Amount
	interval  time.Duration

	seen  *storage.SeenSet
	since claims.Timestamp

	log *logrus.Entry
}

type Config struct {
	ValidatorAddress common.Address
	VerifierAddress  common.Address
	MaxAmount        amount.Amount

	// PollInterval throttles the listing loop; zero means the default.
	PollInterval time.Duration
}

func New(account *client.Account, cfg Config) (*Faucet, error) {
	seen, err := storage.NewSeenSet(seenCapacity)
	if err != nil {
		return nil, errors.Wrap(err, "building dedup set")
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultInterval
	}

	return &Faucet{
		account:   account,
		validator: cfg.ValidatorAddress,
		verifier:  cfg.VerifierAddress,
		maxAmount: cfg.MaxAmount,
		interval:  interval,
		seen:      seen,
		log:       logging.Component("faucet"),
	}, nil
}

// Run polls settled claims from the trusted verifier and pays each out
// once, advancing the position cursor past every claim it has observed.
// Poll failures are retried on the next tick; only context cancellation
// stops the loop.
func (f *Faucet) Run(ctx context.Context) error {
	f.log.WithField("address", f.account.Address().Hex()).Info("faucet running")

	for {
		batch, err := f.account.Client().ListSettledClaimsForSender(ctx, f.verifier, f.since)
		if err != nil {
			f.log.WithError(err).Error("listing settled claims")
		}

		for i := range batch {
			f.handle(ctx, &batch[i])
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.interval):
		}
	}
}

// handle pays out a single settled claim. The claim id is marked as seen
// before any payment attempt, so a failed transfer is never retried.
func (f *Faucet) handle(ctx context.Context, tsc *claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]) {
	f.since = f.since.Max(tsc.Timestamp.Tick())

	entry := f.log.WithField("claim", tsc.ID)

	signer, err := tsc.Data.RecoverSigner()
	if err != nil {
		entry.WithError(err).Error("checking settled claim signature")
		return
	}
	if signer != f.validator {
		entry.Error("settled claim not signed by the recognized validator")
		return
	}

	settled := tsc.Data.Message
	if !hasVerifier(settled.Verifiers, f.verifier) {
		entry.Error("recognized verifier absent from settling set")
		return
	}

	recipient := settled.VerifiedClaim.ClaimOwner

	amt, err := amount.ParseHex(settled.VerifiedClaim.Claim)
	if err != nil {
		entry.WithError(err).Error("parsing requested amount")
		return
	}

	if f.seen.Seen(settled.VerifiedClaim.ClaimID) {
		entry.Debug("claim already paid, skipping")
		return
	}
	f.seen.Mark(settled.VerifiedClaim.ClaimID)

	if amt.Cmp(f.maxAmount) > 0 {
		entry.Error("requested amount exceeds maximum")
		return
	}

	payID, err := f.account.Pay(ctx, recipient, amt)
	if err != nil {
		entry.WithError(err).WithField("recipient", recipient.Hex()).Error("transferring funds")
		return
	}

	entry.WithFields(logging.Fields{
		"recipient": recipient.Hex(),
		"amount":    amt.String(),
		"payment":   payID.Hex(),
	}).Info("paid out")
}

func hasVerifier(set []common.Address, want common.Address) bool {
	for _, a := range set {
		if a == want {
			return true
		}
	}

	return false
}
