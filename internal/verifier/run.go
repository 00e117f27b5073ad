package verifier

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vsl-labs/vsl-go/internal/utils/logging"
	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

const subscriptionBuffer = 64

// Run subscribes to submitted claims naming this verifier and processes
// them strictly one at a time, to completion, before pulling the next.
// Loss of the subscription and store corruption are fatal; every other
// failure skips the single claim and continues. Callers supervise and
// restart the process externally.
func (v *Verifier) Run(ctx context.Context) error {
	ch := make(chan claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], subscriptionBuffer)

	sub, err := v.account.Client().SubscribeToSubmittedClaimsForReceiver(ctx, v.account.Address(), ch)
	if err != nil {
		return errors.Wrap(err, "subscribing to submitted claims")
	}
	defer sub.Unsubscribe()

	v.log.WithField("address", v.account.Address().Hex()).Info("verifier listening")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-sub.Err():
			if err == nil {
				return errors.New("claim subscription terminated")
			}
			return errors.Wrap(err, "claim subscription terminated")

		case tsc, ok := <-ch:
			if !ok {
				return errors.New("claim subscription channel closed")
			}

			d, err := v.Process(ctx, &tsc.Data)
			if err != nil {
				return errors.Wrap(err, "processing claim")
			}

			entry := v.log.WithFields(logging.Fields{
				"claim":     d.ClaimID.Hex(),
				"submitter": d.Submitter.Hex(),
			})
			if d.Settled {
				entry.Info("claim settled")
			} else {
				entry.WithField("reason", string(d.Reason)).Debug("claim rejected")
			}
		}
	}
}
