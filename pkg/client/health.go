package client

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
)

// WaitHealthy polls vsl_getHealth until the service reports ok, backing
// off between attempts. It returns the last health error when maxWait
// elapses first.
func (c *Client) WaitHealthy(ctx context.Context, maxWait time.Duration) error {
	b := &backoff.Backoff{
		Min:    250 * time.Millisecond,
		Max:    5 * time.Second,
		Jitter: true,
	}

	deadline := time.Now().Add(maxWait)

	var last error
	for {
		if last = c.GetHealth(ctx); last == nil {
			return nil
		}

		if time.Now().After(deadline) {
			return errors.Wrap(last, "service did not become healthy")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
}
