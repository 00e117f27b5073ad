package client

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

// Subscriptions ride the vsl_subscribe/vsl_unsubscribe envelope with the
// stream name as first parameter; they require a WebSocket connection.
// When the server drops a stream or its delivery channel fills up, the
// subscription's Err channel fires and no reconnect is attempted.

func (c *Client) subscribe(ctx context.Context, channel interface{}, args ...interface{}) (*gethrpc.ClientSubscription, error) {
	sub, err := c.rpc.Subscribe(ctx, Namespace, channel, args...)
	if err != nil {
		return nil, &TransportError{Method: "vsl_subscribe", Err: err}
	}

	return sub, nil
}

// SubscribeToSubmittedClaimsForReceiver streams claim verification
// requests naming addr as a verifier.
func (c *Client) SubscribeToSubmittedClaimsForReceiver(ctx context.Context, addr common.Address, ch chan<- claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]) (*gethrpc.ClientSubscription, error) {
	return c.subscribe(ctx, ch, "submittedClaimsForReceiver", addr)
}

// SubscribeToSettledClaimsForReceiver streams newly settled claims for a
// receiver (nil address for all claims).
func (c *Client) SubscribeToSettledClaimsForReceiver(ctx context.Context, addr *common.Address, ch chan<- claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]) (*gethrpc.ClientSubscription, error) {
	return c.subscribe(ctx, ch, "settledClaimsForReceiver", addr)
}

// SubscribeToSubmittedClaimsMetadata streams metadata for every newly
// submitted claim.
func (c *Client) SubscribeToSubmittedClaimsMetadata(ctx context.Context, ch chan<- claims.Timestamped[claims.SubmittedClaimData]) (*gethrpc.ClientSubscription, error) {
	return c.subscribe(ctx, ch, "submittedClaimsMetadata")
}

// SubscribeToSettledClaimsMetadata streams metadata for every newly
// settled claim.
func (c *Client) SubscribeToSettledClaimsMetadata(ctx context.Context, ch chan<- claims.Timestamped[claims.SettledClaimData]) (*gethrpc.ClientSubscription, error) {
	return c.subscribe(ctx, ch, "settledClaimsMetadata")
}
