package cli

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vsl-labs/vsl-go/internal/config"
	"github.com/vsl-labs/vsl-go/internal/faucet"
	"github.com/vsl-labs/vsl-go/pkg/client"
)

var (
	faucetCmd = &cobra.Command{
		Use:   "faucet",
		RunE:  runFaucet,
		Short: "run the faucet payout daemon",
	}
)

func runFaucet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	fcfg, err := cfg.Faucet()
	if err != nil {
		return errors.Wrap(err, "faucet config")
	}

	node := cfg.Node()
	if node.PrivateKey == nil {
		return errors.New("node.privateKey must be set")
	}

	c, err := client.Dial(ctx, node.Endpoint())
	if err != nil {
		return errors.Wrap(err, "dialing settlement service")
	}
	defer c.Close()

	if err := c.WaitHealthy(ctx, time.Minute); err != nil {
		return err
	}

	acc, err := client.OpenAccount(ctx, c, node.PrivateKey, nil)
	if err != nil {
		return errors.Wrap(err, "opening account session")
	}

	f, err := faucet.New(acc, faucet.Config{
		ValidatorAddress: fcfg.ValidatorAddress,
		VerifierAddress:  fcfg.VerifierAddress,
		MaxAmount:        fcfg.MaxAmount,
		PollInterval:     fcfg.PollInterval,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error)

	go func() {
		errCh <- f.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitExit(ctx):
		return nil
	}
}
