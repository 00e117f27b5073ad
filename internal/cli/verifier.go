package cli

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vsl-labs/vsl-go/internal/config"
	"github.com/vsl-labs/vsl-go/internal/verifier"
	"github.com/vsl-labs/vsl-go/pkg/client"
	"github.com/vsl-labs/vsl-go/pkg/storage"
)

var (
	verifierCmd = &cobra.Command{
		Use:   "verifier",
		RunE:  runVerifier,
		Short: "run the funding-request verifier daemon",
	}
)

func runVerifier(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	vcfg, err := cfg.Verifier()
	if err != nil {
		return errors.Wrap(err, "verifier config")
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

	store, err := storage.NewPebbleStore(vcfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	acc, err := client.OpenAccount(ctx, c, node.PrivateKey, nil)
	if err != nil {
		return errors.Wrap(err, "opening account session")
	}

	v, err := verifier.New(acc, store, verifier.Config{
		ValidatorAddress:     vcfg.ValidatorAddress,
		MasterAccountAddress: vcfg.MasterAccountAddress,
		MaxAmount:            vcfg.MaxAmount,
		MinWaitingTime:       vcfg.MinWaitingTime,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error)

	go func() {
		errCh <- v.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitExit(ctx):
		return nil
	}
}
