package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vsl-labs/vsl-go/internal/config"
	"github.com/vsl-labs/vsl-go/pkg/client"
)

var (
	healthCmd = &cobra.Command{
		Use:   "health",
		RunE:  runHealth,
		Short: "check the settlement service is reachable and healthy",
	}
)

func runHealth(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	c, err := client.Dial(ctx, cfg.Node().Endpoint())
	if err != nil {
		return errors.Wrap(err, "dialing settlement service")
	}
	defer c.Close()

	if err := c.GetHealth(ctx); err != nil {
		return err
	}

	fmt.Println("ok")

	return nil
}
