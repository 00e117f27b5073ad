package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsl-labs/vsl-go/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "configuration commands",
	}

	config_initCmd = &cobra.Command{
		Use:   "init",
		RunE:  runConfigInit,
		Short: "write a starter config file",
	}
)

func init() {
	config_initCmd.Flags().StringP("out", "o", "vsl.yaml", "path to write the config file to")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)

	return nil
}
