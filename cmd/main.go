package main

import (
	"os"

	"github.com/vsl-labs/vsl-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
