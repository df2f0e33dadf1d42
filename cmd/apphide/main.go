package main

import (
	"os"

	"github.com/arthur-debert/apphide/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		cli.RenderError(rootCmd, err)
		os.Exit(1)
	}
}
