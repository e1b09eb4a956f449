package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lenslate/internal/app"
	"codeberg.org/snonux/lenslate/internal/cli"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	application := app.New(flags)
	rootCmd := cli.CreateRootCommand(flags, application)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	err := rootCmd.Execute()
	if closeErr := application.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", closeErr)
	}
	if err != nil {
		// Failures already shown as alerts are not printed twice
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
