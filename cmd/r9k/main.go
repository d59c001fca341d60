package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "r9k",
		Short: "Discord bot that flags repeated messages",
		Long: `r9k watches the configured Discord channels, stores every message and
replies with a link to the original whenever someone posts content that was
already said.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(), newMessagesCmd(), newCheckCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
