package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rhysv96/discord-r9k/internal/config"
	"github.com/rhysv96/discord-r9k/internal/logging"
	"github.com/rhysv96/discord-r9k/internal/model"
	"github.com/rhysv96/discord-r9k/internal/repository"
	"github.com/rhysv96/discord-r9k/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newMessagesCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List stored messages, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			msgs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)
			}
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of messages to show (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print messages as JSON")
	return cmd
}

// openStore opens the configured store for offline commands. Logs go to
// stderr so stdout stays clean for --json.
func openStore(ctx context.Context) (repository.MessageStore, error) {
	cfg := config.Storage()
	log, err := logging.NewWriter(cfg.Env, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return repository.Open(ctx, cfg.DatabaseURL, logging.Component(log, "database"))
}

func printMessages(w io.Writer, msgs []model.StoredMessage) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(msgs) == 0 {
		fmt.Fprintln(w, gray("No messages stored"))
		return
	}

	for _, m := range msgs {
		fmt.Fprintf(w, "%s %s\n", cyan(fmt.Sprintf("#%d", m.ID)), service.MessageURL(m))
		fmt.Fprintf(w, "    Author:  %s\n", m.AuthorID)
		fmt.Fprintf(w, "    Content: %s\n", m.Content)
	}
	fmt.Fprintf(w, "\nTotal: %d\n", len(msgs))
}
