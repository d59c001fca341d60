package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rhysv96/discord-r9k/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <content>",
		Short: "Report whether content would be flagged as a duplicate",
		Long: `Runs the duplicate lookup against the stored messages without posting or
storing anything. Multiple arguments are joined with single spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if utf8.RuneCountInString(content) < service.MinContentLength {
				fmt.Fprintf(out, "%s\n", color.YellowString("Too short to check (minimum %d characters)", service.MinContentLength))
				return nil
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			dup, err := service.NewDetector(store).FindDuplicate(cmd.Context(), content)
			if err != nil {
				return err
			}
			if dup == nil {
				fmt.Fprintf(out, "%s\n", color.GreenString("Original"))
				return nil
			}

			fmt.Fprintf(out, "%s\n", color.RedString("%s", service.DuplicateReply(*dup)))
			fmt.Fprintf(out, "    First posted by %s (#%d)\n", dup.AuthorID, dup.ID)
			return nil
		},
	}
}
