package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/salondesk/internal/ports/primary"
	"github.com/example/salondesk/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show escalation and knowledge base status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			requests, err := wire.HelpRequestService().ListHelpRequests(ctx, primary.HelpRequestFilters{})
			if err != nil {
				return fmt.Errorf("failed to list help requests: %w", err)
			}

			var pending, resolved, timedOut int
			for _, r := range requests {
				switch r.Status {
				case primary.HelpRequestStatusPending:
					pending++
				case primary.HelpRequestStatusResolved:
					resolved++
				case primary.HelpRequestStatusTimeout:
					timedOut++
				}
			}

			entries, err := wire.KnowledgeService().ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list knowledge entries: %w", err)
			}

			fmt.Println("Help Requests")
			fmt.Printf("  %s %d\n", color.New(color.FgYellow).Sprint("pending: "), pending)
			fmt.Printf("  %s %d\n", color.New(color.FgGreen).Sprint("resolved:"), resolved)
			fmt.Printf("  %s %d\n", color.New(color.FgRed).Sprint("timeout: "), timedOut)
			fmt.Println("Knowledge Base")
			fmt.Printf("  entries:  %d\n", len(entries))

			if pending > 0 {
				fmt.Println()
				fmt.Printf("%d caller(s) waiting on a supervisor. See: salondesk request list -s pending\n", pending)
			}

			return nil
		},
	}
}
