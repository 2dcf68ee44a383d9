package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/salondesk/internal/ports/primary"
	"github.com/example/salondesk/internal/wire"
)

// KnowledgeCmd returns the knowledge command
func KnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the knowledge base",
		Long:  `Search, inspect, and update the salon's question/answer knowledge base.`,
	}

	cmd.AddCommand(knowledgeSearchCmd())
	cmd.AddCommand(knowledgeListCmd())
	cmd.AddCommand(knowledgeShowCmd())
	cmd.AddCommand(knowledgeUpsertCmd())

	return cmd
}

func knowledgeSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the knowledge base",
		Long: `Score knowledge entries against a free-text query. With no query,
lists the most recently updated entries.

Examples:
  salondesk knowledge search "opening hours"
  salondesk knowledge search keratin --limit 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			limit, _ := cmd.Flags().GetInt("limit")

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			matches, err := wire.KnowledgeService().SearchKnowledge(ctx, primary.SearchKnowledgeRequest{
				Query: query,
				Limit: limit,
			})
			if err != nil {
				return fmt.Errorf("failed to search knowledge base: %w", err)
			}

			if len(matches) == 0 {
				fmt.Println("No matching knowledge entries.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCORE\tQUESTION\tANSWER\tSOURCE")
			fmt.Fprintln(w, "-----\t--------\t------\t------")
			for _, m := range matches {
				fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n",
					m.Score,
					truncate(m.Entry.Question, 40),
					truncate(m.Entry.Answer, 48),
					m.Entry.Source,
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Maximum results (default 5)")

	return cmd
}

func knowledgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all knowledge entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			entries, err := wire.KnowledgeService().ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list knowledge entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Knowledge base is empty. Run 'salondesk init --seed' to load fixtures.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tQUESTION\tSOURCE\tTAGS\tUPDATED")
			fmt.Fprintln(w, "--\t--------\t------\t----\t-------")
			for _, entry := range entries {
				tags := "-"
				if len(entry.Tags) > 0 {
					tags = strings.Join(entry.Tags, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(entry.ID),
					truncate(entry.Question, 48),
					entry.Source,
					tags,
					entry.UpdatedAt,
				)
			}
			w.Flush()
			return nil
		},
	}
}

func knowledgeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [entry-id]",
		Short: "Show knowledge entry details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			entry, err := wire.KnowledgeService().GetEntry(ctx, args[0])
			if err != nil {
				return fmt.Errorf("knowledge entry not found: %w", err)
			}

			fmt.Printf("Entry: %s\n", entry.ID)
			fmt.Printf("Question: %s\n", entry.Question)
			fmt.Printf("Answer: %s\n", entry.Answer)
			if len(entry.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(entry.Tags, ", "))
			}
			fmt.Printf("Source: %s\n", entry.Source)
			fmt.Printf("Created: %s\n", entry.CreatedAt)
			fmt.Printf("Updated: %s\n", entry.UpdatedAt)

			return nil
		},
	}
}

func knowledgeUpsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update a knowledge entry",
		Long: `Create a knowledge entry, or merge into the existing entry with the
same normalized question. Merging replaces the answer; tags and source are
only replaced when supplied.

Examples:
  salondesk knowledge upsert --question "Do you sell gift cards?" --answer "Yes, in any amount from $25."
  salondesk knowledge upsert -q "What are your hours?" -a "9am-6pm Mon-Sat" --tags hours`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			question, _ := cmd.Flags().GetString("question")
			answer, _ := cmd.Flags().GetString("answer")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			source, _ := cmd.Flags().GetString("source")

			if question == "" {
				return fmt.Errorf("--question is required")
			}
			if answer == "" {
				return fmt.Errorf("--answer is required")
			}

			entry, err := wire.KnowledgeService().UpsertEntry(ctx, primary.UpsertKnowledgeRequest{
				Question: question,
				Answer:   answer,
				Tags:     tags,
				Source:   source,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert knowledge entry: %w", err)
			}

			fmt.Printf("✓ Knowledge entry %s\n", shortID(entry.ID))
			fmt.Printf("  Question: %s\n", entry.Question)
			fmt.Printf("  Answer: %s\n", entry.Answer)
			return nil
		},
	}

	cmd.Flags().StringP("question", "q", "", "The canonical question (required)")
	cmd.Flags().StringP("answer", "a", "", "The answer (required)")
	cmd.Flags().StringSlice("tags", nil, "Tags (replace existing tags when supplied)")
	cmd.Flags().String("source", "", "Entry source: seed, human, or ai")

	return cmd
}
