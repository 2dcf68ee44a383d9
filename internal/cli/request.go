package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/salondesk/internal/ports/primary"
	"github.com/example/salondesk/internal/wire"
)

// RequestCmd returns the request command
func RequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Manage help requests",
		Long:  `Create, inspect, and resolve caller escalations.`,
	}

	cmd.AddCommand(requestCreateCmd())
	cmd.AddCommand(requestListCmd())
	cmd.AddCommand(requestShowCmd())
	cmd.AddCommand(requestResolveCmd())
	cmd.AddCommand(requestTimeoutCmd())
	cmd.AddCommand(requestWaitCmd())

	return cmd
}

func requestCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [question]",
		Short: "Escalate a caller question to a supervisor",
		Long: `Create a pending help request for a question the knowledge base
could not answer.

Examples:
  salondesk request create "Do you do keratin treatments?"
  salondesk request create "Is the salon open on Labor Day?" --customer-phone +15550100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			customerName, _ := cmd.Flags().GetString("customer-name")
			customerPhone, _ := cmd.Flags().GetString("customer-phone")
			channel, _ := cmd.Flags().GetString("channel")

			resp, err := wire.HelpRequestService().CreateHelpRequest(ctx, primary.CreateHelpRequestRequest{
				Question:      args[0],
				CustomerName:  customerName,
				CustomerPhone: customerPhone,
				Channel:       channel,
			})
			if err != nil {
				return fmt.Errorf("failed to create help request: %w", err)
			}

			fmt.Printf("✓ Created help request %s\n", resp.RequestID)
			fmt.Printf("  Question: %s\n", resp.Request.Question)
			return nil
		},
	}

	cmd.Flags().String("customer-name", "", "Caller's name")
	cmd.Flags().String("customer-phone", "", "Caller's phone number")
	cmd.Flags().String("channel", "voice", "Channel the question arrived on")

	return cmd
}

func requestListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List help requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			status, _ := cmd.Flags().GetString("status")

			requests, err := wire.HelpRequestService().ListHelpRequests(ctx, primary.HelpRequestFilters{
				Status: status,
			})
			if err != nil {
				return fmt.Errorf("failed to list help requests: %w", err)
			}

			if len(requests) == 0 {
				fmt.Println("No help requests found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tQUESTION\tCUSTOMER\tCREATED")
			fmt.Fprintln(w, "--\t------\t--------\t--------\t-------")
			for _, item := range requests {
				customer := item.CustomerPhone
				if item.CustomerName != "" {
					customer = item.CustomerName
				}
				if customer == "" {
					customer = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(item.ID),
					statusColor(item.Status),
					truncate(item.Question, 48),
					customer,
					item.CreatedAt,
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringP("status", "s", "", "Filter by status (pending|resolved|timeout|all)")

	return cmd
}

func requestShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [request-id]",
		Short: "Show help request details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			request, err := wire.HelpRequestService().GetHelpRequest(ctx, args[0])
			if err != nil {
				return fmt.Errorf("help request not found: %w", err)
			}

			fmt.Printf("Help Request: %s\n", request.ID)
			fmt.Printf("Question: %s\n", request.Question)
			fmt.Printf("Status: %s\n", statusColor(request.Status))
			if request.CustomerName != "" {
				fmt.Printf("Customer: %s\n", request.CustomerName)
			}
			if request.CustomerPhone != "" {
				fmt.Printf("Phone: %s\n", request.CustomerPhone)
			}
			if request.Channel != "" {
				fmt.Printf("Channel: %s\n", request.Channel)
			}
			if request.Answer != "" {
				fmt.Printf("Answer: %s\n", request.Answer)
			}
			if request.SupervisorName != "" {
				fmt.Printf("Supervisor: %s\n", request.SupervisorName)
			}
			if request.SupervisorNotes != "" {
				fmt.Printf("Notes: %s\n", request.SupervisorNotes)
			}
			fmt.Printf("Created: %s\n", request.CreatedAt)
			fmt.Printf("Updated: %s\n", request.UpdatedAt)
			if request.ResolvedAt != "" {
				fmt.Printf("Resolved: %s\n", request.ResolvedAt)
			}
			if request.TimedOutAt != "" {
				fmt.Printf("Timed Out: %s\n", request.TimedOutAt)
			}

			return nil
		},
	}
}

func requestResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [request-id]",
		Short: "Resolve a help request with an answer",
		Long: `Record a supervisor's answer on a pending help request. Unless
--no-learn is given (or learning is disabled in config), the answer is
folded into the knowledge base so the next identical question is answered
automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			answer, _ := cmd.Flags().GetString("answer")
			supervisor, _ := cmd.Flags().GetString("supervisor")
			notes, _ := cmd.Flags().GetString("notes")
			tags, _ := cmd.Flags().GetStringSlice("tags")
			noLearn, _ := cmd.Flags().GetBool("no-learn")

			if answer == "" {
				return fmt.Errorf("--answer is required")
			}

			req := primary.ResolveHelpRequestRequest{
				RequestID:       args[0],
				Answer:          answer,
				SupervisorName:  supervisor,
				SupervisorNotes: notes,
				Tags:            tags,
			}
			if noLearn {
				learn := false
				req.Learn = &learn
			}

			request, err := wire.HelpRequestService().ResolveHelpRequest(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to resolve help request: %w", err)
			}

			fmt.Printf("✓ Resolved help request %s\n", shortID(request.ID))
			fmt.Printf("  Answer: %s\n", request.Answer)
			if !noLearn {
				fmt.Println("  Answer added to the knowledge base.")
			}
			return nil
		},
	}

	cmd.Flags().StringP("answer", "a", "", "The supervisor's answer (required)")
	cmd.Flags().String("supervisor", "", "Supervisor's name")
	cmd.Flags().String("notes", "", "Internal notes")
	cmd.Flags().StringSlice("tags", nil, "Tags for the learned knowledge entry")
	cmd.Flags().Bool("no-learn", false, "Do not add the answer to the knowledge base")

	return cmd
}

func requestTimeoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeout [request-id]",
		Short: "Mark a pending help request as timed out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			request, err := wire.HelpRequestService().TimeoutHelpRequest(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to time out help request: %w", err)
			}

			if request.Status == primary.HelpRequestStatusTimeout {
				fmt.Printf("✓ Help request %s timed out\n", shortID(request.ID))
			} else {
				fmt.Printf("Help request %s already %s, left unchanged\n", shortID(request.ID), request.Status)
			}
			return nil
		},
	}
}

func requestWaitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait [request-id]",
		Short: "Poll a help request until it resolves or times out",
		Long: `Run the polling loop the voice agent uses: check the request on a
fixed interval until a supervisor resolves it or the deadline elapses, at
which point the request is marked timed out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			request, err := wire.Poller().Await(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed while waiting for help request: %w", err)
			}

			switch request.Status {
			case primary.HelpRequestStatusResolved:
				fmt.Printf("✓ Resolved: %s\n", request.Answer)
			case primary.HelpRequestStatusTimeout:
				fmt.Println("No answer before the deadline; request timed out.")
			}
			return nil
		},
	}

	return cmd
}
