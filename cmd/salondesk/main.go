package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/salondesk/internal/cli"
	"github.com/example/salondesk/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "salondesk",
		Short:   "salondesk - human-in-the-loop help desk for the salon's AI receptionist",
		Version: version.String(),
		Long: `salondesk manages caller escalations and the knowledge base behind the
salon's AI receptionist. Questions the receptionist cannot answer become
pending help requests; supervisors resolve them and the answers feed back
into the knowledge base.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.RequestCmd())
	rootCmd.AddCommand(cli.KnowledgeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
