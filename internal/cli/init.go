package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/salondesk/internal/config"
	"github.com/example/salondesk/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the salondesk database and config",
		Long: `Create the local database, apply the schema, and write a default
config file. With --seed, preload the knowledge base with the salon's
standing answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed")

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to resolve database path: %w", err)
			}
			fmt.Printf("✓ Database ready at %s\n", dbPath)

			if err := config.SaveConfig(".", &config.Config{Version: "1"}); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println("✓ Wrote .salondesk/config.json")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed knowledge base: %w", err)
				}
				fmt.Println("✓ Seeded knowledge base")
			}

			return nil
		},
	}

	cmd.Flags().Bool("seed", false, "Preload the knowledge base with salon fixtures")

	return cmd
}
