package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/salondesk/internal/core/knowledge"
)

// SeedFixtures preloads the knowledge base with the salon's standing
// answers. Entries carry source='seed' so supervisors can tell preloaded
// knowledge from learned knowledge; seeding is idempotent per question.
func SeedFixtures(database *sql.DB) error {
	entries := []struct {
		question string
		answer   string
		tags     string
	}{
		{
			"What are your hours?",
			"We're open 9am-6pm Monday through Saturday, closed Sundays.",
			`["hours"]`,
		},
		{
			"Where are you located?",
			"Luna Salon is at 123 Main Street, two blocks from the central metro stop. Street parking is free after 5pm.",
			`["location"]`,
		},
		{
			"How much does a haircut cost?",
			"Haircuts start at $45 for short styles and $65 for long. A consultation is always free.",
			`["pricing", "services"]`,
		},
		{
			"Do you take walk-ins?",
			"We take walk-ins when a chair is free, but booking ahead guarantees your slot.",
			`["policies"]`,
		},
		{
			"What is your cancellation policy?",
			"You can cancel up to 24 hours before your appointment at no charge. Later than that we charge 50% of the service.",
			`["policies"]`,
		},
		{
			"Do you do hair coloring?",
			"Yes - full color, balayage, and highlights. Color services start at $120 and take about two hours.",
			`["services", "pricing"]`,
		},
	}

	for _, e := range entries {
		if _, err := database.Exec(
			`INSERT INTO knowledge_entries (id, question, normalized_question, answer, tags, source)
			VALUES (?, ?, ?, ?, ?, 'seed')
			ON CONFLICT(normalized_question) DO NOTHING`,
			uuid.NewString(), e.question, knowledge.Normalize(e.question), e.answer, e.tags,
		); err != nil {
			return fmt.Errorf("seed knowledge entries: %w", err)
		}
	}

	return nil
}
