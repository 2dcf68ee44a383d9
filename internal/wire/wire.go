// Package wire provides dependency injection for the salondesk
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"github.com/example/salondesk/internal/adapters/sqlite"
	"github.com/example/salondesk/internal/agent"
	"github.com/example/salondesk/internal/app"
	"github.com/example/salondesk/internal/config"
	"github.com/example/salondesk/internal/db"
	"github.com/example/salondesk/internal/ports/primary"
)

var (
	helpRequestService primary.HelpRequestService
	knowledgeService   primary.KnowledgeService
	cfg                *config.Config
	once               sync.Once
)

// HelpRequestService returns the singleton HelpRequestService instance.
func HelpRequestService() primary.HelpRequestService {
	once.Do(initServices)
	return helpRequestService
}

// KnowledgeService returns the singleton KnowledgeService instance.
func KnowledgeService() primary.KnowledgeService {
	once.Do(initServices)
	return knowledgeService
}

// Poller returns a new escalation poller configured from the local config.
// Each call creates a new poller; polling loops are per-escalation.
func Poller() *agent.Poller {
	once.Do(initServices)
	return agent.NewPoller(helpRequestService, cfg.PollInterval(), cfg.PollDeadline())
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Config is optional; defaults apply when no file exists
	cwd, err := os.Getwd()
	if err == nil {
		cfg, _ = config.LoadConfig(cwd)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	requestRepo := sqlite.NewHelpRequestRepository(database)
	knowledgeRepo := sqlite.NewKnowledgeRepository(database)

	// Create services (primary ports implementation)
	knowledgeService = app.NewKnowledgeService(knowledgeRepo)
	helpRequestService = app.NewHelpRequestService(requestRepo, knowledgeService, cfg.ShouldLearnOnResolve())
}
