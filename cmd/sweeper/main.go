// One-shot expired-draft sweep, for cron or manual housekeeping. The rest
// server runs the same sweep on a ticker; this exists for environments
// that prefer an external scheduler.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/internal/pkg/logger"
	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/unitofwork"
	"github.com/Fordjour12/monthly-zen-sub002/internal/service"
	"github.com/Fordjour12/monthly-zen-sub002/pkg/database"
	plannerEvents "github.com/Fordjour12/monthly-zen-sub002/pkg/planner/events"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	sysLogger := logger.NewZapLogger("logs/sweeper.log", false)
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	// Events stay off for CLI sweeps; nobody subscribes to sweep results.
	events := plannerEvents.NewNatsPublisher(nil, sysLogger)
	draftService := service.NewDraftService(uowFactory, events, sysLogger)

	color.Cyan("🧹 Sweeping expired plan drafts...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := draftService.CleanupExpiredDrafts(ctx)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		os.Exit(1)
	}

	color.Green("Done. Removed %d expired drafts.", removed)
}
