package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/database"
	"github.com/stemsi/attendance-backend/internal/logger"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/repository"
	"github.com/stemsi/attendance-backend/internal/repository/memory"
	"github.com/stemsi/attendance-backend/internal/service"
)

func main() {
	var namesFile string
	flag.StringVar(&namesFile, "file", "", "File of student names, one per line or comma separated (default: demo roster)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)

	if namesFile != "" {
		raw, err := os.ReadFile(namesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", namesFile).Msg("Failed to read names file")
		}

		// Rosters seeded from a file carry only names; events are not published
		// because no dashboard is expected to be open during seeding.
		studentService := service.NewStudentService(studentRepo, noopPublisher{})
		created, err := studentService.BulkImport(ctx, string(raw))
		if err != nil {
			log.Fatal().Err(err).Msg("Bulk import failed")
		}
		fmt.Printf("Seed completed! Added %d students from %s.\n", len(created), namesFile)
		return
	}

	existing, err := studentRepo.List(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list students")
	}
	if len(existing) > 0 {
		fmt.Printf("Roster already has %d students, skipping demo seed.\n", len(existing))
		return
	}

	roster := memory.DefaultStudents()
	if err := studentRepo.CreateMany(ctx, roster); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed demo roster")
	}

	names := make([]string, 0, len(roster))
	for _, s := range roster {
		names = append(names, s.Name)
	}
	fmt.Printf("Seed completed! Added %d students: %s\n", len(roster), strings.Join(names, ", "))
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, model.DashboardEvent) {}
