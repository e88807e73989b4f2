package scheduler

import (
	"context"
	"fmt"
	"log"

	"CycleBand/internal/ingest"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the ingest refresh on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Ingestor *ingest.Ingestor
	Ctx      context.Context
}

// New creates a new Scheduler.
func New(ctx context.Context, in *ingest.Ingestor) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Ingestor: in,
		Ctx:      ctx,
	}
}

// Register schedules the periodic refresh task.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	if err := s.Ingestor.Refresh(s.Ctx); err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
	}
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}
