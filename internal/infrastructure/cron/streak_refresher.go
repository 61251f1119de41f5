package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"habit-store/internal/domain/service"

	"github.com/robfig/cron/v3"
)

// StreakRefresher periodically recomputes cached streak values so that
// current streaks decay after a missed day without any user action.
type StreakRefresher struct {
	maintenance service.StreakMaintenance
	cron        *cron.Cron
	interval    time.Duration
}

// NewStreakRefresher creates a new streak refresher.
func NewStreakRefresher(maintenance service.StreakMaintenance, interval time.Duration) *StreakRefresher {
	return &StreakRefresher{
		maintenance: maintenance,
		cron:        cron.New(),
		interval:    interval,
	}
}

// Start starts the streak refresher.
func (r *StreakRefresher) Start() error {
	cronExpr := fmt.Sprintf("@every %s", r.interval.String())

	log.Printf("Starting streak refresher with interval: %s", r.interval)

	_, err := r.cron.AddFunc(cronExpr, func() {
		r.refresh()
	})

	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.cron.Start()
	log.Println("Streak refresher started successfully")

	return nil
}

// Stop stops the streak refresher.
func (r *StreakRefresher) Stop() {
	log.Println("Stopping streak refresher...")
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Println("Streak refresher stopped")
}

func (r *StreakRefresher) refresh() {
	log.Println("Running streak refresh...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := r.maintenance.RefreshStreaks(ctx); err != nil {
		log.Printf("Error refreshing streaks: %v", err)
		return
	}

	log.Println("Streak refresh completed successfully")
}
