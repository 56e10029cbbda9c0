package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// SnapshotCapturer records the daily utilization snapshots.
type SnapshotCapturer interface {
	CaptureDailySnapshots(ctx context.Context) ([]models.InventorySnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	capturer   SnapshotCapturer
	schedule   string
	logger     *zap.Logger
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler instance running in the configured time zone.
func NewScheduler(cfg config.ReportingConfig, capturer SnapshotCapturer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(cron.WithLocation(cfg.Location()))

	return &Scheduler{
		cron:       c,
		capturer:   capturer,
		schedule:   cfg.CronSchedule,
		logger:     logger,
		jobTimeout: 2 * time.Minute,
	}
}

// Start registers the snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.captureSnapshots); err != nil {
		return fmt.Errorf("schedule daily snapshots %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) captureSnapshots() {
	s.logger.Info("capturing daily snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	captured, err := s.capturer.CaptureDailySnapshots(ctx)
	if err != nil {
		s.logger.Error("daily snapshot capture incomplete", zap.Int("captured", len(captured)), zap.Error(err))
		return
	}
	s.logger.Info("daily snapshots stored", zap.Int("captured", len(captured)))
}
