package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

const (
	dateLayout        = "2006-01-02"
	defaultWindowDays = 7
	maxWindowDays     = 92
)

// ContainerLister resolves the containers snapshots are taken for.
type ContainerLister interface {
	ListContainers(ctx context.Context) ([]models.Container, error)
	GetContainer(ctx context.Context, id string) (*models.Container, error)
}

// SnapshotSource computes the live utilization of a container.
type SnapshotSource interface {
	Snapshot(ctx context.Context, containerID string, at time.Time) (models.InventorySnapshot, error)
}

// SnapshotStore keeps one snapshot per container and day.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
	ListSnapshots(ctx context.Context, containerID, from, to string) ([]models.InventorySnapshot, error)
}

// Exporter publishes captured snapshots outside the service.
type Exporter interface {
	ExportSnapshots(ctx context.Context, snapshots []models.InventorySnapshot) error
}

// AlertSender delivers utilization alerts.
type AlertSender interface {
	SendAlert(ctx context.Context, alert models.UtilizationAlert) error
}

// Service captures daily utilization snapshots and serves the metrics history.
type Service struct {
	containers ContainerLister
	source     SnapshotSource
	store      SnapshotStore
	exporter   Exporter
	alerts     AlertSender
	threshold  int
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithExporter publishes every capture through exporter.
func WithExporter(exporter Exporter) Option {
	return func(s *Service) { s.exporter = exporter }
}

// WithAlerts raises an alert for every area at or above threshold percent.
func WithAlerts(sender AlertSender, threshold int) Option {
	return func(s *Service) {
		s.alerts = sender
		s.threshold = threshold
	}
}

// WithLocation sets the time zone that decides which day a snapshot belongs to.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewService wires a new reporting service instance.
func NewService(containers ContainerLister, source SnapshotSource, store SnapshotStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		containers: containers,
		source:     source,
		store:      store,
		location:   time.UTC,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CaptureDailySnapshots records today's utilization of every container.
// A failing container does not stop the others; the first error is returned.
func (s *Service) CaptureDailySnapshots(ctx context.Context) ([]models.InventorySnapshot, error) {
	at := s.now().In(s.location)

	list, err := s.containers.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}

	var firstErr error
	captured := make([]models.InventorySnapshot, 0, len(list))
	names := make(map[string]string, len(list))

	for _, c := range list {
		names[c.ID] = c.Name

		snap, err := s.source.Snapshot(ctx, c.ID, at)
		if err != nil {
			s.logger.Error("failed to compute snapshot", zap.String("container_id", c.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("snapshot %s: %w", c.ID, err)
			}
			continue
		}
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			s.logger.Error("failed to save snapshot", zap.String("container_id", c.ID), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("save snapshot %s: %w", c.ID, err)
			}
			continue
		}
		captured = append(captured, snap)
	}

	s.logger.Info("daily snapshots captured",
		zap.String("date", at.Format(dateLayout)),
		zap.Int("containers", len(list)),
		zap.Int("captured", len(captured)))

	if s.exporter != nil && len(captured) > 0 {
		if err := s.exporter.ExportSnapshots(ctx, captured); err != nil {
			s.logger.Error("failed to export snapshots", zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("export snapshots: %w", err)
			}
		}
	}

	if s.alerts != nil {
		for _, alert := range s.alertsFor(captured, names) {
			if err := s.alerts.SendAlert(ctx, alert); err != nil {
				s.logger.Warn("failed to send utilization alert",
					zap.String("container_id", alert.ContainerID),
					zap.String("area", alert.Area),
					zap.Error(err))
			}
		}
	}

	return captured, firstErr
}

func (s *Service) alertsFor(snapshots []models.InventorySnapshot, names map[string]string) []models.UtilizationAlert {
	var out []models.UtilizationAlert
	for _, snap := range snapshots {
		areas := []struct {
			name  string
			label string
			value int
		}{
			{name: models.AreaNurseryStation, label: "Nursery station", value: snap.NurseryStationUtilization},
			{name: models.AreaCultivationArea, label: "Cultivation area", value: snap.CultivationAreaUtilization},
		}
		for _, area := range areas {
			if area.value < s.threshold {
				continue
			}
			out = append(out, models.UtilizationAlert{
				ContainerID:           snap.ContainerID,
				ContainerName:         names[snap.ContainerID],
				Area:                  area.name,
				UtilizationPercentage: area.value,
				Threshold:             s.threshold,
				Date:                  snap.Date,
				Message: fmt.Sprintf("%s of %s at %d%% utilization (threshold %d%%) on %s.",
					area.label, names[snap.ContainerID], area.value, s.threshold, snap.Date),
			})
		}
	}
	return out
}

// DailyMetrics returns the date-keyed utilization history of a container
// between two inclusive YYYY-MM-DD dates. Empty bounds default to the last
// seven days ending today. Today's entry, when in range, is computed live.
func (s *Service) DailyMetrics(ctx context.Context, containerID, startDate, endDate string) (*models.InventoryMetricsView, error) {
	now := s.now().In(s.location)
	today := now.Format(dateLayout)

	end := today
	if endDate != "" {
		if err := validateDate(endDate); err != nil {
			return nil, err
		}
		end = endDate
	}
	var start string
	if startDate != "" {
		if err := validateDate(startDate); err != nil {
			return nil, err
		}
		start = startDate
	} else {
		endDay, _ := time.Parse(dateLayout, end)
		start = endDay.AddDate(0, 0, -(defaultWindowDays - 1)).Format(dateLayout)
	}

	startDay, _ := time.Parse(dateLayout, start)
	endDay, _ := time.Parse(dateLayout, end)
	if startDay.After(endDay) {
		return nil, errs.Invalid("start_date must not be after end_date")
	}
	if int(endDay.Sub(startDay).Hours()/24)+1 > maxWindowDays {
		return nil, errs.Invalid("Date range must not exceed %d days", maxWindowDays)
	}

	if _, err := s.containers.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	stored, err := s.store.ListSnapshots(ctx, containerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load snapshots of %s: %w", containerID, err)
	}

	metrics := make([]models.InventorySnapshot, 0, len(stored)+1)
	for _, snap := range stored {
		if snap.Date != today {
			metrics = append(metrics, snap)
		}
	}
	if start <= today && today <= end {
		live, err := s.source.Snapshot(ctx, containerID, now)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, live)
	}

	return &models.InventoryMetricsView{
		ContainerID: containerID,
		StartDate:   start,
		EndDate:     end,
		Metrics:     metrics,
	}, nil
}

func validateDate(value string) error {
	if _, err := time.Parse(dateLayout, value); err != nil {
		return errs.Invalid("Invalid date format '%s': expected ISO 8601 (YYYY-MM-DD)", value)
	}
	return nil
}
