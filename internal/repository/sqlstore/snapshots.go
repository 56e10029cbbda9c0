package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// SaveSnapshot stores the snapshot, replacing any existing one for the same container and day.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error {
	rec := snapshotRecord{
		ContainerID:                snapshot.ContainerID,
		Date:                       snapshot.Date,
		NurseryStationUtilization:  snapshot.NurseryStationUtilization,
		CultivationAreaUtilization: snapshot.CultivationAreaUtilization,
		TrayCount:                  snapshot.TrayCount,
		PanelCount:                 snapshot.PanelCount,
		CropCount:                  snapshot.CropCount,
		CreatedAt:                  snapshot.CreatedAt,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "container_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nursery_station_utilization",
			"cultivation_area_utilization",
			"tray_count",
			"panel_count",
			"crop_count",
			"created_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save snapshot %s/%s: %w", snapshot.ContainerID, snapshot.Date, err)
	}
	return nil
}

// ListSnapshots returns the container's snapshots between two YYYY-MM-DD dates, inclusive, oldest first.
func (s *Store) ListSnapshots(ctx context.Context, containerID, from, to string) ([]models.InventorySnapshot, error) {
	var recs []snapshotRecord
	err := s.db.WithContext(ctx).
		Where("container_id = ? AND date >= ? AND date <= ?", containerID, from, to).
		Order("date").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots of %s: %w", containerID, err)
	}
	out := make([]models.InventorySnapshot, 0, len(recs))
	for _, rec := range recs {
		out = append(out, snapshotFromRecord(rec))
	}
	return out, nil
}
