package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// ListPanels returns every panel of a container, placed or not.
func (s *Store) ListPanels(ctx context.Context, containerID string) ([]models.Panel, error) {
	var recs []panelRecord
	err := s.db.WithContext(ctx).
		Preload("Location").
		Where("container_id = ?", containerID).
		Order("provisioned_at, id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list panels of %s: %w", containerID, err)
	}
	out := make([]models.Panel, 0, len(recs))
	for _, rec := range recs {
		out = append(out, panelFromRecord(rec))
	}
	return out, nil
}

// GetPanel loads a panel that belongs to the given container.
func (s *Store) GetPanel(ctx context.Context, containerID, panelID string) (*models.Panel, error) {
	var rec panelRecord
	err := s.db.WithContext(ctx).
		Preload("Location").
		Where("id = ? AND container_id = ?", panelID, containerID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Panel with ID %s not found in container %s", panelID, containerID)
	}
	if err != nil {
		return nil, fmt.Errorf("get panel %s: %w", panelID, err)
	}
	panel := panelFromRecord(rec)
	return &panel, nil
}

// FindPanelByRFID returns nil when no panel carries the tag.
func (s *Store) FindPanelByRFID(ctx context.Context, rfid string) (*models.Panel, error) {
	var recs []panelRecord
	if err := s.db.WithContext(ctx).Where("rfid_tag = ?", rfid).Limit(1).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("find panel by rfid: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	panel := panelFromRecord(recs[0])
	return &panel, nil
}

// PanelSlotTaken reports whether a wall slot of the container already holds a panel.
func (s *Store) PanelSlotTaken(ctx context.Context, containerID, wall string, slotNumber int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&panelLocationRecord{}).
		Where("container_id = ? AND wall = ? AND slot_number = ?", containerID, wall, slotNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check panel slot: %w", err)
	}
	return count > 0, nil
}

// CreatePanel inserts the panel and, when present, its placement in one transaction.
func (s *Store) CreatePanel(ctx context.Context, panel *models.Panel) error {
	rec := panelRecord{
		ID:                    panel.ID,
		ContainerID:           panel.ContainerID,
		RFIDTag:               panel.RFIDTag,
		Capacity:              panel.Capacity,
		UtilizationPercentage: panel.UtilizationPercentage,
		PanelType:             panel.PanelType,
		Status:                panel.Status,
		ProvisionedAt:         panel.ProvisionedAt,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return translate(err, fmt.Sprintf("Panel with RFID tag '%s' already exists", panel.RFIDTag))
		}
		if panel.Location == nil {
			return nil
		}
		loc := panelLocationRecord{
			PanelID:     rec.ID,
			ContainerID: rec.ContainerID,
			Wall:        panel.Location.Wall,
			SlotNumber:  panel.Location.SlotNumber,
			Channel:     panel.Location.Channel,
			Position:    panel.Location.Position,
		}
		if err := tx.Create(&loc).Error; err != nil {
			return translate(err, fmt.Sprintf("Slot %s/%d is already occupied", loc.Wall, loc.SlotNumber))
		}
		return nil
	})
}

// DeletePanel removes a panel and its placement.
func (s *Store) DeletePanel(ctx context.Context, containerID, panelID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("panel_id = ?", panelID).Delete(&panelLocationRecord{}).Error; err != nil {
			return fmt.Errorf("delete panel location: %w", err)
		}
		res := tx.Where("id = ? AND container_id = ?", panelID, containerID).Delete(&panelRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete panel: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("Panel with ID %s not found in container %s", panelID, containerID)
		}
		return nil
	})
}
