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

// ListTrays returns every tray of a container, placed or not.
func (s *Store) ListTrays(ctx context.Context, containerID string) ([]models.Tray, error) {
	var recs []trayRecord
	err := s.db.WithContext(ctx).
		Preload("Location").
		Where("container_id = ?", containerID).
		Order("provisioned_at, id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list trays of %s: %w", containerID, err)
	}
	out := make([]models.Tray, 0, len(recs))
	for _, rec := range recs {
		out = append(out, trayFromRecord(rec))
	}
	return out, nil
}

// GetTray loads a tray that belongs to the given container.
func (s *Store) GetTray(ctx context.Context, containerID, trayID string) (*models.Tray, error) {
	var rec trayRecord
	err := s.db.WithContext(ctx).
		Preload("Location").
		Where("id = ? AND container_id = ?", trayID, containerID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Tray with ID %s not found in container %s", trayID, containerID)
	}
	if err != nil {
		return nil, fmt.Errorf("get tray %s: %w", trayID, err)
	}
	tray := trayFromRecord(rec)
	return &tray, nil
}

// FindTrayByRFID returns nil when no tray carries the tag.
func (s *Store) FindTrayByRFID(ctx context.Context, rfid string) (*models.Tray, error) {
	var recs []trayRecord
	if err := s.db.WithContext(ctx).Where("rfid_tag = ?", rfid).Limit(1).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("find tray by rfid: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	tray := trayFromRecord(recs[0])
	return &tray, nil
}

// TraySlotTaken reports whether a shelf slot of the container already holds a tray.
func (s *Store) TraySlotTaken(ctx context.Context, containerID, shelf string, slotNumber int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&trayLocationRecord{}).
		Where("container_id = ? AND shelf = ? AND slot_number = ?", containerID, shelf, slotNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check tray slot: %w", err)
	}
	return count > 0, nil
}

// CreateTray inserts the tray and, when present, its placement in one transaction.
func (s *Store) CreateTray(ctx context.Context, tray *models.Tray) error {
	rec := trayRecord{
		ID:                    tray.ID,
		ContainerID:           tray.ContainerID,
		RFIDTag:               tray.RFIDTag,
		Capacity:              tray.Capacity,
		UtilizationPercentage: tray.UtilizationPercentage,
		TrayType:              tray.TrayType,
		Status:                tray.Status,
		ProvisionedAt:         tray.ProvisionedAt,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return translate(err, fmt.Sprintf("Tray with RFID tag '%s' already exists", tray.RFIDTag))
		}
		if tray.Location == nil {
			return nil
		}
		loc := trayLocationRecord{
			TrayID:      rec.ID,
			ContainerID: rec.ContainerID,
			Shelf:       tray.Location.Shelf,
			SlotNumber:  tray.Location.SlotNumber,
		}
		if err := tx.Create(&loc).Error; err != nil {
			return translate(err, fmt.Sprintf("Slot %s/%d is already occupied", loc.Shelf, loc.SlotNumber))
		}
		return nil
	})
}

// DeleteTray removes a tray and its placement.
func (s *Store) DeleteTray(ctx context.Context, containerID, trayID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tray_id = ?", trayID).Delete(&trayLocationRecord{}).Error; err != nil {
			return fmt.Errorf("delete tray location: %w", err)
		}
		res := tx.Where("id = ? AND container_id = ?", trayID, containerID).Delete(&trayRecord{})
		if res.Error != nil {
			return fmt.Errorf("delete tray: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("Tray with ID %s not found in container %s", trayID, containerID)
		}
		return nil
	})
}
