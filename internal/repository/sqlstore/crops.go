package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ListCrops returns crops attached to any of the filter's trays or panels.
// With no tray and no panel ids the result is empty; the table is never scanned
// unscoped. A non-positive Limit disables paging.
func (s *Store) ListCrops(ctx context.Context, filter models.CropFilter) ([]models.Crop, error) {
	if len(filter.TrayIDs) == 0 && len(filter.PanelIDs) == 0 {
		return []models.Crop{}, nil
	}

	q := scopeCrops(s.db.WithContext(ctx), filter)
	if filter.SeedType != "" {
		q = q.Where(`LOWER(seed_type) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(filter.SeedType))+"%")
	}
	q = q.Order("seed_date DESC, id")
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var recs []cropRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list crops: %w", err)
	}
	out := make([]models.Crop, 0, len(recs))
	for _, rec := range recs {
		out = append(out, cropFromRecord(rec))
	}
	return out, nil
}

// CountCrops counts crops attached to the given trays or panels.
func (s *Store) CountCrops(ctx context.Context, trayIDs, panelIDs []string) (int, error) {
	if len(trayIDs) == 0 && len(panelIDs) == 0 {
		return 0, nil
	}
	var count int64
	q := scopeCrops(s.db.WithContext(ctx), models.CropFilter{TrayIDs: trayIDs, PanelIDs: panelIDs})
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count crops: %w", err)
	}
	return int(count), nil
}

func scopeCrops(db *gorm.DB, filter models.CropFilter) *gorm.DB {
	q := db.Model(&cropRecord{})
	switch {
	case len(filter.TrayIDs) > 0 && len(filter.PanelIDs) > 0:
		return q.Where("(tray_id IN ? OR panel_id IN ?)", filter.TrayIDs, filter.PanelIDs)
	case len(filter.TrayIDs) > 0:
		return q.Where("tray_id IN ?", filter.TrayIDs)
	default:
		return q.Where("panel_id IN ?", filter.PanelIDs)
	}
}

// GetCrop loads a crop by id.
func (s *Store) GetCrop(ctx context.Context, id string) (*models.Crop, error) {
	var rec cropRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Crop with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get crop %s: %w", id, err)
	}
	crop := cropFromRecord(rec)
	return &crop, nil
}

// CreateCrop inserts a crop.
func (s *Store) CreateCrop(ctx context.Context, crop *models.Crop) error {
	rec := cropToRecord(*crop)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err, fmt.Sprintf("Crop with ID %s already exists", crop.ID))
	}
	*crop = cropFromRecord(rec)
	return nil
}
