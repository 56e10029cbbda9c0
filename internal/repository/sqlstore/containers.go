package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// CreateContainer inserts a container. Names are unique.
func (s *Store) CreateContainer(ctx context.Context, container *models.Container) error {
	rec := containerRecord{
		ID:       container.ID,
		Name:     container.Name,
		Type:     string(container.Type),
		TenantID: container.TenantID,
		Location: container.Location,
		Status:   container.Status,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return translate(err, fmt.Sprintf("Container with name '%s' already exists", container.Name))
	}
	*container = containerFromRecord(rec)
	return nil
}

// GetContainer loads a container by id.
func (s *Store) GetContainer(ctx context.Context, id string) (*models.Container, error) {
	var rec containerRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Container with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get container %s: %w", id, err)
	}
	container := containerFromRecord(rec)
	return &container, nil
}

// ListContainers returns all containers ordered by name.
func (s *Store) ListContainers(ctx context.Context) ([]models.Container, error) {
	var recs []containerRecord
	if err := s.db.WithContext(ctx).Order("name").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	out := make([]models.Container, 0, len(recs))
	for _, rec := range recs {
		out = append(out, containerFromRecord(rec))
	}
	return out, nil
}
