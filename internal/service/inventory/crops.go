package inventory

import (
	"context"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// MaxCropPageSize bounds the limit of a crop listing.
const MaxCropPageSize = 100

// CropQuery filters and pages a container crop listing.
type CropQuery struct {
	SeedType string
	Skip     int
	Limit    int
}

// ListCrops lists the crops held by the container's trays and panels.
func (s *Service) ListCrops(ctx context.Context, containerID string, query CropQuery) (*models.CropListView, error) {
	if query.Skip < 0 {
		return nil, errs.Invalid("skip must not be negative")
	}
	if query.Limit <= 0 || query.Limit > MaxCropPageSize {
		return nil, errs.Invalid("limit must be between 1 and %d", MaxCropPageSize)
	}
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	trays, err := s.store.ListTrays(ctx, containerID)
	if err != nil {
		return nil, containerScoped(containerID, err)
	}
	panels, err := s.store.ListPanels(ctx, containerID)
	if err != nil {
		return nil, containerScoped(containerID, err)
	}

	crops, err := s.store.ListCrops(ctx, models.CropFilter{
		TrayIDs:  trayIDs(trays),
		PanelIDs: panelIDs(panels),
		SeedType: query.SeedType,
		Skip:     query.Skip,
		Limit:    query.Limit,
	})
	if err != nil {
		return nil, containerScoped(containerID, err)
	}

	views := make([]models.CropView, 0, len(crops))
	for _, c := range crops {
		views = append(views, s.cropView(c))
	}
	return &models.CropListView{Crops: views, Skip: query.Skip, Limit: query.Limit}, nil
}

// GetCrop returns a crop held by one of the container's trays or panels.
func (s *Service) GetCrop(ctx context.Context, containerID, cropID string) (*models.CropDetailView, error) {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}
	crop, err := s.store.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}

	owned, err := s.cropInContainer(ctx, containerID, *crop)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errs.NotFound("Crop with ID %s not found in container %s", cropID, containerID)
	}

	return &models.CropDetailView{
		CropView:    s.cropView(*crop),
		ContainerID: containerID,
		AreaCM2:     crop.AreaCM2,
		WeightG:     crop.WeightG,
		Notes:       crop.Notes,
	}, nil
}

func (s *Service) cropInContainer(ctx context.Context, containerID string, crop models.Crop) (bool, error) {
	if crop.TrayID != nil {
		_, err := s.store.GetTray(ctx, containerID, *crop.TrayID)
		switch {
		case err == nil:
			return true, nil
		case !errs.IsNotFound(err):
			return false, err
		}
	}
	if crop.PanelID != nil {
		_, err := s.store.GetPanel(ctx, containerID, *crop.PanelID)
		switch {
		case err == nil:
			return true, nil
		case !errs.IsNotFound(err):
			return false, err
		}
	}
	return false, nil
}

func (s *Service) cropView(c models.Crop) models.CropView {
	now := s.now()
	return models.CropView{
		ID:                       c.ID,
		SeedType:                 c.SeedType,
		LifecycleStatus:          string(c.LifecycleStatus),
		SeedDate:                 c.SeedDate,
		TransplantingDatePlanned: c.TransplantingDatePlanned,
		HarvestingDatePlanned:    c.HarvestingDatePlanned,
		TransplantedDate:         c.TransplantedDate,
		HarvestedDate:            c.HarvestedDate,
		Age:                      c.AgeDays(now),
		OverdueDays:              c.OverdueDays(now),
		HealthStatus:             c.HealthStatus(now),
		Size:                     c.Size(),
		Location: models.CropLocationView{
			Type:     string(c.LocationType),
			TrayID:   c.TrayID,
			PanelID:  c.PanelID,
			Row:      c.Row,
			Column:   c.Column,
			Channel:  c.Channel,
			Position: c.Position,
		},
	}
}
