package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/grid"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// NurseryStation builds the shelf grid of a container. date is an optional
// ISO 8601 point in time; it is validated but occupancy is always current.
func (s *Service) NurseryStation(ctx context.Context, containerID, date string) (*models.NurseryStationView, error) {
	if date != "" {
		if _, err := ParseDate(date); err != nil {
			return nil, err
		}
	}
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	trays, err := s.store.ListTrays(ctx, containerID)
	if err != nil {
		return nil, containerScoped(containerID, err)
	}
	crops, err := s.store.ListCrops(ctx, models.CropFilter{TrayIDs: trayIDs(trays)})
	if err != nil {
		return nil, containerScoped(containerID, err)
	}
	cropsByTray := make(map[string][]models.Crop)
	for _, c := range crops {
		if c.TrayID != nil {
			cropsByTray[*c.TrayID] = append(cropsByTray[*c.TrayID], c)
		}
	}

	shelves := make(map[string]map[int]*models.TrayView, len(grid.Nursery.Positions))
	for _, p := range grid.Nursery.Positions {
		shelves[p] = make(map[int]*models.TrayView)
	}
	offShelf := []models.TrayView{}

	for _, tray := range trays {
		view := s.trayView(tray, cropsByTray[tray.ID])
		if tray.Location == nil {
			offShelf = append(offShelf, view)
			continue
		}
		slots, ok := shelves[tray.Location.Shelf]
		if !ok {
			s.logger.Warn("tray placed on unknown shelf",
				zap.String("tray_id", tray.ID), zap.String("shelf", tray.Location.Shelf))
			continue
		}
		if _, dup := slots[tray.Location.SlotNumber]; dup {
			s.logger.Warn("shelf slot holds more than one tray",
				zap.String("tray_id", tray.ID),
				zap.String("shelf", tray.Location.Shelf),
				zap.Int("slot_number", tray.Location.SlotNumber))
			continue
		}
		slots[tray.Location.SlotNumber] = &view
	}

	return &models.NurseryStationView{
		ContainerID:           containerID,
		UtilizationPercentage: grid.AverageUtilization(trayUtilizations(trays)),
		UpperShelf:            traySlots(shelves[grid.ShelfUpper], grid.Nursery.SlotsPerPosition),
		LowerShelf:            traySlots(shelves[grid.ShelfLower], grid.Nursery.SlotsPerPosition),
		OffShelfTrays:         offShelf,
	}, nil
}

// CultivationArea builds the wall grid of a container. date behaves as in NurseryStation.
func (s *Service) CultivationArea(ctx context.Context, containerID, date string) (*models.CultivationAreaView, error) {
	if date != "" {
		if _, err := ParseDate(date); err != nil {
			return nil, err
		}
	}
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	panels, err := s.store.ListPanels(ctx, containerID)
	if err != nil {
		return nil, containerScoped(containerID, err)
	}
	crops, err := s.store.ListCrops(ctx, models.CropFilter{PanelIDs: panelIDs(panels)})
	if err != nil {
		return nil, containerScoped(containerID, err)
	}
	cropsByPanel := make(map[string][]models.Crop)
	for _, c := range crops {
		if c.PanelID != nil {
			cropsByPanel[*c.PanelID] = append(cropsByPanel[*c.PanelID], c)
		}
	}

	walls := make(map[string]map[int]*models.PanelView, len(grid.Cultivation.Positions))
	for _, p := range grid.Cultivation.Positions {
		walls[p] = make(map[int]*models.PanelView)
	}
	offWall := []models.PanelView{}

	for _, panel := range panels {
		view := s.panelView(panel, cropsByPanel[panel.ID])
		if panel.Location == nil {
			offWall = append(offWall, view)
			continue
		}
		slots, ok := walls[panel.Location.Wall]
		if !ok {
			s.logger.Warn("panel placed on unknown wall",
				zap.String("panel_id", panel.ID), zap.String("wall", panel.Location.Wall))
			continue
		}
		if _, dup := slots[panel.Location.SlotNumber]; dup {
			s.logger.Warn("wall slot holds more than one panel",
				zap.String("panel_id", panel.ID),
				zap.String("wall", panel.Location.Wall),
				zap.Int("slot_number", panel.Location.SlotNumber))
			continue
		}
		slots[panel.Location.SlotNumber] = &view
	}

	n := grid.Cultivation.SlotsPerPosition
	return &models.CultivationAreaView{
		ContainerID:           containerID,
		UtilizationPercentage: grid.AverageUtilization(panelUtilizations(panels)),
		Wall1:                 panelSlots(walls[grid.Wall1], n),
		Wall2:                 panelSlots(walls[grid.Wall2], n),
		Wall3:                 panelSlots(walls[grid.Wall3], n),
		Wall4:                 panelSlots(walls[grid.Wall4], n),
		OffWallPanels:         offWall,
	}, nil
}

// traySlots expands placed trays into a dense 1-based slot array of length n.
func traySlots(placed map[int]*models.TrayView, n int) []models.TraySlot {
	slots := make([]models.TraySlot, n)
	for i := range slots {
		number := i + 1
		tray := placed[number]
		slots[i] = models.TraySlot{SlotNumber: number, Occupied: tray != nil, Tray: tray}
	}
	return slots
}

// panelSlots expands placed panels into a dense 1-based slot array of length n.
func panelSlots(placed map[int]*models.PanelView, n int) []models.PanelSlot {
	slots := make([]models.PanelSlot, n)
	for i := range slots {
		number := i + 1
		panel := placed[number]
		slots[i] = models.PanelSlot{SlotNumber: number, Occupied: panel != nil, Panel: panel}
	}
	return slots
}

func (s *Service) trayView(tray models.Tray, crops []models.Crop) models.TrayView {
	view := models.TrayView{
		ID:                    tray.ID,
		ContainerID:           tray.ContainerID,
		RFIDTag:               tray.RFIDTag,
		Capacity:              tray.Capacity,
		TrayType:              tray.TrayType,
		Status:                tray.Status,
		UtilizationPercentage: tray.UtilizationPercentage,
		CropCount:             len(crops),
		IsEmpty:               len(crops) == 0,
		ProvisionedAt:         tray.ProvisionedAt,
		Crops:                 s.unitCrops(crops),
	}
	if tray.Location != nil {
		shelf, slot := tray.Location.Shelf, tray.Location.SlotNumber
		view.Location = models.TrayLocationView{Shelf: &shelf, SlotNumber: &slot}
	}
	return view
}

func (s *Service) panelView(panel models.Panel, crops []models.Crop) models.PanelView {
	view := models.PanelView{
		ID:                    panel.ID,
		ContainerID:           panel.ContainerID,
		RFIDTag:               panel.RFIDTag,
		Capacity:              panel.Capacity,
		PanelType:             panel.PanelType,
		Status:                panel.Status,
		UtilizationPercentage: panel.UtilizationPercentage,
		CropCount:             len(crops),
		IsEmpty:               len(crops) == 0,
		ProvisionedAt:         panel.ProvisionedAt,
		Crops:                 s.unitCrops(crops),
	}
	if panel.Location != nil {
		wall, slot := panel.Location.Wall, panel.Location.SlotNumber
		view.Location = models.PanelLocationView{
			Wall:       &wall,
			SlotNumber: &slot,
			Channel:    panel.Location.Channel,
			Position:   panel.Location.Position,
		}
	}
	return view
}

func (s *Service) unitCrops(crops []models.Crop) []models.UnitCropView {
	now := s.now()
	out := make([]models.UnitCropView, 0, len(crops))
	for _, c := range crops {
		out = append(out, models.UnitCropView{
			ID:                       c.ID,
			SeedType:                 c.SeedType,
			Row:                      c.Row,
			Column:                   c.Column,
			Channel:                  c.Channel,
			Position:                 c.Position,
			LifecycleStatus:          string(c.LifecycleStatus),
			AgeDays:                  c.AgeDays(now),
			SeededDate:               c.SeedDate,
			PlannedTransplantingDate: c.TransplantingDatePlanned,
			OverdueDays:              c.OverdueDays(now),
			HealthStatus:             c.HealthStatus(now),
			Size:                     c.Size(),
		})
	}
	return out
}
