package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/grid"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

const (
	defaultTrayCapacity  = 50
	defaultPanelCapacity = 30
	dateLayout           = "2006-01-02"
)

// ContainerRepository resolves containers by id.
type ContainerRepository interface {
	GetContainer(ctx context.Context, id string) (*models.Container, error)
}

// TrayRepository persists trays together with their shelf placement.
type TrayRepository interface {
	ListTrays(ctx context.Context, containerID string) ([]models.Tray, error)
	GetTray(ctx context.Context, containerID, trayID string) (*models.Tray, error)
	FindTrayByRFID(ctx context.Context, rfid string) (*models.Tray, error)
	TraySlotTaken(ctx context.Context, containerID, shelf string, slotNumber int) (bool, error)
	CreateTray(ctx context.Context, tray *models.Tray) error
	DeleteTray(ctx context.Context, containerID, trayID string) error
}

// PanelRepository persists panels together with their wall placement.
type PanelRepository interface {
	ListPanels(ctx context.Context, containerID string) ([]models.Panel, error)
	GetPanel(ctx context.Context, containerID, panelID string) (*models.Panel, error)
	FindPanelByRFID(ctx context.Context, rfid string) (*models.Panel, error)
	PanelSlotTaken(ctx context.Context, containerID, wall string, slotNumber int) (bool, error)
	CreatePanel(ctx context.Context, panel *models.Panel) error
	DeletePanel(ctx context.Context, containerID, panelID string) error
}

// CropRepository reads crops referenced by trays and panels.
type CropRepository interface {
	ListCrops(ctx context.Context, filter models.CropFilter) ([]models.Crop, error)
	CountCrops(ctx context.Context, trayIDs, panelIDs []string) (int, error)
	GetCrop(ctx context.Context, id string) (*models.Crop, error)
}

// Store bundles the repositories the inventory service reads and writes.
type Store interface {
	ContainerRepository
	TrayRepository
	PanelRepository
	CropRepository
}

// Service implements the container inventory operations.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService wires an inventory service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// ProvisionTray creates a tray in the container, placing it on a shelf slot
// when the request carries a coordinate.
func (s *Service) ProvisionTray(ctx context.Context, containerID string, req models.ProvisionTrayRequest) (*models.TrayView, error) {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	rfid := strings.TrimSpace(req.RFIDTag)
	if rfid == "" {
		return nil, errs.Invalid("RFID tag must not be empty")
	}

	location, err := trayLocationFromInput(req.Location)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindTrayByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("Tray with RFID tag '%s' already exists", rfid)
	}

	if location != nil {
		taken, err := s.store.TraySlotTaken(ctx, containerID, location.Shelf, location.SlotNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.Conflict("Slot %s/%d is already occupied", location.Shelf, location.SlotNumber)
		}
	}

	capacity := defaultTrayCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	tray := &models.Tray{
		ID:            s.newID(),
		ContainerID:   containerID,
		RFIDTag:       rfid,
		Capacity:      capacity,
		TrayType:      req.TrayType,
		Status:        models.UnitStatusAvailable,
		ProvisionedAt: s.now().UTC(),
		Location:      location,
	}
	if err := s.store.CreateTray(ctx, tray); err != nil {
		return nil, err
	}

	s.logger.Info("tray provisioned",
		zap.String("container_id", containerID),
		zap.String("tray_id", tray.ID),
		zap.String("rfid_tag", rfid),
		zap.Bool("placed", location != nil))

	view := s.trayView(*tray, nil)
	return &view, nil
}

// ProvisionPanel creates a panel in the container, placing it on a wall slot
// when the request carries a coordinate.
func (s *Service) ProvisionPanel(ctx context.Context, containerID string, req models.ProvisionPanelRequest) (*models.PanelView, error) {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}

	rfid := strings.TrimSpace(req.RFIDTag)
	if rfid == "" {
		return nil, errs.Invalid("RFID tag must not be empty")
	}

	location, err := panelLocationFromInput(req.Location)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindPanelByRFID(ctx, rfid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("Panel with RFID tag '%s' already exists", rfid)
	}

	if location != nil {
		taken, err := s.store.PanelSlotTaken(ctx, containerID, location.Wall, location.SlotNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.Conflict("Slot %s/%d is already occupied", location.Wall, location.SlotNumber)
		}
	}

	capacity := defaultPanelCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	panel := &models.Panel{
		ID:            s.newID(),
		ContainerID:   containerID,
		RFIDTag:       rfid,
		Capacity:      capacity,
		PanelType:     req.PanelType,
		Status:        models.UnitStatusAvailable,
		ProvisionedAt: s.now().UTC(),
		Location:      location,
	}
	if err := s.store.CreatePanel(ctx, panel); err != nil {
		return nil, err
	}

	s.logger.Info("panel provisioned",
		zap.String("container_id", containerID),
		zap.String("panel_id", panel.ID),
		zap.String("rfid_tag", rfid),
		zap.Bool("placed", location != nil))

	view := s.panelView(*panel, nil)
	return &view, nil
}

// GetTray returns one tray of the container with its crops.
func (s *Service) GetTray(ctx context.Context, containerID, trayID string) (*models.TrayView, error) {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}
	tray, err := s.store.GetTray(ctx, containerID, trayID)
	if err != nil {
		return nil, err
	}
	crops, err := s.store.ListCrops(ctx, models.CropFilter{TrayIDs: []string{tray.ID}})
	if err != nil {
		return nil, err
	}
	view := s.trayView(*tray, crops)
	return &view, nil
}

// GetPanel returns one panel of the container with its crops.
func (s *Service) GetPanel(ctx context.Context, containerID, panelID string) (*models.PanelView, error) {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return nil, err
	}
	panel, err := s.store.GetPanel(ctx, containerID, panelID)
	if err != nil {
		return nil, err
	}
	crops, err := s.store.ListCrops(ctx, models.CropFilter{PanelIDs: []string{panel.ID}})
	if err != nil {
		return nil, err
	}
	view := s.panelView(*panel, crops)
	return &view, nil
}

// DeleteTray removes a tray and its placement.
func (s *Service) DeleteTray(ctx context.Context, containerID, trayID string) error {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return err
	}
	if err := s.store.DeleteTray(ctx, containerID, trayID); err != nil {
		return err
	}
	s.logger.Info("tray deleted", zap.String("container_id", containerID), zap.String("tray_id", trayID))
	return nil
}

// DeletePanel removes a panel and its placement.
func (s *Service) DeletePanel(ctx context.Context, containerID, panelID string) error {
	if _, err := s.store.GetContainer(ctx, containerID); err != nil {
		return err
	}
	if err := s.store.DeletePanel(ctx, containerID, panelID); err != nil {
		return err
	}
	s.logger.Info("panel deleted", zap.String("container_id", containerID), zap.String("panel_id", panelID))
	return nil
}

// Snapshot computes the live utilization record of a container for the given day.
func (s *Service) Snapshot(ctx context.Context, containerID string, at time.Time) (models.InventorySnapshot, error) {
	trays, err := s.store.ListTrays(ctx, containerID)
	if err != nil {
		return models.InventorySnapshot{}, err
	}
	panels, err := s.store.ListPanels(ctx, containerID)
	if err != nil {
		return models.InventorySnapshot{}, err
	}
	cropCount, err := s.store.CountCrops(ctx, trayIDs(trays), panelIDs(panels))
	if err != nil {
		return models.InventorySnapshot{}, err
	}

	return models.InventorySnapshot{
		ContainerID:                containerID,
		Date:                       at.Format(dateLayout),
		NurseryStationUtilization:  grid.AverageUtilization(trayUtilizations(trays)),
		CultivationAreaUtilization: grid.AverageUtilization(panelUtilizations(panels)),
		TrayCount:                  len(trays),
		PanelCount:                 len(panels),
		CropCount:                  cropCount,
		CreatedAt:                  s.now().UTC(),
	}, nil
}

// filterLayouts are the ISO 8601 forms accepted by date filters. Timestamps
// without an offset are read as UTC.
var filterLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseDate accepts an ISO 8601 calendar date or timestamp.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range filterLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Invalid("Invalid date format '%s': expected ISO 8601 (YYYY-MM-DD)", value)
}

func trayLocationFromInput(in models.TrayLocationInput) (*models.TrayLocation, error) {
	if in.Shelf == nil && in.SlotNumber == nil {
		return nil, nil
	}
	if in.Shelf == nil || in.SlotNumber == nil {
		return nil, errs.Invalid("Both shelf and slot_number are required to place a tray")
	}
	if err := grid.Nursery.Validate(*in.Shelf, *in.SlotNumber); err != nil {
		return nil, err
	}
	return &models.TrayLocation{Shelf: *in.Shelf, SlotNumber: *in.SlotNumber}, nil
}

func panelLocationFromInput(in models.PanelLocationInput) (*models.PanelLocation, error) {
	if in.Wall == nil && in.SlotNumber == nil {
		return nil, nil
	}
	if in.Wall == nil || in.SlotNumber == nil {
		return nil, errs.Invalid("Both wall and slot_number are required to place a panel")
	}
	if err := grid.Cultivation.Validate(*in.Wall, *in.SlotNumber); err != nil {
		return nil, err
	}
	if in.Channel != nil && *in.Channel < 1 {
		return nil, errs.Invalid("Channel must be a positive integer")
	}
	if in.Position != nil && *in.Position < 1 {
		return nil, errs.Invalid("Position must be a positive integer")
	}
	return &models.PanelLocation{
		Wall:       *in.Wall,
		SlotNumber: *in.SlotNumber,
		Channel:    in.Channel,
		Position:   in.Position,
	}, nil
}

func trayIDs(trays []models.Tray) []string {
	ids := make([]string, 0, len(trays))
	for _, t := range trays {
		ids = append(ids, t.ID)
	}
	return ids
}

func panelIDs(panels []models.Panel) []string {
	ids := make([]string, 0, len(panels))
	for _, p := range panels {
		ids = append(ids, p.ID)
	}
	return ids
}

func trayUtilizations(trays []models.Tray) []int {
	out := make([]int, 0, len(trays))
	for _, t := range trays {
		out = append(out, t.UtilizationPercentage)
	}
	return out
}

func panelUtilizations(panels []models.Panel) []int {
	out := make([]int, 0, len(panels))
	for _, p := range panels {
		out = append(out, p.UtilizationPercentage)
	}
	return out
}

func containerScoped(containerID string, err error) error {
	return fmt.Errorf("container %s: %w", containerID, err)
}
