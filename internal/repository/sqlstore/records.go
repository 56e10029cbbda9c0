package sqlstore

import (
	"time"

	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

type containerRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	Type      string `gorm:"size:16;not null"`
	TenantID  string `gorm:"size:64;index"`
	Location  string `gorm:"size:255"`
	Status    string `gorm:"size:32;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (containerRecord) TableName() string { return "containers" }

type trayRecord struct {
	ID                    string `gorm:"primaryKey;size:36"`
	ContainerID           string `gorm:"size:36;not null;index"`
	RFIDTag               string `gorm:"column:rfid_tag;size:64;not null;uniqueIndex"`
	Capacity              int    `gorm:"not null"`
	UtilizationPercentage int    `gorm:"not null;default:0"`
	TrayType              string `gorm:"size:32"`
	Status                string `gorm:"size:32;not null"`
	ProvisionedAt         time.Time
	Location              *trayLocationRecord `gorm:"foreignKey:TrayID;references:ID;constraint:OnDelete:CASCADE"`
}

func (trayRecord) TableName() string { return "trays" }

// trayLocationRecord is the placement row of a tray. A tray has at most one
// and a shelf slot holds at most one tray per container.
type trayLocationRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	TrayID      string `gorm:"size:36;not null;uniqueIndex"`
	ContainerID string `gorm:"size:36;not null;uniqueIndex:idx_tray_slot"`
	Shelf       string `gorm:"size:16;not null;uniqueIndex:idx_tray_slot"`
	SlotNumber  int    `gorm:"not null;uniqueIndex:idx_tray_slot"`
}

func (trayLocationRecord) TableName() string { return "tray_locations" }

type panelRecord struct {
	ID                    string `gorm:"primaryKey;size:36"`
	ContainerID           string `gorm:"size:36;not null;index"`
	RFIDTag               string `gorm:"column:rfid_tag;size:64;not null;uniqueIndex"`
	Capacity              int    `gorm:"not null"`
	UtilizationPercentage int    `gorm:"not null;default:0"`
	PanelType             string `gorm:"size:32"`
	Status                string `gorm:"size:32;not null"`
	ProvisionedAt         time.Time
	Location              *panelLocationRecord `gorm:"foreignKey:PanelID;references:ID;constraint:OnDelete:CASCADE"`
}

func (panelRecord) TableName() string { return "panels" }

type panelLocationRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	PanelID     string `gorm:"size:36;not null;uniqueIndex"`
	ContainerID string `gorm:"size:36;not null;uniqueIndex:idx_panel_slot"`
	Wall        string `gorm:"size:16;not null;uniqueIndex:idx_panel_slot"`
	SlotNumber  int    `gorm:"not null;uniqueIndex:idx_panel_slot"`
	Channel     *int
	Position    *int
}

func (panelLocationRecord) TableName() string { return "panel_locations" }

type cropRecord struct {
	ID                       string  `gorm:"primaryKey;size:36"`
	SeedType                 string  `gorm:"size:128;not null"`
	TrayID                   *string `gorm:"size:36;index"`
	PanelID                  *string `gorm:"size:36;index"`
	LocationType             string  `gorm:"size:16;not null"`
	Row                      *int
	Column                   *int `gorm:"column:column_number"`
	Channel                  *int
	Position                 *int
	LifecycleStatus          string `gorm:"size:16;not null"`
	SeedDate                 *time.Time
	TransplantingDatePlanned *time.Time
	HarvestingDatePlanned    *time.Time
	TransplantedDate         *time.Time
	HarvestedDate            *time.Time
	AreaCM2                  float64 `gorm:"column:area_cm2"`
	WeightG                  float64 `gorm:"column:weight_g"`
	Notes                    string
	CreatedAt                time.Time
}

func (cropRecord) TableName() string { return "crops" }

type snapshotRecord struct {
	ID                         uint   `gorm:"primaryKey;autoIncrement"`
	ContainerID                string `gorm:"size:36;not null;uniqueIndex:idx_snapshot_day"`
	Date                       string `gorm:"size:10;not null;uniqueIndex:idx_snapshot_day"`
	NurseryStationUtilization  int
	CultivationAreaUtilization int
	TrayCount                  int
	PanelCount                 int
	CropCount                  int
	CreatedAt                  time.Time
}

func (snapshotRecord) TableName() string { return "inventory_snapshots" }

func containerFromRecord(r containerRecord) models.Container {
	return models.Container{
		ID:        r.ID,
		Name:      r.Name,
		Type:      models.ContainerType(r.Type),
		TenantID:  r.TenantID,
		Location:  r.Location,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func trayFromRecord(r trayRecord) models.Tray {
	tray := models.Tray{
		ID:                    r.ID,
		ContainerID:           r.ContainerID,
		RFIDTag:               r.RFIDTag,
		Capacity:              r.Capacity,
		UtilizationPercentage: r.UtilizationPercentage,
		TrayType:              r.TrayType,
		Status:                r.Status,
		ProvisionedAt:         r.ProvisionedAt,
	}
	if r.Location != nil {
		tray.Location = &models.TrayLocation{Shelf: r.Location.Shelf, SlotNumber: r.Location.SlotNumber}
	}
	return tray
}

func panelFromRecord(r panelRecord) models.Panel {
	panel := models.Panel{
		ID:                    r.ID,
		ContainerID:           r.ContainerID,
		RFIDTag:               r.RFIDTag,
		Capacity:              r.Capacity,
		UtilizationPercentage: r.UtilizationPercentage,
		PanelType:             r.PanelType,
		Status:                r.Status,
		ProvisionedAt:         r.ProvisionedAt,
	}
	if r.Location != nil {
		panel.Location = &models.PanelLocation{
			Wall:       r.Location.Wall,
			SlotNumber: r.Location.SlotNumber,
			Channel:    r.Location.Channel,
			Position:   r.Location.Position,
		}
	}
	return panel
}

func cropFromRecord(r cropRecord) models.Crop {
	return models.Crop{
		ID:                       r.ID,
		SeedType:                 r.SeedType,
		TrayID:                   r.TrayID,
		PanelID:                  r.PanelID,
		LocationType:             models.CropLocationType(r.LocationType),
		Row:                      r.Row,
		Column:                   r.Column,
		Channel:                  r.Channel,
		Position:                 r.Position,
		LifecycleStatus:          models.LifecycleStatus(r.LifecycleStatus),
		SeedDate:                 r.SeedDate,
		TransplantingDatePlanned: r.TransplantingDatePlanned,
		HarvestingDatePlanned:    r.HarvestingDatePlanned,
		TransplantedDate:         r.TransplantedDate,
		HarvestedDate:            r.HarvestedDate,
		AreaCM2:                  r.AreaCM2,
		WeightG:                  r.WeightG,
		Notes:                    r.Notes,
		CreatedAt:                r.CreatedAt,
	}
}

func cropToRecord(c models.Crop) cropRecord {
	return cropRecord{
		ID:                       c.ID,
		SeedType:                 c.SeedType,
		TrayID:                   c.TrayID,
		PanelID:                  c.PanelID,
		LocationType:             string(c.LocationType),
		Row:                      c.Row,
		Column:                   c.Column,
		Channel:                  c.Channel,
		Position:                 c.Position,
		LifecycleStatus:          string(c.LifecycleStatus),
		SeedDate:                 c.SeedDate,
		TransplantingDatePlanned: c.TransplantingDatePlanned,
		HarvestingDatePlanned:    c.HarvestingDatePlanned,
		TransplantedDate:         c.TransplantedDate,
		HarvestedDate:            c.HarvestedDate,
		AreaCM2:                  c.AreaCM2,
		WeightG:                  c.WeightG,
		Notes:                    c.Notes,
		CreatedAt:                c.CreatedAt,
	}
}

func snapshotFromRecord(r snapshotRecord) models.InventorySnapshot {
	return models.InventorySnapshot{
		ContainerID:                r.ContainerID,
		Date:                       r.Date,
		NurseryStationUtilization:  r.NurseryStationUtilization,
		CultivationAreaUtilization: r.CultivationAreaUtilization,
		TrayCount:                  r.TrayCount,
		PanelCount:                 r.PanelCount,
		CropCount:                  r.CropCount,
		CreatedAt:                  r.CreatedAt,
	}
}
