package models

import "time"

// ContainerType enumerates supported growing unit kinds.
type ContainerType string

const (
	ContainerPhysical ContainerType = "physical"
	ContainerVirtual  ContainerType = "virtual"
)

// Container is a physical or virtual growing unit. It owns its trays and panels.
type Container struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Type      ContainerType `json:"type"`
	TenantID  string        `json:"tenant_id,omitempty"`
	Location  string        `json:"location,omitempty"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Unit status values.
const (
	UnitStatusAvailable = "available"
	UnitStatusInUse     = "in_use"
)

// TrayLocation places a tray on a nursery shelf slot.
type TrayLocation struct {
	Shelf      string
	SlotNumber int
}

// Tray is a nursery-stage storage unit. A nil Location means the tray is off-shelf.
type Tray struct {
	ID                    string
	ContainerID           string
	RFIDTag               string
	Capacity              int
	UtilizationPercentage int
	TrayType              string
	Status                string
	ProvisionedAt         time.Time
	Location              *TrayLocation
}

// PanelLocation places a panel on a cultivation wall slot, with optional
// channel/position sub-coordinates.
type PanelLocation struct {
	Wall       string
	SlotNumber int
	Channel    *int
	Position   *int
}

// Panel is a cultivation-stage storage unit. A nil Location means the panel is off-wall.
type Panel struct {
	ID                    string
	ContainerID           string
	RFIDTag               string
	Capacity              int
	UtilizationPercentage int
	PanelType             string
	Status                string
	ProvisionedAt         time.Time
	Location              *PanelLocation
}

// InventorySnapshot is the daily utilization record of one container.
type InventorySnapshot struct {
	ContainerID                string    `bson:"container_id" json:"container_id"`
	Date                       string    `bson:"date" json:"date"`
	NurseryStationUtilization  int       `bson:"nursery_station_utilization" json:"nursery_station_utilization"`
	CultivationAreaUtilization int       `bson:"cultivation_area_utilization" json:"cultivation_area_utilization"`
	TrayCount                  int       `bson:"tray_count" json:"tray_count"`
	PanelCount                 int       `bson:"panel_count" json:"panel_count"`
	CropCount                  int       `bson:"crop_count" json:"crop_count"`
	CreatedAt                  time.Time `bson:"created_at" json:"created_at"`
}

// Inventory areas a utilization figure can refer to.
const (
	AreaNurseryStation  = "nursery_station"
	AreaCultivationArea = "cultivation_area"
)

// UtilizationAlert is raised when an area of a container reaches the alert threshold.
type UtilizationAlert struct {
	ContainerID           string `json:"container_id"`
	ContainerName         string `json:"container_name"`
	Area                  string `json:"area"`
	UtilizationPercentage int    `json:"utilization_percentage"`
	Threshold             int    `json:"threshold"`
	Date                  string `json:"date"`
	Message               string `json:"message"`
}
