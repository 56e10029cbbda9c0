package models

import "time"

// TrayLocationInput is the optional shelf coordinate of a tray provisioning request.
// Both fields nil means the tray goes off-shelf.
type TrayLocationInput struct {
	Shelf      *string `json:"shelf"`
	SlotNumber *int    `json:"slot_number"`
}

// ProvisionTrayRequest is the body of POST /containers/{id}/inventory/tray.
type ProvisionTrayRequest struct {
	RFIDTag  string            `json:"rfid_tag" binding:"required"`
	Location TrayLocationInput `json:"location"`
	Capacity *int              `json:"capacity" binding:"omitempty,min=1"`
	TrayType string            `json:"tray_type"`
}

// PanelLocationInput is the optional wall coordinate of a panel provisioning request.
type PanelLocationInput struct {
	Wall       *string `json:"wall"`
	SlotNumber *int    `json:"slot_number"`
	Channel    *int    `json:"channel"`
	Position   *int    `json:"position"`
}

// ProvisionPanelRequest is the body of POST /containers/{id}/inventory/panel.
type ProvisionPanelRequest struct {
	RFIDTag   string             `json:"rfid_tag" binding:"required"`
	Location  PanelLocationInput `json:"location"`
	Capacity  *int               `json:"capacity" binding:"omitempty,min=1"`
	PanelType string             `json:"panel_type"`
}

// CreateContainerRequest is the body of POST /containers.
type CreateContainerRequest struct {
	Name     string        `json:"name" binding:"required"`
	Type     ContainerType `json:"type" binding:"required"`
	TenantID string        `json:"tenant_id"`
	Location string        `json:"location"`
}

// TrayLocationView echoes a tray coordinate; both fields are null off-shelf.
type TrayLocationView struct {
	Shelf      *string `json:"shelf"`
	SlotNumber *int    `json:"slot_number"`
}

// PanelLocationView echoes a panel coordinate; wall and slot are null off-wall.
type PanelLocationView struct {
	Wall       *string `json:"wall"`
	SlotNumber *int    `json:"slot_number"`
	Channel    *int    `json:"channel"`
	Position   *int    `json:"position"`
}

// UnitCropView is a crop embedded in a tray or panel view.
type UnitCropView struct {
	ID                       string     `json:"id"`
	SeedType                 string     `json:"seed_type"`
	Row                      *int       `json:"row"`
	Column                   *int       `json:"column"`
	Channel                  *int       `json:"channel"`
	Position                 *int       `json:"position"`
	LifecycleStatus          string     `json:"lifecycle_status"`
	AgeDays                  int        `json:"age_days"`
	SeededDate               *time.Time `json:"seeded_date"`
	PlannedTransplantingDate *time.Time `json:"planned_transplanting_date"`
	OverdueDays              int        `json:"overdue_days"`
	HealthStatus             string     `json:"health_status"`
	Size                     string     `json:"size"`
}

// TrayView is the display form of a tray.
type TrayView struct {
	ID                    string           `json:"id"`
	ContainerID           string           `json:"container_id"`
	RFIDTag               string           `json:"rfid_tag"`
	Location              TrayLocationView `json:"location"`
	Capacity              int              `json:"capacity"`
	TrayType              string           `json:"tray_type"`
	Status                string           `json:"status"`
	UtilizationPercentage int              `json:"utilization_percentage"`
	CropCount             int              `json:"crop_count"`
	IsEmpty               bool             `json:"is_empty"`
	ProvisionedAt         time.Time        `json:"provisioned_at"`
	Crops                 []UnitCropView   `json:"crops"`
}

// PanelView is the display form of a panel.
type PanelView struct {
	ID                    string            `json:"id"`
	ContainerID           string            `json:"container_id"`
	RFIDTag               string            `json:"rfid_tag"`
	Location              PanelLocationView `json:"location"`
	Capacity              int               `json:"capacity"`
	PanelType             string            `json:"panel_type"`
	Status                string            `json:"status"`
	UtilizationPercentage int               `json:"utilization_percentage"`
	CropCount             int               `json:"crop_count"`
	IsEmpty               bool              `json:"is_empty"`
	ProvisionedAt         time.Time         `json:"provisioned_at"`
	Crops                 []UnitCropView    `json:"crops"`
}

// TraySlot is one 1-based cell of a shelf.
type TraySlot struct {
	SlotNumber int       `json:"slot_number"`
	Occupied   bool      `json:"occupied"`
	Tray       *TrayView `json:"tray"`
}

// PanelSlot is one 1-based cell of a wall.
type PanelSlot struct {
	SlotNumber int        `json:"slot_number"`
	Occupied   bool       `json:"occupied"`
	Panel      *PanelView `json:"panel"`
}

// NurseryStationView is the full shelf grid of a container.
type NurseryStationView struct {
	ContainerID           string     `json:"container_id"`
	UtilizationPercentage int        `json:"utilization_percentage"`
	UpperShelf            []TraySlot `json:"upper_shelf"`
	LowerShelf            []TraySlot `json:"lower_shelf"`
	OffShelfTrays         []TrayView `json:"off_shelf_trays"`
}

// CultivationAreaView is the full wall grid of a container.
type CultivationAreaView struct {
	ContainerID           string      `json:"container_id"`
	UtilizationPercentage int         `json:"utilization_percentage"`
	Wall1                 []PanelSlot `json:"wall_1"`
	Wall2                 []PanelSlot `json:"wall_2"`
	Wall3                 []PanelSlot `json:"wall_3"`
	Wall4                 []PanelSlot `json:"wall_4"`
	OffWallPanels         []PanelView `json:"off_wall_panels"`
}

// CropLocationView tells where a listed crop sits.
type CropLocationView struct {
	Type     string  `json:"type"`
	TrayID   *string `json:"tray_id"`
	PanelID  *string `json:"panel_id"`
	Row      *int    `json:"row"`
	Column   *int    `json:"column"`
	Channel  *int    `json:"channel"`
	Position *int    `json:"position"`
}

// CropView is an entry of the container crop listing.
type CropView struct {
	ID                       string           `json:"id"`
	SeedType                 string           `json:"seed_type"`
	LifecycleStatus          string           `json:"lifecycle_status"`
	SeedDate                 *time.Time       `json:"seed_date"`
	TransplantingDatePlanned *time.Time       `json:"transplanting_date_planned"`
	HarvestingDatePlanned    *time.Time       `json:"harvesting_date_planned"`
	TransplantedDate         *time.Time       `json:"transplanted_date"`
	HarvestedDate            *time.Time       `json:"harvested_date"`
	Age                      int              `json:"age"`
	OverdueDays              int              `json:"overdue_days"`
	HealthStatus             string           `json:"health_status"`
	Size                     string           `json:"size"`
	Location                 CropLocationView `json:"location"`
}

// CropDetailView adds measurements and notes to a CropView.
type CropDetailView struct {
	CropView
	ContainerID string  `json:"container_id"`
	AreaCM2     float64 `json:"area_cm2"`
	WeightG     float64 `json:"weight_g"`
	Notes       string  `json:"notes"`
}

// CropListView wraps a page of crops.
type CropListView struct {
	Crops []CropView `json:"crops"`
	Skip  int        `json:"skip"`
	Limit int        `json:"limit"`
}

// InventoryMetricsView is the date-keyed utilization history of a container.
type InventoryMetricsView struct {
	ContainerID string              `json:"container_id"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Metrics     []InventorySnapshot `json:"metrics"`
}
