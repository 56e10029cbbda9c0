package models

import "time"

// CropLocationType describes what a crop is physically attached to.
type CropLocationType string

const (
	CropLocationTray   CropLocationType = "tray"
	CropLocationPanel  CropLocationType = "panel"
	CropLocationRow    CropLocationType = "row"
	CropLocationCustom CropLocationType = "custom"
)

// LifecycleStatus is the growth stage of a crop.
type LifecycleStatus string

const (
	LifecycleSeeded       LifecycleStatus = "seeded"
	LifecycleTransplanted LifecycleStatus = "transplanted"
	LifecycleGrowing      LifecycleStatus = "growing"
	LifecycleHarvested    LifecycleStatus = "harvested"
	LifecycleOverdue      LifecycleStatus = "overdue"
)

// Crop health values derived from overdue days.
const (
	HealthHealthy           = "healthy"
	HealthNeedsAttention    = "needs_attention"
	HealthTreatmentRequired = "treatment_required"
)

// Crop size buckets derived from area.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

const (
	smallAreaLimit  = 40.0
	mediumAreaLimit = 120.0

	attentionOverdueDays = 1
	treatmentOverdueDays = 7
)

// Crop is a planting referenced by a tray or a panel. This service only reads it.
type Crop struct {
	ID                       string
	SeedType                 string
	TrayID                   *string
	PanelID                  *string
	LocationType             CropLocationType
	Row                      *int
	Column                   *int
	Channel                  *int
	Position                 *int
	LifecycleStatus          LifecycleStatus
	SeedDate                 *time.Time
	TransplantingDatePlanned *time.Time
	HarvestingDatePlanned    *time.Time
	TransplantedDate         *time.Time
	HarvestedDate            *time.Time
	AreaCM2                  float64
	WeightG                  float64
	Notes                    string
	CreatedAt                time.Time
}

// AgeDays counts whole days since seeding, 0 when the seed date is unknown.
func (c Crop) AgeDays(now time.Time) int {
	if c.SeedDate == nil {
		return 0
	}
	return daysSince(*c.SeedDate, now)
}

// OverdueDays counts days past the planned date of the next lifecycle step.
// Seeded crops are measured against the planned transplant, transplanted crops
// against the planned harvest. Any other status is never overdue.
func (c Crop) OverdueDays(now time.Time) int {
	var planned *time.Time
	switch c.LifecycleStatus {
	case LifecycleSeeded:
		planned = c.TransplantingDatePlanned
	case LifecycleTransplanted:
		planned = c.HarvestingDatePlanned
	}
	if planned == nil {
		return 0
	}
	return daysSince(*planned, now)
}

// HealthStatus buckets a crop by how far it is behind schedule.
func (c Crop) HealthStatus(now time.Time) string {
	overdue := c.OverdueDays(now)
	switch {
	case overdue >= treatmentOverdueDays:
		return HealthTreatmentRequired
	case overdue >= attentionOverdueDays:
		return HealthNeedsAttention
	default:
		return HealthHealthy
	}
}

// Size buckets a crop by leaf area in square centimetres.
func (c Crop) Size() string {
	switch {
	case c.AreaCM2 < smallAreaLimit:
		return SizeSmall
	case c.AreaCM2 < mediumAreaLimit:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// daysSince returns the number of UTC calendar days from "from" to "to",
// clamped at zero.
func daysSince(from, to time.Time) int {
	f := truncateDay(from)
	t := truncateDay(to)
	if !t.After(f) {
		return 0
	}
	return int(t.Sub(f).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// CropFilter narrows the crop listing of a container.
type CropFilter struct {
	TrayIDs  []string
	PanelIDs []string
	SeedType string
	Skip     int
	Limit    int
}
