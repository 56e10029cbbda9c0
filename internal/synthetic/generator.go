// Package synthetic builds deterministic demo inventories: containers with
// placed and overflow trays and panels, their crops, and a snapshot history.
package synthetic

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/vertical-farm/internal/domain/grid"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

const dateLayout = "2006-01-02"

var seedTypes = []string{
	"Red Oak Lettuce",
	"Green Butterhead",
	"Genovese Basil",
	"Thai Basil",
	"Arugula",
	"Curly Kale",
	"Mizuna",
	"Cilantro",
}

// Fixture is one generated container and everything it owns.
type Fixture struct {
	Container models.Container
	Trays     []models.Tray
	Panels    []models.Panel
	Crops     []models.Crop
	Snapshots []models.InventorySnapshot
}

// Generator draws every value from its own random source.
type Generator struct {
	rnd    *rand.Rand
	seed   int64
	now    time.Time
	serial int
}

// NewGenerator returns a generator whose output depends only on seed and now.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rnd:  rand.New(rand.NewSource(seed)),
		seed: seed,
		now:  now.UTC(),
	}
}

// Fixtures builds count containers with historyDays of past snapshots each.
func (g *Generator) Fixtures(count, historyDays int) []Fixture {
	out := make([]Fixture, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.Fixture(i, historyDays))
	}
	return out
}

// Fixture builds a single container.
func (g *Generator) Fixture(index, historyDays int) Fixture {
	containerType := models.ContainerPhysical
	if index%3 == 2 {
		containerType = models.ContainerVirtual
	}
	f := Fixture{
		Container: models.Container{
			ID:        g.id(),
			Name:      fmt.Sprintf("farm-%d-%02d", g.seed, index+1),
			Type:      containerType,
			Location:  fmt.Sprintf("bay %d", index+1),
			Status:    "active",
			CreatedAt: g.now.AddDate(0, 0, -historyDays-1),
			UpdatedAt: g.now,
		},
	}

	for _, cell := range g.cells(grid.Nursery) {
		tray := models.Tray{
			ID:                    g.id(),
			ContainerID:           f.Container.ID,
			RFIDTag:               g.rfid("TR"),
			Capacity:              50,
			UtilizationPercentage: g.rnd.Intn(101),
			TrayType:              "standard",
			Status:                models.UnitStatusAvailable,
			ProvisionedAt:         f.Container.CreatedAt,
		}
		if cell >= 0 {
			shelf, slot := grid.Nursery.Coordinate(cell)
			tray.Location = &models.TrayLocation{Shelf: shelf, SlotNumber: slot}
		}
		f.Trays = append(f.Trays, tray)
		f.Crops = append(f.Crops, g.crops(models.CropLocationTray, tray.ID)...)
	}

	for _, cell := range g.cells(grid.Cultivation) {
		panel := models.Panel{
			ID:                    g.id(),
			ContainerID:           f.Container.ID,
			RFIDTag:               g.rfid("PN"),
			Capacity:              30,
			UtilizationPercentage: g.rnd.Intn(101),
			PanelType:             "channel",
			Status:                models.UnitStatusAvailable,
			ProvisionedAt:         f.Container.CreatedAt,
		}
		if cell >= 0 {
			wall, slot := grid.Cultivation.Coordinate(cell)
			panel.Location = &models.PanelLocation{Wall: wall, SlotNumber: slot}
		}
		f.Panels = append(f.Panels, panel)
		f.Crops = append(f.Crops, g.crops(models.CropLocationPanel, panel.ID)...)
	}

	f.Snapshots = g.history(f, historyDays)
	return f
}

// cells picks distinct cell indexes for the placed units of a grid followed
// by -1 for each overflow unit.
func (g *Generator) cells(gr grid.Grid) []int {
	capacity := gr.Capacity()
	placed := capacity/4 + g.rnd.Intn(capacity/2+1)
	overflow := g.rnd.Intn(3)

	out := append([]int(nil), g.rnd.Perm(capacity)[:placed]...)
	for i := 0; i < overflow; i++ {
		out = append(out, -1)
	}
	return out
}

func (g *Generator) crops(kind models.CropLocationType, unitID string) []models.Crop {
	n := g.rnd.Intn(4)
	out := make([]models.Crop, 0, n)
	for i := 0; i < n; i++ {
		seeded := g.day(-g.rnd.Intn(40) - 1)
		crop := models.Crop{
			ID:           g.id(),
			SeedType:     seedTypes[g.rnd.Intn(len(seedTypes))],
			LocationType: kind,
			AreaCM2:      float64(g.rnd.Intn(200)) + g.rnd.Float64(),
			WeightG:      float64(g.rnd.Intn(300)),
			SeedDate:     &seeded,
			CreatedAt:    seeded,
		}
		row, column := i/2+1, i%2+1

		if kind == models.CropLocationTray {
			crop.TrayID = &unitID
			crop.Row, crop.Column = &row, &column
			planned := seeded.AddDate(0, 0, 10+g.rnd.Intn(10))
			crop.TransplantingDatePlanned = &planned
			crop.LifecycleStatus = models.LifecycleSeeded
		} else {
			crop.PanelID = &unitID
			channel, position := row, column
			crop.Channel, crop.Position = &channel, &position
			transplanted := seeded.AddDate(0, 0, 10)
			harvest := transplanted.AddDate(0, 0, 14+g.rnd.Intn(14))
			crop.TransplantedDate = &transplanted
			crop.HarvestingDatePlanned = &harvest
			crop.LifecycleStatus = models.LifecycleTransplanted
		}
		out = append(out, crop)
	}
	return out
}

// history walks back from yesterday, drifting utilization away from today's values.
func (g *Generator) history(f Fixture, days int) []models.InventorySnapshot {
	nursery := grid.AverageUtilization(trayUtilizations(f.Trays))
	cultivation := grid.AverageUtilization(panelUtilizations(f.Panels))

	out := make([]models.InventorySnapshot, 0, days)
	for d := days; d >= 1; d-- {
		date := g.day(-d)
		out = append(out, models.InventorySnapshot{
			ContainerID:                f.Container.ID,
			Date:                       date.Format(dateLayout),
			NurseryStationUtilization:  clamp(nursery + g.rnd.Intn(21) - 10),
			CultivationAreaUtilization: clamp(cultivation + g.rnd.Intn(21) - 10),
			TrayCount:                  len(f.Trays),
			PanelCount:                 len(f.Panels),
			CropCount:                  len(f.Crops),
			CreatedAt:                  date.Add(23*time.Hour + 55*time.Minute),
		})
	}
	return out
}

func (g *Generator) id() string {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// rfid is unique per generator; the serial keeps random tags from colliding.
func (g *Generator) rfid(prefix string) string {
	g.serial++
	return fmt.Sprintf("%s-%d-%04d-%04X", prefix, g.seed, g.serial, g.rnd.Intn(0x10000))
}

func (g *Generator) day(offset int) time.Time {
	y, m, d := g.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func trayUtilizations(trays []models.Tray) []int {
	out := make([]int, len(trays))
	for i, t := range trays {
		out[i] = t.UtilizationPercentage
	}
	return out
}

func panelUtilizations(panels []models.Panel) []int {
	out := make([]int, len(panels))
	for i, p := range panels {
		out[i] = p.UtilizationPercentage
	}
	return out
}

// Writer persists fixtures.
type Writer interface {
	CreateContainer(ctx context.Context, container *models.Container) error
	CreateTray(ctx context.Context, tray *models.Tray) error
	CreatePanel(ctx context.Context, panel *models.Panel) error
	CreateCrop(ctx context.Context, crop *models.Crop) error
}

// SnapshotWriter persists snapshot history.
type SnapshotWriter interface {
	SaveSnapshot(ctx context.Context, snapshot models.InventorySnapshot) error
}

// Load writes a fixture, stopping at the first failure. It does not undo
// earlier writes; callers wanting all-or-nothing pass transactional writers.
func Load(ctx context.Context, w Writer, snapshots SnapshotWriter, f Fixture) error {
	if err := w.CreateContainer(ctx, &f.Container); err != nil {
		return fmt.Errorf("container %s: %w", f.Container.Name, err)
	}
	for i := range f.Trays {
		if err := w.CreateTray(ctx, &f.Trays[i]); err != nil {
			return fmt.Errorf("tray %s: %w", f.Trays[i].RFIDTag, err)
		}
	}
	for i := range f.Panels {
		if err := w.CreatePanel(ctx, &f.Panels[i]); err != nil {
			return fmt.Errorf("panel %s: %w", f.Panels[i].RFIDTag, err)
		}
	}
	for i := range f.Crops {
		if err := w.CreateCrop(ctx, &f.Crops[i]); err != nil {
			return fmt.Errorf("crop %s: %w", f.Crops[i].ID, err)
		}
	}
	for _, s := range f.Snapshots {
		if err := snapshots.SaveSnapshot(ctx, s); err != nil {
			return fmt.Errorf("snapshot %s/%s: %w", s.ContainerID, s.Date, err)
		}
	}
	return nil
}
