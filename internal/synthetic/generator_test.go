package synthetic_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/grid"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
	"github.com/mamadbah2/vertical-farm/internal/repository/sqlstore"
	"github.com/mamadbah2/vertical-farm/internal/service/inventory"
	"github.com/mamadbah2/vertical-farm/internal/synthetic"
	sqlitetest "github.com/mamadbah2/vertical-farm/internal/testutils/sqlite"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestFixturesAreDeterministic(t *testing.T) {
	a := synthetic.NewGenerator(7, now).Fixtures(2, 5)
	b := synthetic.NewGenerator(7, now).Fixtures(2, 5)
	if !reflect.DeepEqual(a, b) {
		t.Error("the same seed must produce the same fixtures")
	}

	c := synthetic.NewGenerator(8, now).Fixtures(2, 5)
	if a[0].Container.ID == c[0].Container.ID {
		t.Error("different seeds should produce different ids")
	}
}

func TestFixturePlacements(t *testing.T) {
	for _, f := range synthetic.NewGenerator(42, now).Fixtures(5, 3) {
		traySlots := map[string]bool{}
		for _, tray := range f.Trays {
			if tray.Location == nil {
				continue
			}
			if err := grid.Nursery.Validate(tray.Location.Shelf, tray.Location.SlotNumber); err != nil {
				t.Errorf("%s: invalid tray coordinate: %v", f.Container.Name, err)
			}
			key := fmt.Sprintf("%s/%d", tray.Location.Shelf, tray.Location.SlotNumber)
			if traySlots[key] {
				t.Errorf("%s: slot %s used twice", f.Container.Name, key)
			}
			traySlots[key] = true
		}

		panelSlots := map[string]bool{}
		for _, panel := range f.Panels {
			if panel.Location == nil {
				continue
			}
			if err := grid.Cultivation.Validate(panel.Location.Wall, panel.Location.SlotNumber); err != nil {
				t.Errorf("%s: invalid panel coordinate: %v", f.Container.Name, err)
			}
			key := fmt.Sprintf("%s/%d", panel.Location.Wall, panel.Location.SlotNumber)
			if panelSlots[key] {
				t.Errorf("%s: slot %s used twice", f.Container.Name, key)
			}
			panelSlots[key] = true
		}

		if len(f.Snapshots) != 3 {
			t.Errorf("%s: expected 3 history days, got %d", f.Container.Name, len(f.Snapshots))
		}
		for _, s := range f.Snapshots {
			if s.Date >= "2025-06-15" {
				t.Errorf("history must end yesterday, got %s", s.Date)
			}
		}
	}
}

func TestLoadIntoStore(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	fixtures := synthetic.NewGenerator(3, now).Fixtures(2, 4)
	for _, f := range fixtures {
		if err := synthetic.Load(ctx, store, store, f); err != nil {
			t.Fatalf("load: %v", err)
		}
	}

	svc := inventory.NewService(store, zap.NewNop())
	for _, f := range fixtures {
		view, err := svc.NurseryStation(ctx, f.Container.ID, "")
		if err != nil {
			t.Fatalf("nursery: %v", err)
		}
		placed, overflow := 0, 0
		for _, tray := range f.Trays {
			if tray.Location == nil {
				overflow++
			} else {
				placed++
			}
		}
		occupied := 0
		for _, slot := range append(view.UpperShelf, view.LowerShelf...) {
			if slot.Occupied {
				occupied++
			}
		}
		if occupied != placed || len(view.OffShelfTrays) != overflow {
			t.Errorf("%s: occupied %d/%d overflow %d/%d", f.Container.Name, occupied, placed, len(view.OffShelfTrays), overflow)
		}

		snap, err := svc.Snapshot(ctx, f.Container.ID, now)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if snap.CropCount != len(f.Crops) || snap.PanelCount != len(f.Panels) {
			t.Errorf("%s: counts %+v do not match fixture", f.Container.Name, snap)
		}

		stored, err := store.ListSnapshots(ctx, f.Container.ID, "2025-06-01", "2025-06-30")
		if err != nil || len(stored) != 4 {
			t.Errorf("%s: expected 4 stored snapshots, got %d (%v)", f.Container.Name, len(stored), err)
		}
	}
}

func TestFailedLoadLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	f := synthetic.NewGenerator(11, now).Fixture(0, 2)

	broken := f
	broken.Panels = append([]models.Panel(nil), f.Panels...)
	broken.Panels[1].RFIDTag = broken.Panels[0].RFIDTag

	err := store.Transaction(ctx, func(tx *sqlstore.Store) error {
		return synthetic.Load(ctx, tx, tx, broken)
	})
	if !errs.IsConflict(err) {
		t.Fatalf("expected the duplicate rfid to conflict, got %v", err)
	}

	list, err := store.ListContainers(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("container must be rolled back: %+v (%v)", list, err)
	}
	trays, err := store.ListTrays(ctx, f.Container.ID)
	if err != nil || len(trays) != 0 {
		t.Fatalf("trays must be rolled back: %d (%v)", len(trays), err)
	}
	if snaps, _ := store.ListSnapshots(ctx, f.Container.ID, "2025-01-01", "2025-12-31"); len(snaps) != 0 {
		t.Fatalf("snapshots must be rolled back: %+v", snaps)
	}

	err = store.Transaction(ctx, func(tx *sqlstore.Store) error {
		return synthetic.Load(ctx, tx, tx, f)
	})
	if err != nil {
		t.Fatalf("a rerun must complete the container: %v", err)
	}
	trays, err = store.ListTrays(ctx, f.Container.ID)
	if err != nil || len(trays) != len(f.Trays) {
		t.Errorf("expected %d trays after rerun, got %d (%v)", len(f.Trays), len(trays), err)
	}
}
