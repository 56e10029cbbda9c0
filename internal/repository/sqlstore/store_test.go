package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
	"github.com/mamadbah2/vertical-farm/internal/repository/sqlstore"
	sqlitetest "github.com/mamadbah2/vertical-farm/internal/testutils/sqlite"
)

func strPtr(s string) *string { return &s }

func seedContainer(t *testing.T, store *sqlstore.Store, id, name string) {
	t.Helper()
	c := &models.Container{ID: id, Name: name, Type: models.ContainerPhysical, Status: "active"}
	if err := store.CreateContainer(context.Background(), c); err != nil {
		t.Fatalf("create container: %v", err)
	}
}

func newTray(id, containerID, rfid string, loc *models.TrayLocation) *models.Tray {
	return &models.Tray{
		ID:            id,
		ContainerID:   containerID,
		RFIDTag:       rfid,
		Capacity:      50,
		Status:        models.UnitStatusAvailable,
		ProvisionedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Location:      loc,
	}
}

func TestContainers(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)

	seedContainer(t, store, "c-1", "farm-alpha")

	t.Run("it loads a stored container", func(t *testing.T) {
		got, err := store.GetContainer(ctx, "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "farm-alpha" || got.Type != models.ContainerPhysical {
			t.Errorf("unexpected container: %+v", got)
		}
	})

	t.Run("it reports missing containers as not found", func(t *testing.T) {
		_, err := store.GetContainer(ctx, "nope")
		if !errs.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		if err.Error() != "Container with ID nope not found" {
			t.Errorf("unexpected detail: %s", err)
		}
	})

	t.Run("it rejects duplicate names", func(t *testing.T) {
		c := &models.Container{ID: "c-2", Name: "farm-alpha", Type: models.ContainerVirtual, Status: "active"}
		if err := store.CreateContainer(ctx, c); !errs.IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestTrays(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	seedContainer(t, store, "c-1", "farm-alpha")
	seedContainer(t, store, "c-2", "farm-beta")

	placed := newTray("t-1", "c-1", "RFID-1", &models.TrayLocation{Shelf: "upper", SlotNumber: 3})
	if err := store.CreateTray(ctx, placed); err != nil {
		t.Fatalf("create placed tray: %v", err)
	}
	overflow := newTray("t-2", "c-1", "RFID-2", nil)
	if err := store.CreateTray(ctx, overflow); err != nil {
		t.Fatalf("create overflow tray: %v", err)
	}

	t.Run("it lists placed and overflow trays with their placements", func(t *testing.T) {
		trays, err := store.ListTrays(ctx, "c-1")
		if err != nil {
			t.Fatalf("list trays: %v", err)
		}
		if len(trays) != 2 {
			t.Fatalf("expected 2 trays, got %d", len(trays))
		}
		byID := map[string]models.Tray{}
		for _, tr := range trays {
			byID[tr.ID] = tr
		}
		if loc := byID["t-1"].Location; loc == nil || loc.Shelf != "upper" || loc.SlotNumber != 3 {
			t.Errorf("unexpected placement of t-1: %+v", loc)
		}
		if byID["t-2"].Location != nil {
			t.Errorf("overflow tray must have no placement: %+v", byID["t-2"].Location)
		}
	})

	t.Run("it rejects a reused rfid tag", func(t *testing.T) {
		err := store.CreateTray(ctx, newTray("t-3", "c-2", "RFID-1", nil))
		if !errs.IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("it rejects an occupied slot and writes nothing", func(t *testing.T) {
		err := store.CreateTray(ctx, newTray("t-4", "c-1", "RFID-4", &models.TrayLocation{Shelf: "upper", SlotNumber: 3}))
		if !errs.IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
		if found, err := store.FindTrayByRFID(ctx, "RFID-4"); err != nil || found != nil {
			t.Errorf("tray must be rolled back, found %+v err %v", found, err)
		}
	})

	t.Run("the same slot is free in another container", func(t *testing.T) {
		err := store.CreateTray(ctx, newTray("t-5", "c-2", "RFID-5", &models.TrayLocation{Shelf: "upper", SlotNumber: 3}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("it reports slot occupancy", func(t *testing.T) {
		taken, err := store.TraySlotTaken(ctx, "c-1", "upper", 3)
		if err != nil || !taken {
			t.Errorf("expected upper/3 taken, got %v %v", taken, err)
		}
		taken, err = store.TraySlotTaken(ctx, "c-1", "lower", 3)
		if err != nil || taken {
			t.Errorf("expected lower/3 free, got %v %v", taken, err)
		}
	})

	t.Run("delete removes the placement too", func(t *testing.T) {
		if err := store.DeleteTray(ctx, "c-1", "t-1"); err != nil {
			t.Fatalf("delete tray: %v", err)
		}
		taken, err := store.TraySlotTaken(ctx, "c-1", "upper", 3)
		if err != nil || taken {
			t.Errorf("placement must be gone, taken=%v err=%v", taken, err)
		}
		if _, err := store.GetTray(ctx, "c-1", "t-1"); !errs.IsNotFound(err) {
			t.Errorf("expected not found after delete, got %v", err)
		}
	})

	t.Run("delete of a tray from another container is not found and keeps its placement", func(t *testing.T) {
		err := store.DeleteTray(ctx, "c-1", "t-5")
		if !errs.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		taken, err := store.TraySlotTaken(ctx, "c-2", "upper", 3)
		if err != nil || !taken {
			t.Errorf("placement of t-5 must survive, taken=%v err=%v", taken, err)
		}
	})
}

func TestPanels(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)
	seedContainer(t, store, "c-1", "farm-alpha")

	channel := 2
	panel := &models.Panel{
		ID:            "p-1",
		ContainerID:   "c-1",
		RFIDTag:       "PANEL-1",
		Capacity:      30,
		Status:        models.UnitStatusAvailable,
		ProvisionedAt: time.Now().UTC(),
		Location:      &models.PanelLocation{Wall: "wall_2", SlotNumber: 22, Channel: &channel},
	}
	if err := store.CreatePanel(ctx, panel); err != nil {
		t.Fatalf("create panel: %v", err)
	}

	got, err := store.GetPanel(ctx, "c-1", "p-1")
	if err != nil {
		t.Fatalf("get panel: %v", err)
	}
	if got.Location == nil || got.Location.Wall != "wall_2" || got.Location.SlotNumber != 22 {
		t.Fatalf("unexpected placement: %+v", got.Location)
	}
	if got.Location.Channel == nil || *got.Location.Channel != 2 || got.Location.Position != nil {
		t.Errorf("unexpected sub-coordinates: %+v", got.Location)
	}

	dup := *panel
	dup.ID = "p-2"
	dup.RFIDTag = "PANEL-2"
	if err := store.CreatePanel(ctx, &dup); !errs.IsConflict(err) {
		t.Errorf("expected slot conflict, got %v", err)
	}

	if err := store.DeletePanel(ctx, "c-1", "p-1"); err != nil {
		t.Fatalf("delete panel: %v", err)
	}
	if taken, _ := store.PanelSlotTaken(ctx, "c-1", "wall_2", 22); taken {
		t.Errorf("placement must be removed with its panel")
	}
}

func TestListCrops(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)

	day := func(d int) *time.Time {
		v := time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
		return &v
	}
	crops := []models.Crop{
		{ID: "cr-1", SeedType: "Butterhead Lettuce", TrayID: strPtr("t-1"), LocationType: models.CropLocationTray, LifecycleStatus: models.LifecycleSeeded, SeedDate: day(1)},
		{ID: "cr-2", SeedType: "Basil", TrayID: strPtr("t-1"), LocationType: models.CropLocationTray, LifecycleStatus: models.LifecycleSeeded, SeedDate: day(2)},
		{ID: "cr-3", SeedType: "Romaine Lettuce", PanelID: strPtr("p-1"), LocationType: models.CropLocationPanel, LifecycleStatus: models.LifecycleTransplanted, SeedDate: day(3)},
		{ID: "cr-4", SeedType: "Kale", TrayID: strPtr("t-other"), LocationType: models.CropLocationTray, LifecycleStatus: models.LifecycleSeeded},
	}
	for i := range crops {
		if err := store.CreateCrop(ctx, &crops[i]); err != nil {
			t.Fatalf("create crop: %v", err)
		}
	}

	ids := func(cs []models.Crop) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	cases := []struct {
		name   string
		filter models.CropFilter
		want   []string
	}{
		{name: "no trays and no panels yields nothing", filter: models.CropFilter{}, want: []string{}},
		{name: "trays and panels combined, newest seed first", filter: models.CropFilter{TrayIDs: []string{"t-1"}, PanelIDs: []string{"p-1"}}, want: []string{"cr-3", "cr-2", "cr-1"}},
		{name: "panels only", filter: models.CropFilter{PanelIDs: []string{"p-1"}}, want: []string{"cr-3"}},
		{name: "seed type substring is case insensitive", filter: models.CropFilter{TrayIDs: []string{"t-1"}, PanelIDs: []string{"p-1"}, SeedType: "lettuce"}, want: []string{"cr-3", "cr-1"}},
		{name: "skip and limit", filter: models.CropFilter{TrayIDs: []string{"t-1"}, PanelIDs: []string{"p-1"}, Skip: 1, Limit: 1}, want: []string{"cr-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.ListCrops(ctx, tc.filter)
			if err != nil {
				t.Fatalf("list crops: %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, gotIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("want %v, got %v", tc.want, gotIDs)
				}
			}
		})
	}

	count, err := store.CountCrops(ctx, []string{"t-1"}, []string{"p-1"})
	if err != nil || count != 3 {
		t.Errorf("count 3 != %d (err %v)", count, err)
	}
	if count, _ := store.CountCrops(ctx, nil, nil); count != 0 {
		t.Errorf("count over no units 0 != %d", count)
	}
}

func TestListCropsMatchesSeedTypeLiterally(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)

	for i, seedType := range []string{"Basil 100% organic", "Basil 100 organic", "Kale_red", "Kale-red", `Mint\Spear`} {
		crop := models.Crop{
			ID:              "lit-" + string(rune('a'+i)),
			SeedType:        seedType,
			TrayID:          strPtr("t-1"),
			LocationType:    models.CropLocationTray,
			LifecycleStatus: models.LifecycleSeeded,
		}
		if err := store.CreateCrop(ctx, &crop); err != nil {
			t.Fatalf("create crop: %v", err)
		}
	}

	cases := []struct {
		filter string
		want   string
	}{
		{filter: "100%", want: "Basil 100% organic"},
		{filter: "kale_", want: "Kale_red"},
		{filter: `t\s`, want: `Mint\Spear`},
	}
	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			got, err := store.ListCrops(ctx, models.CropFilter{TrayIDs: []string{"t-1"}, SeedType: tc.filter})
			if err != nil {
				t.Fatalf("list crops: %v", err)
			}
			if len(got) != 1 || got[0].SeedType != tc.want {
				t.Errorf("filter %q: want only %q, got %+v", tc.filter, tc.want, got)
			}
		})
	}
}

func TestSnapshots(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)

	save := func(date string, nursery int) {
		t.Helper()
		err := store.SaveSnapshot(ctx, models.InventorySnapshot{
			ContainerID:               "c-1",
			Date:                      date,
			NurseryStationUtilization: nursery,
			CreatedAt:                 time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("save snapshot: %v", err)
		}
	}
	save("2025-03-01", 10)
	save("2025-03-02", 20)
	save("2025-03-02", 25)
	save("2025-03-05", 50)

	got, err := store.ListSnapshots(ctx, "c-1", "2025-03-01", "2025-03-03")
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 snapshots, got %+v", got)
	}
	if got[0].Date != "2025-03-01" || got[1].Date != "2025-03-02" {
		t.Errorf("unexpected order: %+v", got)
	}
	if got[1].NurseryStationUtilization != 25 {
		t.Errorf("upsert must keep the latest value, got %d", got[1].NurseryStationUtilization)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := sqlitetest.NewStore(t)

	err := store.Transaction(ctx, func(tx *sqlstore.Store) error {
		seedContainer(t, tx, "c-tx", "farm-tx")
		if err := tx.CreateTray(ctx, newTray("t-1", "c-tx", "RFID-1", nil)); err != nil {
			return err
		}
		return tx.CreateTray(ctx, newTray("t-2", "c-tx", "RFID-1", nil))
	})
	if !errs.IsConflict(err) {
		t.Fatalf("expected rfid conflict, got %v", err)
	}
	if _, err := store.GetContainer(ctx, "c-tx"); !errs.IsNotFound(err) {
		t.Errorf("container must be rolled back, got %v", err)
	}
	if tray, _ := store.FindTrayByRFID(ctx, "RFID-1"); tray != nil {
		t.Errorf("tray must be rolled back: %+v", tray)
	}

	err = store.Transaction(ctx, func(tx *sqlstore.Store) error {
		seedContainer(t, tx, "c-tx", "farm-tx")
		return nil
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := store.GetContainer(ctx, "c-tx"); err != nil {
		t.Errorf("committed container missing: %v", err)
	}
}
