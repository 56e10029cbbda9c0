package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

type recordingRepo struct {
	sheetRange string
	readRange  string
	rows       [][]interface{}
}

func (r *recordingRepo) WriteRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	r.sheetRange = sheetRange
	r.rows = append(r.rows, rows...)
	return nil
}

func (r *recordingRepo) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	r.readRange = sheetRange
	keys := make([][]interface{}, 0, len(r.rows))
	for _, row := range r.rows {
		keys = append(keys, row[:2])
	}
	return keys, nil
}

func TestExportSnapshots(t *testing.T) {
	repo := &recordingRepo{}
	exporter := NewSnapshotExporter(repo)

	created := time.Date(2025, 6, 15, 23, 55, 0, 0, time.UTC)
	err := exporter.ExportSnapshots(context.Background(), []models.InventorySnapshot{
		{ContainerID: "c-1", Date: "2025-06-15", NurseryStationUtilization: 70, CultivationAreaUtilization: 30, TrayCount: 2, PanelCount: 1, CropCount: 5, CreatedAt: created},
		{ContainerID: "c-2", Date: "2025-06-15"},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if repo.sheetRange != UtilizationRange {
		t.Errorf("unexpected range %q", repo.sheetRange)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(repo.rows))
	}
	first := repo.rows[0]
	if len(first) != 8 || first[0] != "2025-06-15" || first[1] != "c-1" || first[2] != 70 || first[6] != 5 || first[7] != "2025-06-15T23:55:00Z" {
		t.Errorf("unexpected row: %v", first)
	}
}

func TestExportSnapshotsSkipsRowsAlreadyOnSheet(t *testing.T) {
	repo := &recordingRepo{rows: [][]interface{}{
		{"date", "container_id", "nursery", "cultivation", "trays", "panels", "crops", "created_at"},
		{"2025-06-14", "c-1", 10, 10, 1, 1, 1, "2025-06-14T23:55:00Z"},
	}}
	exporter := NewSnapshotExporter(repo)
	ctx := context.Background()

	day := []models.InventorySnapshot{
		{ContainerID: "c-1", Date: "2025-06-14"},
		{ContainerID: "c-1", Date: "2025-06-15"},
		{ContainerID: "c-2", Date: "2025-06-15"},
	}
	if err := exporter.ExportSnapshots(ctx, day); err != nil {
		t.Fatalf("export: %v", err)
	}
	if repo.readRange != "Utilization!A:B" {
		t.Errorf("unexpected key range %q", repo.readRange)
	}
	if len(repo.rows) != 4 {
		t.Fatalf("expected header, old row and 2 new rows, got %d", len(repo.rows))
	}

	if err := exporter.ExportSnapshots(ctx, day); err != nil {
		t.Fatalf("second export: %v", err)
	}
	if len(repo.rows) != 4 {
		t.Errorf("a rerun of the same day must append nothing, got %d rows", len(repo.rows))
	}
}
