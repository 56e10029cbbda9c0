package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

const (
	// UtilizationRange is where daily snapshots are appended.
	UtilizationRange = "Utilization!A:H"
	// exportedKeysRange holds the (date, container_id) columns of exported rows.
	exportedKeysRange = "Utilization!A:B"
)

// Repository defines the persistence operations supported by the Google Sheets adapter.
type Repository interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRows appends the provided rows to the supplied sheet range in one call.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		// RAW keeps dates as text so ReadRange returns them verbatim.
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	return resp.Values, nil
}

// SnapshotExporter appends daily snapshots to the utilization sheet.
type SnapshotExporter struct {
	repo Repository
}

// NewSnapshotExporter wraps a sheet repository.
func NewSnapshotExporter(repo Repository) *SnapshotExporter {
	return &SnapshotExporter{repo: repo}
}

// ExportSnapshots writes one row per snapshot whose date and container are not
// already on the sheet, so a rerun of the same day appends nothing.
func (e *SnapshotExporter) ExportSnapshots(ctx context.Context, snapshots []models.InventorySnapshot) error {
	existing, err := e.repo.ReadRange(ctx, exportedKeysRange)
	if err != nil {
		return fmt.Errorf("read exported snapshots: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, row := range existing {
		if len(row) < 2 {
			continue
		}
		seen[exportKey(fmt.Sprint(row[0]), fmt.Sprint(row[1]))] = true
	}

	rows := make([][]interface{}, 0, len(snapshots))
	for _, s := range snapshots {
		key := exportKey(s.Date, s.ContainerID)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, snapshotRow(s))
	}
	return e.repo.WriteRows(ctx, UtilizationRange, rows)
}

func exportKey(date, containerID string) string {
	return date + "|" + containerID
}

func snapshotRow(s models.InventorySnapshot) []interface{} {
	return []interface{}{
		s.Date,
		s.ContainerID,
		s.NurseryStationUtilization,
		s.CultivationAreaUtilization,
		s.TrayCount,
		s.PanelCount,
		s.CropCount,
		s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
