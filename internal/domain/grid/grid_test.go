package grid

import (
	"testing"

	"github.com/mamadbah2/vertical-farm/internal/domain/errs"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name     string
		grid     Grid
		position string
		slot     int
		wantErr  string
	}{
		{name: "upper first slot", grid: Nursery, position: "upper", slot: 1},
		{name: "lower last slot", grid: Nursery, position: "lower", slot: 8},
		{name: "tray slot past shelf end", grid: Nursery, position: "upper", slot: 9, wantErr: "Slot number must be between 1 and 8"},
		{name: "tray slot zero", grid: Nursery, position: "upper", slot: 0, wantErr: "Slot number must be between 1 and 8"},
		{name: "tray slot negative", grid: Nursery, position: "lower", slot: -3, wantErr: "Slot number must be between 1 and 8"},
		{name: "unknown shelf", grid: Nursery, position: "middle", slot: 1, wantErr: "Shelf must be 'upper' or 'lower'"},
		{name: "shelf label is case sensitive", grid: Nursery, position: "Upper", slot: 1, wantErr: "Shelf must be 'upper' or 'lower'"},
		{name: "wall_4 last slot", grid: Cultivation, position: "wall_4", slot: 22},
		{name: "panel slot past wall end", grid: Cultivation, position: "wall_1", slot: 23, wantErr: "Slot number must be between 1 and 22"},
		{name: "unknown wall", grid: Cultivation, position: "wall_5", slot: 1, wantErr: "Wall must be one of: wall_1, wall_2, wall_3, wall_4"},
		{name: "shelf label on wall", grid: Cultivation, position: "upper", slot: 1, wantErr: "Wall must be one of: wall_1, wall_2, wall_3, wall_4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.grid.Validate(tc.position, tc.slot)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", tc.wantErr)
			}
			if !errs.IsInvalid(err) {
				t.Errorf("expected invalid kind, got %v", errs.KindOf(err))
			}
			if err.Error() != tc.wantErr {
				t.Errorf("message: want %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	if got := Nursery.Capacity(); got != 16 {
		t.Errorf("nursery capacity 16 != %d", got)
	}
	if got := Cultivation.Capacity(); got != 88 {
		t.Errorf("cultivation capacity 88 != %d", got)
	}
}

func TestCoordinate(t *testing.T) {
	cases := []struct {
		g        Grid
		index    int
		position string
		slot     int
	}{
		{Nursery, 0, ShelfUpper, 1},
		{Nursery, 7, ShelfUpper, 8},
		{Nursery, 8, ShelfLower, 1},
		{Cultivation, 21, Wall1, 22},
		{Cultivation, 87, Wall4, 22},
	}
	for _, tc := range cases {
		position, slot := tc.g.Coordinate(tc.index)
		if position != tc.position || slot != tc.slot {
			t.Errorf("index %d: %s/%d != %s/%d", tc.index, tc.position, tc.slot, position, slot)
		}
		if err := tc.g.Validate(position, slot); err != nil {
			t.Errorf("index %d maps to an invalid coordinate: %v", tc.index, err)
		}
	}
}

func TestAverageUtilization(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   int
	}{
		{name: "empty set", values: nil, want: 0},
		{name: "exact mean", values: []int{50, 90}, want: 70},
		{name: "truncates", values: []int{10, 15}, want: 12},
		{name: "truncates down from two thirds", values: []int{100, 100, 0}, want: 66},
		{name: "single unit", values: []int{33}, want: 33},
		{name: "all empty units", values: []int{0, 0, 0, 0}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AverageUtilization(tc.values); got != tc.want {
				t.Errorf("want %d, got %d", tc.want, got)
			}
		})
	}
}
