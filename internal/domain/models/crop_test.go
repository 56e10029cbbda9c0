package models

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestCropOverdueDays(t *testing.T) {
	now := time.Date(2025, 3, 20, 15, 30, 0, 0, time.UTC)
	fiveDaysAgo := now.AddDate(0, 0, -5)
	inTenDays := now.AddDate(0, 0, 10)

	t.Run("seeded crop past planned transplant", func(t *testing.T) {
		crop := Crop{
			LifecycleStatus:          LifecycleSeeded,
			TransplantingDatePlanned: datePtr(fiveDaysAgo),
		}
		if got := crop.OverdueDays(now); got != 5 {
			t.Errorf("overdue 5 != %d", got)
		}
	})

	t.Run("same crop once transplanted with future harvest", func(t *testing.T) {
		crop := Crop{
			LifecycleStatus:          LifecycleTransplanted,
			TransplantingDatePlanned: datePtr(fiveDaysAgo),
			HarvestingDatePlanned:    datePtr(inTenDays),
		}
		if got := crop.OverdueDays(now); got != 0 {
			t.Errorf("overdue 0 != %d", got)
		}
	})

	t.Run("transplanted crop past planned harvest", func(t *testing.T) {
		crop := Crop{
			LifecycleStatus:       LifecycleTransplanted,
			HarvestingDatePlanned: datePtr(now.AddDate(0, 0, -3)),
		}
		if got := crop.OverdueDays(now); got != 3 {
			t.Errorf("overdue 3 != %d", got)
		}
	})

	t.Run("growing crop is never overdue", func(t *testing.T) {
		crop := Crop{
			LifecycleStatus:          LifecycleGrowing,
			TransplantingDatePlanned: datePtr(fiveDaysAgo),
			HarvestingDatePlanned:    datePtr(fiveDaysAgo),
		}
		if got := crop.OverdueDays(now); got != 0 {
			t.Errorf("overdue 0 != %d", got)
		}
	})

	t.Run("seeded crop without planned transplant", func(t *testing.T) {
		crop := Crop{LifecycleStatus: LifecycleSeeded}
		if got := crop.OverdueDays(now); got != 0 {
			t.Errorf("overdue 0 != %d", got)
		}
	})
}

func TestCropAgeDays(t *testing.T) {
	now := time.Date(2025, 3, 20, 1, 0, 0, 0, time.UTC)

	if got := (Crop{}).AgeDays(now); got != 0 {
		t.Errorf("age without seed date 0 != %d", got)
	}

	seeded := Crop{SeedDate: datePtr(time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC))}
	if got := seeded.AgeDays(now); got != 19 {
		t.Errorf("age 19 != %d", got)
	}

	future := Crop{SeedDate: datePtr(now.AddDate(0, 0, 2))}
	if got := future.AgeDays(now); got != 0 {
		t.Errorf("age of future seed date 0 != %d", got)
	}
}

func TestCropHealthStatus(t *testing.T) {
	now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		overdue int
		want    string
	}{
		{overdue: 0, want: HealthHealthy},
		{overdue: 1, want: HealthNeedsAttention},
		{overdue: 6, want: HealthNeedsAttention},
		{overdue: 7, want: HealthTreatmentRequired},
		{overdue: 30, want: HealthTreatmentRequired},
	}
	for _, tc := range cases {
		crop := Crop{
			LifecycleStatus:          LifecycleSeeded,
			TransplantingDatePlanned: datePtr(now.AddDate(0, 0, -tc.overdue)),
		}
		if got := crop.HealthStatus(now); got != tc.want {
			t.Errorf("overdue %d: want %s, got %s", tc.overdue, tc.want, got)
		}
	}
}

func TestCropSize(t *testing.T) {
	cases := []struct {
		area float64
		want string
	}{
		{area: 0, want: SizeSmall},
		{area: 39.9, want: SizeSmall},
		{area: 40, want: SizeMedium},
		{area: 119.99, want: SizeMedium},
		{area: 120, want: SizeLarge},
		{area: 500, want: SizeLarge},
	}
	for _, tc := range cases {
		if got := (Crop{AreaCM2: tc.area}).Size(); got != tc.want {
			t.Errorf("area %.2f: want %s, got %s", tc.area, tc.want, got)
		}
	}
}
