package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"
)

func newTestWorkbook(t *testing.T) *repository.Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	wb, err := repository.OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestObjectSheet_CreateFindRoundTrip(t *testing.T) {
	repo := repository.NewSheetRepository(newTestWorkbook(t))
	ctx := context.Background()

	rec := models.ObjectRecord{
		ObjectID:         "US0001",
		EngineHours:      700,
		FuelCapacity:     300,
		CurrentFuel:      50,
		FuelUsagePerHour: 5,
	}
	if err := repo.Objects.Create(ctx, rec); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Objects.Find(ctx, "US0001")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got == nil {
		t.Fatalf("expected record, got nil")
	}
	if *got != rec {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", *got, rec)
	}

	// Lookup trims surrounding whitespace but stays case-sensitive.
	if got, _ := repo.Objects.Find(ctx, "  US0001 "); got == nil {
		t.Fatalf("expected trimmed lookup to match")
	}
	if got, _ := repo.Objects.Find(ctx, "us0001"); got != nil {
		t.Fatalf("expected case-sensitive lookup to miss")
	}
}

func TestObjectSheet_ListKeepsStorageOrder(t *testing.T) {
	repo := repository.NewSheetRepository(newTestWorkbook(t))
	ctx := context.Background()

	for _, id := range []string{"US0003", "US0001", "US0002"} {
		if err := repo.Objects.Create(ctx, models.ObjectRecord{ObjectID: id, FuelCapacity: 100}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}
	list, err := repo.Objects.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(list))
	}
	want := []string{"US0003", "US0001", "US0002"}
	for i, rec := range list {
		if rec.ObjectID != want[i] {
			t.Fatalf("row %d: got %s, want %s", i, rec.ObjectID, want[i])
		}
	}
}

func TestObjectSheet_SetReadingAndDelete(t *testing.T) {
	repo := repository.NewSheetRepository(newTestWorkbook(t))
	ctx := context.Background()

	if err := repo.Objects.Create(ctx, models.ObjectRecord{ObjectID: "US0001", FuelCapacity: 300}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := repo.Objects.SetReading(ctx, "US0001", 710, 20)
	if err != nil || !ok {
		t.Fatalf("SetReading: ok=%v err=%v", ok, err)
	}
	got, _ := repo.Objects.Find(ctx, "US0001")
	if got.EngineHours != 710 || got.CurrentFuel != 20 {
		t.Fatalf("reading not persisted: %+v", got)
	}
	// Capacity untouched by a reading update.
	if got.FuelCapacity != 300 {
		t.Fatalf("capacity changed unexpectedly: %+v", got)
	}

	ok, err = repo.Objects.SetCapacity(ctx, "US0001", 400)
	if err != nil || !ok {
		t.Fatalf("SetCapacity: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Objects.SetUsage(ctx, "US0001", 6.5)
	if err != nil || !ok {
		t.Fatalf("SetUsage: ok=%v err=%v", ok, err)
	}
	got, _ = repo.Objects.Find(ctx, "US0001")
	if got.FuelCapacity != 400 || got.FuelUsagePerHour != 6.5 {
		t.Fatalf("admin edits not persisted: %+v", got)
	}

	ok, err = repo.Objects.Delete(ctx, "US0001")
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if got, _ := repo.Objects.Find(ctx, "US0001"); got != nil {
		t.Fatalf("object still present after delete")
	}
	// Deleting again reports not found. Deletion is permanent row removal.
	ok, err = repo.Objects.Delete(ctx, "US0001")
	if err != nil {
		t.Fatalf("Delete(2nd): %v", err)
	}
	if ok {
		t.Fatalf("expected found=false on second delete")
	}
}

func TestLogSheet_AppendAndList(t *testing.T) {
	repo := repository.NewSheetRepository(newTestWorkbook(t))
	ctx := context.Background()

	base := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	entries := []models.ReadingLog{
		{Timestamp: base, ObjectID: "US0001", PrevHours: 700, NewHours: 710, HoursDelta: 10, FuelAdded: 20, CalculatedFuel: 20, UserID: 42, Username: "driver"},
		{Timestamp: base.Add(time.Hour), ObjectID: "US0002", PrevHours: 10, NewHours: 12, HoursDelta: 2, FullTank: true, CalculatedFuel: 250, UserID: 43},
	}
	for _, e := range entries {
		if err := repo.Logs.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := repo.Logs.List(ctx, time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].ObjectID != "US0001" || all[0].FuelAdded != 20 || all[0].Username != "driver" {
		t.Fatalf("first entry mismatch: %+v", all[0])
	}
	if !all[1].FullTank {
		t.Fatalf("full-tank flag lost: %+v", all[1])
	}

	// Object filter
	only, err := repo.Logs.List(ctx, time.Time{}, time.Time{}, "US0002")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(only) != 1 || only[0].ObjectID != "US0002" {
		t.Fatalf("object filter failed: %+v", only)
	}

	// Time range excludes the later entry
	ranged, err := repo.Logs.List(ctx, base, base.Add(30*time.Minute), "")
	if err != nil {
		t.Fatalf("List ranged: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ObjectID != "US0001" {
		t.Fatalf("time filter failed: %+v", ranged)
	}
}
