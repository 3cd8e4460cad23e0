package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fleetfuel/internal/models"
)

type fakeObjectRepo struct {
	records []models.ObjectRecord

	findErr    error
	setErr     error
	setCalls   []struct{ hours, fuel float64 }
	setMissing bool
}

func (f *fakeObjectRepo) List(ctx context.Context) ([]models.ObjectRecord, error) {
	return f.records, nil
}

func (f *fakeObjectRepo) Find(ctx context.Context, objectID string) (*models.ObjectRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.records {
		if f.records[i].ObjectID == objectID {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeObjectRepo) Create(ctx context.Context, rec models.ObjectRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeObjectRepo) Delete(ctx context.Context, objectID string) (bool, error) {
	for i := range f.records {
		if f.records[i].ObjectID == objectID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeObjectRepo) SetCapacity(ctx context.Context, objectID string, v float64) (bool, error) {
	for i := range f.records {
		if f.records[i].ObjectID == objectID {
			f.records[i].FuelCapacity = v
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeObjectRepo) SetUsage(ctx context.Context, objectID string, v float64) (bool, error) {
	for i := range f.records {
		if f.records[i].ObjectID == objectID {
			f.records[i].FuelUsagePerHour = v
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeObjectRepo) SetReading(ctx context.Context, objectID string, hours, fuel float64) (bool, error) {
	if f.setErr != nil {
		return false, f.setErr
	}
	if f.setMissing {
		return false, nil
	}
	f.setCalls = append(f.setCalls, struct{ hours, fuel float64 }{hours, fuel})
	for i := range f.records {
		if f.records[i].ObjectID == objectID {
			f.records[i].EngineHours = hours
			f.records[i].CurrentFuel = fuel
			return true, nil
		}
	}
	return false, nil
}

type fakeLogRepo struct {
	appendErr error
	entries   []models.ReadingLog
}

func (f *fakeLogRepo) Append(ctx context.Context, e models.ReadingLog) error {
	f.entries = append(f.entries, e)
	return f.appendErr
}

func (f *fakeLogRepo) List(ctx context.Context, from, to time.Time, objectID string) ([]models.ReadingLog, error) {
	return f.entries, nil
}

func us0001() models.ObjectRecord {
	return models.ObjectRecord{
		ObjectID:         "US0001",
		EngineHours:      700,
		FuelCapacity:     300,
		CurrentFuel:      50,
		FuelUsagePerHour: 5,
	}
}

func TestApplyReading_BurnAndRefuel(t *testing.T) {
	res, err := ApplyReading(us0001(), 710, 20, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HoursDelta != 10 {
		t.Fatalf("delta = %v, want 10", res.HoursDelta)
	}
	if res.Burned != 50 {
		t.Fatalf("burned = %v, want 50", res.Burned)
	}
	if res.CurrentFuel != 20 {
		t.Fatalf("fuel = %v, want 20", res.CurrentFuel)
	}
	if res.NewHours != 710 {
		t.Fatalf("hours = %v, want 710", res.NewHours)
	}
}

func TestApplyReading_RejectsDecreasingHours(t *testing.T) {
	_, err := ApplyReading(us0001(), 690, 0, false)
	var me *MonotonicityError
	if !errors.As(err, &me) {
		t.Fatalf("expected MonotonicityError, got %v", err)
	}
	if me.Entered != 690 || me.Minimum != 700 {
		t.Fatalf("wrong error values: %+v", me)
	}
	// The message states the minimum acceptable value.
	if got := me.Error(); !containsAll(got, "690", "700") {
		t.Fatalf("message lacks values: %q", got)
	}
}

func TestApplyReading_FullTankOverridesArithmetic(t *testing.T) {
	res, err := ApplyReading(us0001(), 720, 0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CurrentFuel != 300 {
		t.Fatalf("fuel = %v, want capacity 300", res.CurrentFuel)
	}
	if res.NewHours != 720 {
		t.Fatalf("hours = %v, want 720", res.NewHours)
	}

	// Even a huge fuel_added is ignored when the tank is marked full.
	res, _ = ApplyReading(us0001(), 701, 9999, true)
	if res.CurrentFuel != 300 {
		t.Fatalf("fuel = %v, want capacity 300", res.CurrentFuel)
	}
}

func TestApplyReading_BoundsHold(t *testing.T) {
	cases := []struct {
		name      string
		newHours  float64
		fuelAdded float64
		fullTank  bool
	}{
		{"added_far_exceeds_capacity", 700, 100000, false},
		{"burn_far_exceeds_current", 10000, 0, false},
		{"equal_hours_no_burn", 700, 0, false},
		{"full_tank", 800, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := us0001()
			res, err := ApplyReading(prev, tc.newHours, tc.fuelAdded, tc.fullTank)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.CurrentFuel < 0 || res.CurrentFuel > prev.FuelCapacity {
				t.Fatalf("fuel %v outside [0, %v]", res.CurrentFuel, prev.FuelCapacity)
			}
			if res.NewHours < prev.EngineHours {
				t.Fatalf("hours decreased: %v < %v", res.NewHours, prev.EngineHours)
			}
		})
	}
}

func TestReadingService_Apply_PersistsAndLogs(t *testing.T) {
	objects := &fakeObjectRepo{records: []models.ObjectRecord{us0001()}}
	logs := &fakeLogRepo{}
	svc := NewReadingService(objects, logs, time.UTC)

	res, err := svc.Apply(context.Background(), ReadingInput{
		ObjectID:  " US0001 ",
		NewHours:  710,
		FuelAdded: 20,
		UserID:    42,
		Username:  "driver",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.CurrentFuel != 20 {
		t.Fatalf("fuel = %v, want 20", res.CurrentFuel)
	}
	if len(objects.setCalls) != 1 || objects.setCalls[0].hours != 710 || objects.setCalls[0].fuel != 20 {
		t.Fatalf("unexpected store writes: %+v", objects.setCalls)
	}
	if len(logs.entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logs.entries))
	}
	e := logs.entries[0]
	if e.ObjectID != "US0001" || e.PrevHours != 700 || e.NewHours != 710 || e.HoursDelta != 10 ||
		e.FuelAdded != 20 || e.FullTank || e.CalculatedFuel != 20 || e.UserID != 42 || e.Username != "driver" {
		t.Fatalf("log entry mismatch: %+v", e)
	}
	if e.Timestamp.IsZero() {
		t.Fatalf("log timestamp not set")
	}
}

func TestReadingService_Apply_NotFoundVsValidation(t *testing.T) {
	objects := &fakeObjectRepo{records: []models.ObjectRecord{us0001()}}
	svc := NewReadingService(objects, &fakeLogRepo{}, time.UTC)

	// Lookup miss and rule violation are distinct error kinds.
	_, err := svc.Apply(context.Background(), ReadingInput{ObjectID: "GHOST", NewHours: 1})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}

	_, err = svc.Apply(context.Background(), ReadingInput{ObjectID: "US0001", NewHours: 690})
	var me *MonotonicityError
	if !errors.As(err, &me) {
		t.Fatalf("expected MonotonicityError, got %v", err)
	}
	if len(objects.setCalls) != 0 {
		t.Fatalf("rejected reading must not write: %+v", objects.setCalls)
	}
}

func TestReadingService_Apply_VanishedBetweenReadAndWrite(t *testing.T) {
	objects := &fakeObjectRepo{records: []models.ObjectRecord{us0001()}, setMissing: true}
	svc := NewReadingService(objects, &fakeLogRepo{}, time.UTC)

	_, err := svc.Apply(context.Background(), ReadingInput{ObjectID: "US0001", NewHours: 710})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
