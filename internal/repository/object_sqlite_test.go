package repository_test

import (
	"context"
	"regexp"
	"testing"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestObjectSQLite_Create_WritesFixedDecimalText(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewObjectSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO objects")).
		WithArgs("US0001", "0.00", "300.00", "0.00", "5.00").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(context.Background(), models.ObjectRecord{
		ObjectID:         " US0001 ", // surrounding whitespace is trimmed
		FuelCapacity:     300,
		FuelUsagePerHour: 5,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestObjectSQLite_Find_ParsesTextColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewObjectSQLite(db)

	rows := sqlmock.NewRows([]string{"object_id", "engine_hours", "fuel_capacity", "current_fuel", "fuel_usage_per_hour"}).
		AddRow("US0001", "700.00", "300.00", "50.00", "5.00")
	mock.ExpectQuery(regexp.QuoteMeta("FROM objects WHERE object_id = ?")).
		WithArgs("US0001").
		WillReturnRows(rows)

	rec, err := repo.Find(context.Background(), "US0001")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec == nil {
		t.Fatalf("expected record, got nil")
	}
	if rec.EngineHours != 700 || rec.FuelCapacity != 300 || rec.CurrentFuel != 50 || rec.FuelUsagePerHour != 5 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestObjectSQLite_Find_NotFoundReturnsNilNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewObjectSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM objects WHERE object_id = ?")).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"object_id", "engine_hours", "fuel_capacity", "current_fuel", "fuel_usage_per_hour"}))

	rec, err := repo.Find(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for missing object, got %+v", rec)
	}
}

func TestObjectSQLite_SetReading_ReportsFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewObjectSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE objects SET engine_hours = ?, current_fuel = ?")).
		WithArgs("710.00", "20.00", "US0001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.SetReading(context.Background(), "US0001", 710, 20)
	if err != nil {
		t.Fatalf("SetReading: %v", err)
	}
	if !ok {
		t.Fatalf("expected found=true")
	}
}

func TestObjectSQLite_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.NewObjectSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM objects")).
		WithArgs("GHOST").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "GHOST")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Fatalf("expected found=false for missing row")
	}
}
