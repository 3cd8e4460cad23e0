package repository

import (
	"context"
	"database/sql"
	"time"

	"fleetfuel/internal/models"
)

// ObjectRepo is the store contract for equipment records. Lookups compare
// object identifiers as exact, case-sensitive string matches after trimming
// surrounding whitespace. List returns records in storage order.
type ObjectRepo interface {
	List(ctx context.Context) ([]models.ObjectRecord, error)
	// Find returns (nil, nil) when no record matches.
	Find(ctx context.Context, objectID string) (*models.ObjectRecord, error)
	Create(ctx context.Context, rec models.ObjectRecord) error
	// Delete reports whether a matching row existed and was removed.
	Delete(ctx context.Context, objectID string) (bool, error)
	SetCapacity(ctx context.Context, objectID string, v float64) (bool, error)
	SetUsage(ctx context.Context, objectID string, v float64) (bool, error)
	// SetReading persists the two fields mutated by a reading submission.
	SetReading(ctx context.Context, objectID string, hours, fuel float64) (bool, error)
}

// LogRepo is the append-only audit log of reading submissions.
type LogRepo interface {
	Append(ctx context.Context, e models.ReadingLog) error
	List(ctx context.Context, from, to time.Time, objectID string) ([]models.ReadingLog, error)
}

// Store driver names accepted in configuration.
const (
	DriverSheet  = "sheet"
	DriverSQLite = "sqlite"
)

type Repository struct {
	Objects ObjectRepo
	Logs    LogRepo
}

// NewSheetRepository backs both repos by an xlsx workbook (the default
// system of record).
func NewSheetRepository(wb *Workbook) *Repository {
	return &Repository{
		Objects: NewObjectSheet(wb),
		Logs:    NewLogSheet(wb),
	}
}

// NewSQLiteRepository backs both repos by a SQLite database.
func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{
		Objects: NewObjectSQLite(db),
		Logs:    NewLogSQLite(db),
	}
}
