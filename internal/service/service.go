package service

import (
	"context"
	"errors"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"
)

// ErrObjectNotFound marks a lookup miss. It is a different failure kind than
// a validation error and is presented differently to the user.
var ErrObjectNotFound = errors.New("object not found")

// Readings accepts new engine-hour/refueling submissions and commits the
// computed fuel state.
type Readings interface {
	Apply(ctx context.Context, in ReadingInput) (ReadingResult, error)
}

// Fleet exposes the admin record operations: create, delete, capacity and
// usage-rate edits.
type Fleet interface {
	AddObject(ctx context.Context, objectID string, capacity float64) error
	DeleteObject(ctx context.Context, objectID string) (bool, error)
	SetCapacity(ctx context.Context, objectID string, v float64) (bool, error)
	SetUsage(ctx context.Context, objectID string, v float64) (bool, error)
	ListObjectIDs(ctx context.Context) ([]string, error)
}

// Reports exposes the read-only report derivations.
type Reports interface {
	Fleet(ctx context.Context) ([]ObjectReport, error)
	Single(ctx context.Context, objectID string) (*ObjectReport, error)
	Shortage(ctx context.Context) (ShortageReport, error)
}

// ReadingLogs exposes the append-only audit log with filtering access.
type ReadingLogs interface {
	List(ctx context.Context, f LogFilter) ([]models.ReadingLog, error)
}

// LogFilter supports history filtering by time range and object.
type LogFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	ObjectID string    // "" means all objects
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Readings
	Fleet
	Reports
	ReadingLogs
}

// NewService wires the repository layer into concrete services. loc is the
// zone used for audit-log timestamps.
func NewService(repos *repository.Repository, loc *time.Location) *Service {
	return &Service{
		Readings:    NewReadingService(repos.Objects, repos.Logs, loc),
		Fleet:       NewFleetService(repos.Objects),
		Reports:     NewReportService(repos.Objects),
		ReadingLogs: NewReadingLogService(repos.Logs),
	}
}
