package service

import (
	"context"
	"errors"
	"strings"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"
)

var (
	errEmptyObjectID     = errors.New("object id must not be empty")
	errNegativeCapacity  = errors.New("capacity must not be negative")
	errNegativeUsage     = errors.New("usage rate must not be negative")
	ErrObjectAlreadyExists = errors.New("object id already exists")
)

// FleetService implements the admin record operations.
type FleetService struct {
	objects repository.ObjectRepo
}

func NewFleetService(objects repository.ObjectRepo) *FleetService {
	return &FleetService{objects: objects}
}

// AddObject creates a record with the given capacity; hours, fuel and usage
// rate default to zero.
func (s *FleetService) AddObject(ctx context.Context, objectID string, capacity float64) error {
	id := strings.TrimSpace(objectID)
	if id == "" {
		return errEmptyObjectID
	}
	if capacity < 0 {
		return errNegativeCapacity
	}
	existing, err := s.objects.Find(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrObjectAlreadyExists
	}
	return s.objects.Create(ctx, models.ObjectRecord{
		ObjectID:     id,
		FuelCapacity: capacity,
	})
}

// DeleteObject removes the record permanently. Reports whether a matching
// row existed.
func (s *FleetService) DeleteObject(ctx context.Context, objectID string) (bool, error) {
	return s.objects.Delete(ctx, objectID)
}

func (s *FleetService) SetCapacity(ctx context.Context, objectID string, v float64) (bool, error) {
	if v < 0 {
		return false, errNegativeCapacity
	}
	return s.objects.SetCapacity(ctx, objectID, v)
}

func (s *FleetService) SetUsage(ctx context.Context, objectID string, v float64) (bool, error) {
	if v < 0 {
		return false, errNegativeUsage
	}
	return s.objects.SetUsage(ctx, objectID, v)
}

// ListObjectIDs returns the identifiers of all records in storage order,
// used by the conversation openers that list what the user can pick.
func (s *FleetService) ListObjectIDs(ctx context.Context) ([]string, error) {
	recs, err := s.objects.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		if rec.ObjectID != "" {
			ids = append(ids, rec.ObjectID)
		}
	}
	return ids, nil
}
