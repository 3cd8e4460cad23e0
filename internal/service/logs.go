package service

import (
	"context"
	"errors"
	"strings"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"
)

// ReadingLogService gives filtered access to the append-only audit log.
type ReadingLogService struct {
	logs repository.LogRepo
}

func NewReadingLogService(logs repository.LogRepo) *ReadingLogService {
	return &ReadingLogService{logs: logs}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

func (s *ReadingLogService) List(ctx context.Context, f LogFilter) ([]models.ReadingLog, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, errInvalidTimeRange
	}
	return s.logs.List(ctx, f.From, f.To, strings.TrimSpace(f.ObjectID))
}
