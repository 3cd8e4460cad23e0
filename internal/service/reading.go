package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/numfmt"
	"fleetfuel/internal/repository"
)

// ReadingInput is one reading submission: the new meter value, the litres
// added, and whether the tank was topped off.
type ReadingInput struct {
	ObjectID  string
	NewHours  float64
	FuelAdded float64
	FullTank  bool
	UserID    int64
	Username  string
}

// ReadingResult carries every derived value of a committed reading.
type ReadingResult struct {
	ObjectID    string
	PrevHours   float64
	NewHours    float64
	HoursDelta  float64
	Burned      float64
	FuelAdded   float64
	FullTank    bool
	CurrentFuel float64
}

// MonotonicityError rejects a reading whose engine hours are below the
// stored value. The message states the rejected value and the minimum
// acceptable one; it is shown to the user verbatim, both when the value is
// first entered and again at commit time.
type MonotonicityError struct {
	Entered float64
	Minimum float64
}

func (e *MonotonicityError) Error() string {
	minimum := numfmt.Hours(e.Minimum)
	return fmt.Sprintf("engine hours %s are below the stored value %s; enter a value of at least %s",
		numfmt.Hours(e.Entered), minimum, minimum)
}

// ApplyReading is the pure fuel-state step: previous state plus a new
// reading yields the next state. Rejections never clamp silently. Full
// precision is kept throughout; rounding happens only when values are
// persisted or displayed.
func ApplyReading(prev models.ObjectRecord, newHours, fuelAdded float64, fullTank bool) (ReadingResult, error) {
	if newHours < prev.EngineHours {
		return ReadingResult{}, &MonotonicityError{Entered: newHours, Minimum: prev.EngineHours}
	}

	delta := newHours - prev.EngineHours
	if delta < 0 {
		delta = 0
	}
	burned := delta * prev.FuelUsagePerHour

	var next float64
	if fullTank {
		// Refuel-to-full overrides the arithmetic entirely.
		next = prev.FuelCapacity
	} else {
		next = numfmt.Clamp(prev.CurrentFuel-burned+fuelAdded, 0, prev.FuelCapacity)
	}

	return ReadingResult{
		ObjectID:    prev.ObjectID,
		PrevHours:   prev.EngineHours,
		NewHours:    newHours,
		HoursDelta:  delta,
		Burned:      burned,
		FuelAdded:   fuelAdded,
		FullTank:    fullTank,
		CurrentFuel: next,
	}, nil
}

// ReadingService commits readings against the shared store. A per-object
// mutex serializes the read-modify-write sequence within this process;
// cross-process access stays last-write-wins.
type ReadingService struct {
	objects repository.ObjectRepo
	logs    repository.LogRepo
	loc     *time.Location

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReadingService(objects repository.ObjectRepo, logs repository.LogRepo, loc *time.Location) *ReadingService {
	if loc == nil {
		loc = time.Local
	}
	return &ReadingService{
		objects: objects,
		logs:    logs,
		loc:     loc,
		locks:   map[string]*sync.Mutex{},
	}
}

func (s *ReadingService) objectLock(objectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[objectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[objectID] = l
	}
	return l
}

// Apply re-reads the latest stored record (the value may have advanced since
// the user entered their reading), validates monotonicity against it,
// computes the next state, persists the two mutated fields and appends an
// audit-log entry.
func (s *ReadingService) Apply(ctx context.Context, in ReadingInput) (ReadingResult, error) {
	id := strings.TrimSpace(in.ObjectID)

	l := s.objectLock(id)
	l.Lock()
	defer l.Unlock()

	rec, err := s.objects.Find(ctx, id)
	if err != nil {
		return ReadingResult{}, err
	}
	if rec == nil {
		return ReadingResult{}, ErrObjectNotFound
	}

	res, err := ApplyReading(*rec, in.NewHours, in.FuelAdded, in.FullTank)
	if err != nil {
		return ReadingResult{}, err
	}

	found, err := s.objects.SetReading(ctx, id, res.NewHours, res.CurrentFuel)
	if err != nil {
		return ReadingResult{}, err
	}
	if !found {
		// Object vanished between Find and the write.
		return ReadingResult{}, ErrObjectNotFound
	}

	err = s.logs.Append(ctx, models.ReadingLog{
		Timestamp:      time.Now().In(s.loc),
		ObjectID:       id,
		PrevHours:      res.PrevHours,
		NewHours:       res.NewHours,
		HoursDelta:     res.HoursDelta,
		FuelAdded:      res.FuelAdded,
		FullTank:       res.FullTank,
		CalculatedFuel: res.CurrentFuel,
		UserID:         in.UserID,
		Username:       in.Username,
	})
	if err != nil {
		return ReadingResult{}, err
	}
	return res, nil
}
