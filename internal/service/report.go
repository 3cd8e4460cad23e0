package service

import (
	"context"
	"sort"
	"strings"

	"fleetfuel/internal/models"
	"fleetfuel/internal/repository"
)

// ObjectReport is the display-oriented view of one record: fuel clamped to
// capacity and the litres needed to fill the tank.
type ObjectReport struct {
	ObjectID     string  `json:"object_id"`
	EngineHours  float64 `json:"engine_hours"`
	CurrentFuel  float64 `json:"current_fuel"` // clamped to capacity
	FuelCapacity float64 `json:"fuel_capacity"`
	AmountToFull float64 `json:"amount_to_full"`
	UsagePerHour float64 `json:"usage_per_hour"`
}

type ShortageRow struct {
	ObjectID string  `json:"object_id"`
	Amount   float64 `json:"amount"`
}

// ShortageReport lists the objects that need fuel, sorted by id ascending,
// with the summed total.
type ShortageReport struct {
	Rows  []ShortageRow `json:"rows"`
	Total float64       `json:"total"`
}

// ReportService derives reports from the object store.
type ReportService struct {
	objects repository.ObjectRepo
}

func NewReportService(objects repository.ObjectRepo) *ReportService {
	return &ReportService{objects: objects}
}

// buildReport derives the display fields. A capacity of zero leaves the
// stored fuel unclamped.
func buildReport(rec models.ObjectRecord) ObjectReport {
	cur := rec.CurrentFuel
	if rec.FuelCapacity > 0 && cur > rec.FuelCapacity {
		cur = rec.FuelCapacity
	}
	need := rec.FuelCapacity - cur
	if need < 0 {
		need = 0
	}
	return ObjectReport{
		ObjectID:     rec.ObjectID,
		EngineHours:  rec.EngineHours,
		CurrentFuel:  cur,
		FuelCapacity: rec.FuelCapacity,
		AmountToFull: need,
		UsagePerHour: rec.FuelUsagePerHour,
	}
}

// Fleet reports every object in store order.
func (s *ReportService) Fleet(ctx context.Context) ([]ObjectReport, error) {
	recs, err := s.objects.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ObjectReport, 0, len(recs))
	for _, rec := range recs {
		out = append(out, buildReport(rec))
	}
	return out, nil
}

// Single reports one object; a lookup miss is ErrObjectNotFound.
func (s *ReportService) Single(ctx context.Context, objectID string) (*ObjectReport, error) {
	rec, err := s.objects.Find(ctx, strings.TrimSpace(objectID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrObjectNotFound
	}
	rep := buildReport(*rec)
	return &rep, nil
}

// Shortage filters to objects with a positive amount to full, sorted by
// object id ascending, and sums the amounts.
func (s *ReportService) Shortage(ctx context.Context) (ShortageReport, error) {
	recs, err := s.objects.List(ctx)
	if err != nil {
		return ShortageReport{}, err
	}
	var rep ShortageReport
	for _, rec := range recs {
		r := buildReport(rec)
		if r.ObjectID == "" || r.AmountToFull <= 0 {
			continue
		}
		rep.Rows = append(rep.Rows, ShortageRow{ObjectID: r.ObjectID, Amount: r.AmountToFull})
		rep.Total += r.AmountToFull
	}
	sort.Slice(rep.Rows, func(i, j int) bool { return rep.Rows[i].ObjectID < rep.Rows[j].ObjectID })
	return rep, nil
}
