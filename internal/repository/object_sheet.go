package repository

import (
	"context"
	"strings"

	"fleetfuel/internal/models"
	"fleetfuel/internal/numfmt"
)

// Column positions on the Objects sheet (1-based).
const (
	colObjectID = iota + 1
	colEngineHours
	colFuelCapacity
	colCurrentFuel
	colFuelUsagePerHour
)

// ObjectSheet stores ObjectRecords on the Objects sheet, one row per object.
// Numeric cells are written as text in the fixed two-decimal dot format so
// values re-read unambiguously regardless of locale.
type ObjectSheet struct {
	wb *Workbook
}

func NewObjectSheet(wb *Workbook) *ObjectSheet { return &ObjectSheet{wb: wb} }

var _ ObjectRepo = (*ObjectSheet)(nil)

// cellAt tolerates short rows: excelize drops trailing empty cells.
func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return row[col-1]
	}
	return ""
}

func parseObjectRow(row []string) models.ObjectRecord {
	return models.ObjectRecord{
		ObjectID:         strings.TrimSpace(cellAt(row, colObjectID)),
		EngineHours:      numfmt.Parse(cellAt(row, colEngineHours), 0),
		FuelCapacity:     numfmt.Parse(cellAt(row, colFuelCapacity), 0),
		CurrentFuel:      numfmt.Parse(cellAt(row, colCurrentFuel), 0),
		FuelUsagePerHour: numfmt.Parse(cellAt(row, colFuelUsagePerHour), 0),
	}
}

// findRow returns the 1-based sheet row of the object, or 0 when absent.
// Caller must hold wb.mu.
func (r *ObjectSheet) findRow(objectID string) (int, error) {
	want := strings.TrimSpace(objectID)
	rows, err := r.wb.rows(SheetObjects)
	if err != nil {
		return 0, err
	}
	for i := firstDataRow - 1; i < len(rows); i++ {
		if strings.TrimSpace(cellAt(rows[i], colObjectID)) == want {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (r *ObjectSheet) List(ctx context.Context) ([]models.ObjectRecord, error) {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	rows, err := r.wb.rows(SheetObjects)
	if err != nil {
		return nil, err
	}
	out := make([]models.ObjectRecord, 0, len(rows))
	for i := firstDataRow - 1; i < len(rows); i++ {
		rec := parseObjectRow(rows[i])
		if rec.ObjectID == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *ObjectSheet) Find(ctx context.Context, objectID string) (*models.ObjectRecord, error) {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	row, err := r.findRow(objectID)
	if err != nil {
		return nil, err
	}
	if row == 0 {
		return nil, nil
	}
	rows, err := r.wb.rows(SheetObjects)
	if err != nil {
		return nil, err
	}
	rec := parseObjectRow(rows[row-1])
	return &rec, nil
}

func (r *ObjectSheet) Create(ctx context.Context, rec models.ObjectRecord) error {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	rows, err := r.wb.rows(SheetObjects)
	if err != nil {
		return err
	}
	next := len(rows) + 1
	if next < firstDataRow {
		next = firstDataRow
	}
	err = r.wb.setRow(SheetObjects, next, []any{
		strings.TrimSpace(rec.ObjectID),
		numfmt.Cell(rec.EngineHours),
		numfmt.Cell(rec.FuelCapacity),
		numfmt.Cell(rec.CurrentFuel),
		numfmt.Cell(rec.FuelUsagePerHour),
	})
	if err != nil {
		return err
	}
	return r.wb.save()
}

func (r *ObjectSheet) Delete(ctx context.Context, objectID string) (bool, error) {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	row, err := r.findRow(objectID)
	if err != nil {
		return false, err
	}
	if row == 0 {
		return false, nil
	}
	if err := r.wb.f.RemoveRow(SheetObjects, row); err != nil {
		return false, err
	}
	return true, r.wb.save()
}

func (r *ObjectSheet) SetCapacity(ctx context.Context, objectID string, v float64) (bool, error) {
	return r.setCells(objectID, map[int]float64{colFuelCapacity: v})
}

func (r *ObjectSheet) SetUsage(ctx context.Context, objectID string, v float64) (bool, error) {
	return r.setCells(objectID, map[int]float64{colFuelUsagePerHour: v})
}

func (r *ObjectSheet) SetReading(ctx context.Context, objectID string, hours, fuel float64) (bool, error) {
	return r.setCells(objectID, map[int]float64{
		colEngineHours: hours,
		colCurrentFuel: fuel,
	})
}

func (r *ObjectSheet) setCells(objectID string, cols map[int]float64) (bool, error) {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	row, err := r.findRow(objectID)
	if err != nil {
		return false, err
	}
	if row == 0 {
		return false, nil
	}
	for col, v := range cols {
		if err := r.wb.setCell(SheetObjects, col, row, numfmt.Cell(v)); err != nil {
			return false, err
		}
	}
	return true, r.wb.save()
}
