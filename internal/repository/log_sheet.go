package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/numfmt"
)

// logTimeLayout is the wall-clock format used in the Logs sheet.
const logTimeLayout = "2006-01-02 15:04:05"

// LogSheet appends ReadingLog entries to the Logs sheet. Entries are never
// mutated or deleted.
type LogSheet struct {
	wb *Workbook
}

func NewLogSheet(wb *Workbook) *LogSheet { return &LogSheet{wb: wb} }

var _ LogRepo = (*LogSheet)(nil)

func (r *LogSheet) Append(ctx context.Context, e models.ReadingLog) error {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	rows, err := r.wb.rows(SheetLogs)
	if err != nil {
		return err
	}
	next := len(rows) + 1
	if next < firstDataRow {
		next = firstDataRow
	}
	full := "FALSE"
	if e.FullTank {
		full = "TRUE"
	}
	err = r.wb.setRow(SheetLogs, next, []any{
		e.Timestamp.Format(logTimeLayout),
		strings.TrimSpace(e.ObjectID),
		numfmt.Cell(e.PrevHours),
		numfmt.Cell(e.NewHours),
		numfmt.Cell(e.HoursDelta),
		numfmt.Cell(e.FuelAdded),
		full,
		numfmt.Cell(e.CalculatedFuel),
		strconv.FormatInt(e.UserID, 10),
		e.Username,
	})
	if err != nil {
		return err
	}
	return r.wb.save()
}

func (r *LogSheet) List(ctx context.Context, from, to time.Time, objectID string) ([]models.ReadingLog, error) {
	r.wb.mu.Lock()
	defer r.wb.mu.Unlock()

	rows, err := r.wb.rows(SheetLogs)
	if err != nil {
		return nil, err
	}
	wantID := strings.TrimSpace(objectID)
	out := make([]models.ReadingLog, 0, len(rows))
	for i := firstDataRow - 1; i < len(rows); i++ {
		row := rows[i]
		ts, err := time.Parse(logTimeLayout, cellAt(row, 1))
		if err != nil {
			continue // malformed row, skip rather than fail the whole listing
		}
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		id := strings.TrimSpace(cellAt(row, 2))
		if wantID != "" && id != wantID {
			continue
		}
		uid, _ := strconv.ParseInt(strings.TrimSpace(cellAt(row, 9)), 10, 64)
		out = append(out, models.ReadingLog{
			Timestamp:      ts,
			ObjectID:       id,
			PrevHours:      numfmt.Parse(cellAt(row, 3), 0),
			NewHours:       numfmt.Parse(cellAt(row, 4), 0),
			HoursDelta:     numfmt.Parse(cellAt(row, 5), 0),
			FuelAdded:      numfmt.Parse(cellAt(row, 6), 0),
			FullTank:       strings.EqualFold(cellAt(row, 7), "TRUE"),
			CalculatedFuel: numfmt.Parse(cellAt(row, 8), 0),
			UserID:         uid,
			Username:       cellAt(row, 10),
		})
	}
	return out, nil
}
