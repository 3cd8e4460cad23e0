package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/numfmt"

	"github.com/google/uuid"
)

// LogSQLite appends ReadingLog entries to the reading_logs table.
type LogSQLite struct {
	db *sql.DB
}

func NewLogSQLite(db *sql.DB) *LogSQLite { return &LogSQLite{db: db} }

var _ LogRepo = (*LogSQLite)(nil)

const insertLogSQL = `
	INSERT INTO reading_logs
		(id, ts, object_id, prev_hours, new_hours, hours_delta, fuel_added, full_tank, calculated_current_fuel, user_id, username)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Append inserts a new entry. If LogID or Timestamp are empty, they're set.
func (r *LogSQLite) Append(ctx context.Context, e models.ReadingLog) error {
	if e.LogID == "" {
		e.LogID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertLogSQL,
		e.LogID,
		e.Timestamp.Format(logTimeLayout),
		strings.TrimSpace(e.ObjectID),
		numfmt.Cell(e.PrevHours),
		numfmt.Cell(e.NewHours),
		numfmt.Cell(e.HoursDelta),
		numfmt.Cell(e.FuelAdded),
		e.FullTank,
		numfmt.Cell(e.CalculatedFuel),
		e.UserID,
		e.Username,
	)
	if err != nil {
		return fmt.Errorf("append reading log for %q: %w", e.ObjectID, err)
	}
	return nil
}

// List returns entries filtered by [from, to] (inclusive) and/or object id,
// in append order.
func (r *LogSQLite) List(ctx context.Context, from, to time.Time, objectID string) ([]models.ReadingLog, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "ts >= ?")
		args = append(args, from.Format(logTimeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "ts <= ?")
		args = append(args, to.Format(logTimeLayout))
	}
	if id := strings.TrimSpace(objectID); id != "" {
		conds = append(conds, "object_id = ?")
		args = append(args, id)
	}

	q := `SELECT id, ts, object_id, prev_hours, new_hours, hours_delta, fuel_added, full_tank, calculated_current_fuel, user_id, username FROM reading_logs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY ts ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reading logs: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReadingLog, 0, 64)
	for rows.Next() {
		var (
			e        models.ReadingLog
			ts       string
			prev     string
			next     string
			delta    string
			added    string
			resulted string
			username sql.NullString
		)
		if err := rows.Scan(&e.LogID, &ts, &e.ObjectID, &prev, &next, &delta, &added, &e.FullTank, &resulted, &e.UserID, &username); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(logTimeLayout, ts)
		e.PrevHours = numfmt.Parse(prev, 0)
		e.NewHours = numfmt.Parse(next, 0)
		e.HoursDelta = numfmt.Parse(delta, 0)
		e.FuelAdded = numfmt.Parse(added, 0)
		e.CalculatedFuel = numfmt.Parse(resulted, 0)
		e.Username = username.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
