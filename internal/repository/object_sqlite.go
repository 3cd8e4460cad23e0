package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fleetfuel/internal/models"
	"fleetfuel/internal/numfmt"
)

// ObjectSQLite stores ObjectRecords in the objects table. Numeric columns
// are TEXT in the fixed two-decimal dot format, matching the sheet backend's
// round-trip contract.
type ObjectSQLite struct {
	db *sql.DB
}

func NewObjectSQLite(db *sql.DB) *ObjectSQLite { return &ObjectSQLite{db: db} }

var _ ObjectRepo = (*ObjectSQLite)(nil)

const (
	listObjectsSQL = `
		SELECT object_id, engine_hours, fuel_capacity, current_fuel, fuel_usage_per_hour
		FROM objects ORDER BY rowid
	`
	selectObjectSQL = `
		SELECT object_id, engine_hours, fuel_capacity, current_fuel, fuel_usage_per_hour
		FROM objects WHERE object_id = ?
	`
	insertObjectSQL = `
		INSERT INTO objects (object_id, engine_hours, fuel_capacity, current_fuel, fuel_usage_per_hour)
		VALUES (?, ?, ?, ?, ?)
	`
	deleteObjectSQL     = `DELETE FROM objects WHERE object_id = ?`
	updateCapacitySQL   = `UPDATE objects SET fuel_capacity = ? WHERE object_id = ?`
	updateUsageSQL      = `UPDATE objects SET fuel_usage_per_hour = ? WHERE object_id = ?`
	updateReadingSQL    = `UPDATE objects SET engine_hours = ?, current_fuel = ? WHERE object_id = ?`
)

func scanObject(scan func(dest ...any) error) (models.ObjectRecord, error) {
	var rec models.ObjectRecord
	var hours, capacity, fuel, usage string
	if err := scan(&rec.ObjectID, &hours, &capacity, &fuel, &usage); err != nil {
		return models.ObjectRecord{}, err
	}
	rec.EngineHours = numfmt.Parse(hours, 0)
	rec.FuelCapacity = numfmt.Parse(capacity, 0)
	rec.CurrentFuel = numfmt.Parse(fuel, 0)
	rec.FuelUsagePerHour = numfmt.Parse(usage, 0)
	return rec, nil
}

func (r *ObjectSQLite) List(ctx context.Context) ([]models.ObjectRecord, error) {
	rows, err := r.db.QueryContext(ctx, listObjectsSQL)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	out := make([]models.ObjectRecord, 0, 16)
	for rows.Next() {
		rec, err := scanObject(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ObjectSQLite) Find(ctx context.Context, objectID string) (*models.ObjectRecord, error) {
	row := r.db.QueryRowContext(ctx, selectObjectSQL, strings.TrimSpace(objectID))
	rec, err := scanObject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find object %q: %w", objectID, err)
	}
	return &rec, nil
}

func (r *ObjectSQLite) Create(ctx context.Context, rec models.ObjectRecord) error {
	_, err := r.db.ExecContext(ctx, insertObjectSQL,
		strings.TrimSpace(rec.ObjectID),
		numfmt.Cell(rec.EngineHours),
		numfmt.Cell(rec.FuelCapacity),
		numfmt.Cell(rec.CurrentFuel),
		numfmt.Cell(rec.FuelUsagePerHour),
	)
	if err != nil {
		return fmt.Errorf("insert object %q: %w", rec.ObjectID, err)
	}
	return nil
}

func (r *ObjectSQLite) Delete(ctx context.Context, objectID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteObjectSQL, strings.TrimSpace(objectID))
	if err != nil {
		return false, fmt.Errorf("delete object %q: %w", objectID, err)
	}
	return affected(res)
}

func (r *ObjectSQLite) SetCapacity(ctx context.Context, objectID string, v float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateCapacitySQL, numfmt.Cell(v), strings.TrimSpace(objectID))
	if err != nil {
		return false, fmt.Errorf("update capacity of %q: %w", objectID, err)
	}
	return affected(res)
}

func (r *ObjectSQLite) SetUsage(ctx context.Context, objectID string, v float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateUsageSQL, numfmt.Cell(v), strings.TrimSpace(objectID))
	if err != nil {
		return false, fmt.Errorf("update usage of %q: %w", objectID, err)
	}
	return affected(res)
}

func (r *ObjectSQLite) SetReading(ctx context.Context, objectID string, hours, fuel float64) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateReadingSQL,
		numfmt.Cell(hours), numfmt.Cell(fuel), strings.TrimSpace(objectID))
	if err != nil {
		return false, fmt.Errorf("update reading of %q: %w", objectID, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
