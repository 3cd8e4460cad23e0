package repository

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Sheet and column layout of the workbook. Row 1 of each sheet holds the
// headers; data starts at row 2.
const (
	SheetObjects = "Objects"
	SheetLogs    = "Logs"

	firstDataRow = 2
)

var (
	objectHeaders = []string{"ObjectID", "EngineHours", "FuelCapacity", "CurrentFuel", "FuelUsagePerHour"}
	logHeaders    = []string{"Timestamp", "ObjectID", "PrevHours", "NewHours", "HoursDelta", "FuelAdded", "FullTank", "CalculatedCurrentFuel", "UserID", "Username"}
)

// Workbook wraps an excelize file with a mutex. The store is a shared
// resource accessed via read-then-write sequences; the mutex keeps a single
// process from interleaving them. Mutations are flushed to disk immediately.
type Workbook struct {
	mu sync.Mutex
	f  *excelize.File
}

// OpenWorkbook opens the workbook at path, creating it with the Objects and
// Logs sheets (headers in row 1) when it does not exist yet.
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook %q: %w", path, err)
		}
		wb := &Workbook{f: f}
		if err := wb.ensureSheets(); err != nil {
			_ = f.Close()
			return nil, err
		}
		return wb, nil
	}

	f := excelize.NewFile()
	wb := &Workbook{f: f}
	if err := wb.ensureSheets(); err != nil {
		_ = f.Close()
		return nil, err
	}
	// Drop the default sheet excelize creates with a new file.
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		_ = f.DeleteSheet("Sheet1")
	}
	if err := f.SaveAs(path); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create workbook %q: %w", path, err)
	}
	return wb, nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func (w *Workbook) ensureSheets() error {
	for sheet, headers := range map[string][]string{
		SheetObjects: objectHeaders,
		SheetLogs:    logHeaders,
	} {
		if idx, err := w.f.GetSheetIndex(sheet); err == nil && idx >= 0 {
			continue
		}
		if _, err := w.f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return err
			}
			if err := w.f.SetCellValue(sheet, cell, h); err != nil {
				return fmt.Errorf("write header %q on %q: %w", h, sheet, err)
			}
		}
	}
	return nil
}

// rows returns all rows of a sheet, headers included.
func (w *Workbook) rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// setRow writes values into a row starting at column A.
func (w *Workbook) setRow(sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// setCell writes a single cell by column number (1-based).
func (w *Workbook) setCell(sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// save flushes the workbook to its file.
func (w *Workbook) save() error {
	if err := w.f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
