package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetfuel/internal/service"
)

func TestFleetHandler_Report(t *testing.T) {
	reports := &mockReports{rows: []service.ObjectReport{
		{ObjectID: "US0001", EngineHours: 700, FuelCapacity: 300, CurrentFuel: 50, AmountToFull: 250, UsagePerHour: 5},
		{ObjectID: "US0002", EngineHours: 50, FuelCapacity: 55, CurrentFuel: 55},
	}}
	r := newTestRouter(&service.Service{Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int                    `json:"count"`
		Objects []service.ObjectReport `json:"objects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || out.Objects[0].AmountToFull != 250 {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestFleetHandler_ReportFailure(t *testing.T) {
	reports := &mockReports{err: errors.New("workbook gone")}
	r := newTestRouter(&service.Service{Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestFleetHandler_SingleObject(t *testing.T) {
	reports := &mockReports{rows: []service.ObjectReport{
		{ObjectID: "US0001", EngineHours: 700, CurrentFuel: 50},
	}}
	r := newTestRouter(&service.Service{Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet/US0001", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var rep service.ObjectReport
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rep.ObjectID != "US0001" || rep.CurrentFuel != 50 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet/GHOST", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestFleetHandler_Shortage(t *testing.T) {
	reports := &mockReports{shortage: service.ShortageReport{
		Rows:  []service.ShortageRow{{ObjectID: "US0001", Amount: 250}},
		Total: 250,
	}}
	r := newTestRouter(&service.Service{Reports: reports})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fleet/shortage", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var rep service.ShortageReport
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rep.Total != 250 || len(rep.Rows) != 1 {
		t.Fatalf("unexpected shortage: %+v", rep)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
}
