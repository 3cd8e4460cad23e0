package handlers

import (
	"context"
	"strings"
	"time"

	"fleetfuel/internal/models"
	"fleetfuel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockReadings struct {
	res  service.ReadingResult
	err  error
	last service.ReadingInput
}

func (m *mockReadings) Apply(ctx context.Context, in service.ReadingInput) (service.ReadingResult, error) {
	m.last = in
	return m.res, m.err
}

type mockFleet struct {
	ids []string
	err error
}

func (m *mockFleet) AddObject(ctx context.Context, id string, capacity float64) error { return m.err }
func (m *mockFleet) DeleteObject(ctx context.Context, id string) (bool, error)       { return false, m.err }
func (m *mockFleet) SetCapacity(ctx context.Context, id string, v float64) (bool, error) {
	return false, m.err
}
func (m *mockFleet) SetUsage(ctx context.Context, id string, v float64) (bool, error) {
	return false, m.err
}
func (m *mockFleet) ListObjectIDs(ctx context.Context) ([]string, error) { return m.ids, m.err }

type mockReports struct {
	rows     []service.ObjectReport
	shortage service.ShortageReport
	err      error
}

func (m *mockReports) Fleet(ctx context.Context) ([]service.ObjectReport, error) {
	return m.rows, m.err
}

func (m *mockReports) Single(ctx context.Context, objectID string) (*service.ObjectReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	id := strings.TrimSpace(objectID)
	for i := range m.rows {
		if m.rows[i].ObjectID == id {
			rep := m.rows[i]
			return &rep, nil
		}
	}
	return nil, service.ErrObjectNotFound
}

func (m *mockReports) Shortage(ctx context.Context) (service.ShortageReport, error) {
	return m.shortage, m.err
}

type mockReadingLogs struct {
	resp       []models.ReadingLog
	err        error
	lastFilter service.LogFilter
	lastFrom   time.Time
	lastTo     time.Time
}

func (m *mockReadingLogs) List(ctx context.Context, f service.LogFilter) ([]models.ReadingLog, error) {
	m.lastFilter = f
	m.lastFrom = f.From
	m.lastTo = f.To
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
