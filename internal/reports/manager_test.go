package reports

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nafysaa/Store-monitoring/internal/database"
	"github.com/nafysaa/Store-monitoring/pkg/config"
	"go.uber.org/zap"
)

// fakeStore is an in-memory Store for manager tests.
type fakeStore struct {
	mu        sync.Mutex
	statuses  []database.StoreStatus
	hours     []database.BusinessHours
	timezones []database.StoreTimezone
	reports   map[string]*database.Report
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: make(map[string]*database.Report)}
}

func (f *fakeStore) FetchStoreStatuses() ([]database.StoreStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses, nil
}

func (f *fakeStore) FetchBusinessHours() ([]database.BusinessHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hours, nil
}

func (f *fakeStore) FetchStoreTimezones() ([]database.StoreTimezone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timezones, nil
}

func (f *fakeStore) CreateReport(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[id] = &database.Report{ReportID: id, Status: database.ReportRunning}
	return nil
}

func (f *fakeStore) CompleteReport(id, filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[id].Status = database.ReportComplete
	f.reports[id].FilePath = filePath
	return nil
}

func (f *fakeStore) FailReport(id string, genErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[id].Status = database.ReportFailed
	f.reports[id].Error = genErr.Error()
	return nil
}

func (f *fakeStore) GetReport(id string) (*database.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, database.ErrReportNotFound
	}
	copied := *report
	return &copied, nil
}

func waitForReport(t *testing.T, m *Manager, id string) *database.Report {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		report, err := m.Get(id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if report.Status != database.ReportRunning {
			return report
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("report %s still running after timeout", id)
	return nil
}

func newTestManager(t *testing.T, store Store) (*Manager, *sync.WaitGroup) {
	t.Helper()
	var wg sync.WaitGroup
	m, err := NewManager(context.Background(), &wg, store, config.ReportsData{
		Directory: t.TempDir(),
	}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, &wg
}

func TestManagerGeneratesReport(t *testing.T) {
	day := time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC)
	store := newFakeStore()
	store.statuses = []database.StoreStatus{
		{ID: 1, StoreID: "42", TimestampUTC: day.Add(9 * time.Hour), Status: "active"},
		{ID: 2, StoreID: "42", TimestampUTC: day.Add(10 * time.Hour), Status: "inactive"},
		{ID: 3, StoreID: "42", TimestampUTC: day.Add(11 * time.Hour), Status: "active"},
	}
	store.timezones = []database.StoreTimezone{
		{ID: 1, StoreID: "42", TimezoneStr: "UTC"},
	}

	m, wg := newTestManager(t, store)
	id, err := m.Trigger()
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	report := waitForReport(t, m, id)
	wg.Wait()

	if report.Status != database.ReportComplete {
		t.Fatalf("status = %s, want Complete (error: %s)", report.Status, report.Error)
	}

	data, err := os.ReadFile(report.FilePath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("artifact has %d lines, want 2:\n%s", len(lines), data)
	}
	if lines[0] != "store_id,uptime_last_hour,uptime_last_day,uptime_last_week,downtime_last_hour,downtime_last_day,downtime_last_week" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	// Always-open store: [10:00,11:00) inactive fills the whole 1h window.
	if lines[1] != "42,0.00,60.00,60.00,60.00,60.00,60.00" {
		t.Errorf("unexpected row: %s", lines[1])
	}
	if filepath.Ext(report.FilePath) != ".csv" {
		t.Errorf("artifact path %s does not end in .csv", report.FilePath)
	}
}

func TestManagerFailsWithoutObservations(t *testing.T) {
	m, wg := newTestManager(t, newFakeStore())
	id, err := m.Trigger()
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	report := waitForReport(t, m, id)
	wg.Wait()

	if report.Status != database.ReportFailed {
		t.Fatalf("status = %s, want Failed", report.Status)
	}
	if !strings.Contains(report.Error, "no observations") {
		t.Errorf("error = %q, want mention of missing observations", report.Error)
	}
}

func TestManagerRejectsInvalidScheduleRows(t *testing.T) {
	day := time.Date(2023, 1, 25, 0, 0, 0, 0, time.UTC) // Wednesday
	store := newFakeStore()
	store.statuses = []database.StoreStatus{
		{ID: 1, StoreID: "42", TimestampUTC: day.Add(9 * time.Hour), Status: "active"},
		{ID: 2, StoreID: "42", TimestampUTC: day.Add(11 * time.Hour), Status: "active"},
	}
	store.timezones = []database.StoreTimezone{
		{ID: 1, StoreID: "42", TimezoneStr: "UTC"},
	}
	// The inverted rule is rejected, leaving a schedule that covers
	// Wednesday 10:00-11:00 only.
	store.hours = []database.BusinessHours{
		{ID: 1, StoreID: "42", DayOfWeek: 2, StartTimeLocal: "17:00:00", EndTimeLocal: "09:00:00"},
		{ID: 2, StoreID: "42", DayOfWeek: 2, StartTimeLocal: "10:00:00", EndTimeLocal: "11:00:00"},
	}

	m, wg := newTestManager(t, store)
	id, err := m.Trigger()
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	report := waitForReport(t, m, id)
	wg.Wait()

	if report.Status != database.ReportComplete {
		t.Fatalf("status = %s, want Complete (error: %s)", report.Status, report.Error)
	}
	data, err := os.ReadFile(report.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Only the valid 10:00-11:00 rule counts: the active interval covers
	// it fully in the 1d and 1w windows, and the 1h window [10:00,11:00).
	if lines[1] != "42,60.00,60.00,60.00,0.00,0.00,0.00" {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestManagerGetUnknownReport(t *testing.T) {
	m, _ := newTestManager(t, newFakeStore())
	if _, err := m.Get("no-such-id"); !errors.Is(err, database.ErrReportNotFound) {
		t.Fatalf("got %v, want ErrReportNotFound", err)
	}
}
