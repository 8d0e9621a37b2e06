// Package reports runs uptime report generation as background units of
// work: each trigger gets an opaque id, loads an immutable snapshot from
// the database, runs the pure computation, writes the CSV artifact, and
// tracks Running/Complete/Failed state for polling.
package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/nafysaa/Store-monitoring/internal/database"
	"github.com/nafysaa/Store-monitoring/internal/uptime"
	"github.com/nafysaa/Store-monitoring/pkg/config"
	"go.uber.org/zap"
)

const defaultReportsDir = "./reports"

// Store is the persistence surface the manager needs: the three data sets
// for the snapshot, plus report status tracking.
type Store interface {
	FetchStoreStatuses() ([]database.StoreStatus, error)
	FetchBusinessHours() ([]database.BusinessHours, error)
	FetchStoreTimezones() ([]database.StoreTimezone, error)
	CreateReport(id string) error
	CompleteReport(id, filePath string) error
	FailReport(id string, genErr error) error
	GetReport(id string) (*database.Report, error)
}

// Manager coordinates background report generation.
type Manager struct {
	ctx    context.Context
	wg     *sync.WaitGroup
	store  Store
	cfg    config.ReportsData
	logger *zap.SugaredLogger
}

// NewManager creates a report manager and ensures the artifact directory
// exists.
func NewManager(ctx context.Context, wg *sync.WaitGroup, store Store, cfg config.ReportsData, logger *zap.SugaredLogger) (*Manager, error) {
	if cfg.Directory == "" {
		logger.Infof("reports.directory not provided; defaulting to %s", defaultReportsDir)
		cfg.Directory = defaultReportsDir
	}
	if cfg.DefaultTimezone == "" {
		logger.Infof("reports.default_timezone not provided; defaulting to %s", uptime.DefaultTimezone)
		cfg.DefaultTimezone = uptime.DefaultTimezone
	}
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("error creating reports directory %s: %v", cfg.Directory, err)
	}
	return &Manager{
		ctx:    ctx,
		wg:     wg,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Trigger records a new Running report and starts generation in the
// background, returning the report id for later polling.
func (m *Manager) Trigger() (string, error) {
	id := uuid.New().String()
	if err := m.store.CreateReport(id); err != nil {
		return "", fmt.Errorf("error recording report request: %v", err)
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.generate(id)
	}()

	return id, nil
}

// Get returns the tracked state of one report request.
func (m *Manager) Get(id string) (*database.Report, error) {
	return m.store.GetReport(id)
}

func (m *Manager) generate(id string) {
	m.logger.Infof("starting report generation for report %s", id)

	report, err := m.run()
	if err != nil {
		m.logger.Errorf("report %s failed: %v", id, err)
		if ferr := m.store.FailReport(id, err); ferr != nil {
			m.logger.Errorf("error recording failure of report %s: %v", id, ferr)
		}
		return
	}

	for _, issue := range report.Issues {
		m.logger.Warnf("report %s: store %s: %s", id, issue.StoreID, issue.Reason)
	}

	path := filepath.Join(m.cfg.Directory, id+".csv")
	if err := WriteCSV(path, report.Rows); err != nil {
		m.logger.Errorf("report %s failed: %v", id, err)
		if ferr := m.store.FailReport(id, err); ferr != nil {
			m.logger.Errorf("error recording failure of report %s: %v", id, ferr)
		}
		return
	}

	if err := m.store.CompleteReport(id, path); err != nil {
		m.logger.Errorf("error marking report %s complete: %v", id, err)
		return
	}
	m.logger.Infof("report %s complete: %d rows, reference instant %s, written to %s",
		id, len(report.Rows), report.ReferenceInstant.Format("2006-01-02 15:04:05 UTC"), path)
}

// run loads one immutable snapshot and executes the pure computation over
// it. Snapshot isolation comes from reading everything up front: once
// loaded, nothing mutates the input mid-computation.
func (m *Manager) run() (*uptime.Report, error) {
	snap, err := m.loadSnapshot()
	if err != nil {
		return nil, err
	}
	return uptime.BuildReport(m.ctx, snap)
}

func (m *Manager) loadSnapshot() (*uptime.Snapshot, error) {
	statuses, err := m.store.FetchStoreStatuses()
	if err != nil {
		return nil, err
	}
	hours, err := m.store.FetchBusinessHours()
	if err != nil {
		return nil, err
	}
	timezones, err := m.store.FetchStoreTimezones()
	if err != nil {
		return nil, err
	}

	snap := &uptime.Snapshot{
		Hours:           make(map[string][]uptime.HoursRule),
		Timezones:       make(map[string]string, len(timezones)),
		DefaultTimezone: m.cfg.DefaultTimezone,
	}

	badStatus := 0
	for _, row := range statuses {
		status := uptime.Status(row.Status)
		if status != uptime.StatusActive && status != uptime.StatusInactive {
			badStatus++
			continue
		}
		snap.Observations = append(snap.Observations, uptime.Observation{
			StoreID:   row.StoreID,
			Timestamp: row.TimestampUTC.UTC(),
			Status:    status,
		})
	}
	if badStatus > 0 {
		m.logger.Warnf("snapshot: %d status rows with unknown status values ignored", badStatus)
	}

	badRules := 0
	for _, row := range hours {
		rule, err := scheduleRule(row)
		if err != nil {
			badRules++
			continue
		}
		snap.Hours[row.StoreID] = append(snap.Hours[row.StoreID], rule)
	}
	if badRules > 0 {
		m.logger.Warnf("snapshot: %d invalid business-hours rows rejected", badRules)
	}

	for _, row := range timezones {
		snap.Timezones[row.StoreID] = row.TimezoneStr
	}

	return snap, nil
}

// scheduleRule validates one schedule row. A start at or after the end is
// invalid on the same-day-only assumption; rejecting it here guarantees the
// aggregator never sees a negative-length business-hours interval.
func scheduleRule(row database.BusinessHours) (uptime.HoursRule, error) {
	if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
		return uptime.HoursRule{}, fmt.Errorf("day of week %d out of range", row.DayOfWeek)
	}
	startSec, err := uptime.ParseTimeOfDay(row.StartTimeLocal)
	if err != nil {
		return uptime.HoursRule{}, err
	}
	endSec, err := uptime.ParseTimeOfDay(row.EndTimeLocal)
	if err != nil {
		return uptime.HoursRule{}, err
	}
	if startSec >= endSec {
		return uptime.HoursRule{}, fmt.Errorf("start %s not before end %s", row.StartTimeLocal, row.EndTimeLocal)
	}
	return uptime.HoursRule{Day: row.DayOfWeek, StartSec: startSec, EndSec: endSec}, nil
}
