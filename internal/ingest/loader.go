// Package ingest loads the three monitoring CSV data sets into the
// database: status polls, weekly business hours, and store timezones.
// Malformed rows are skipped and counted, never fatal.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nafysaa/Store-monitoring/internal/database"
	"github.com/nafysaa/Store-monitoring/internal/uptime"
	"github.com/nafysaa/Store-monitoring/pkg/config"
	"go.uber.org/zap"
)

// Default CSV file names inside the data directory, matching the source
// data set.
const (
	defaultStoreStatusFile   = "store_status.csv"
	defaultBusinessHoursFile = "menu_hours.csv"
	defaultTimezonesFile     = "timezones.csv"
)

// Timestamp layouts seen in store_status.csv, most specific first.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999 UTC",
	"2006-01-02 15:04:05 UTC",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// Store is the persistence surface the loader needs.
type Store interface {
	TruncateMonitoringData() error
	InsertStoreStatuses([]database.StoreStatus) error
	InsertBusinessHours([]database.BusinessHours) error
	InsertStoreTimezones([]database.StoreTimezone) error
}

// Loader reads the CSV files and replaces the database contents with them.
type Loader struct {
	store  Store
	cfg    config.IngestData
	logger *zap.SugaredLogger
}

// NewLoader creates a new CSV loader
func NewLoader(store Store, cfg config.IngestData, logger *zap.SugaredLogger) *Loader {
	if cfg.StoreStatusFile == "" {
		cfg.StoreStatusFile = defaultStoreStatusFile
	}
	if cfg.BusinessHoursFile == "" {
		cfg.BusinessHoursFile = defaultBusinessHoursFile
	}
	if cfg.TimezonesFile == "" {
		cfg.TimezonesFile = defaultTimezonesFile
	}
	return &Loader{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Run parses all three CSV files and then replaces the database contents
// with them. Parsing happens before the truncate so an unreadable file
// never leaves the monitoring tables empty. Per-file skipped-row counts
// are logged as data-quality signals.
func (l *Loader) Run() error {
	var statuses []database.StoreStatus
	var hours []database.BusinessHours
	var timezones []database.StoreTimezone
	var statusSkipped, hoursSkipped, tzSkipped int

	err := l.withFile(l.cfg.StoreStatusFile, func(r io.Reader) (err error) {
		statuses, statusSkipped, err = ParseStoreStatuses(r)
		return err
	})
	if err != nil {
		return err
	}
	err = l.withFile(l.cfg.BusinessHoursFile, func(r io.Reader) (err error) {
		hours, hoursSkipped, err = ParseBusinessHours(r)
		return err
	})
	if err != nil {
		return err
	}
	err = l.withFile(l.cfg.TimezonesFile, func(r io.Reader) (err error) {
		timezones, tzSkipped, err = ParseStoreTimezones(r)
		return err
	})
	if err != nil {
		return err
	}

	l.logger.Info("clearing existing monitoring data...")
	if err := l.store.TruncateMonitoringData(); err != nil {
		return fmt.Errorf("error clearing monitoring tables: %v", err)
	}
	if err := l.store.InsertStoreStatuses(statuses); err != nil {
		return fmt.Errorf("error inserting store statuses: %v", err)
	}
	if err := l.store.InsertBusinessHours(hours); err != nil {
		return fmt.Errorf("error inserting business hours: %v", err)
	}
	if err := l.store.InsertStoreTimezones(timezones); err != nil {
		return fmt.Errorf("error inserting store timezones: %v", err)
	}

	l.logger.Infof("ingest complete: %d status polls (%d skipped), %d schedule rows (%d skipped), %d timezones (%d skipped)",
		len(statuses), statusSkipped, len(hours), hoursSkipped, len(timezones), tzSkipped)
	return nil
}

func (l *Loader) withFile(name string, fn func(io.Reader) error) error {
	path := filepath.Join(l.cfg.DataDir, name)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %v", path, err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return fmt.Errorf("error loading %s: %v", path, err)
	}
	return nil
}

// ParseStoreStatuses reads store_status.csv rows. Rows with an unparsable
// timestamp or an unknown status value are skipped and counted.
func ParseStoreStatuses(r io.Reader) ([]database.StoreStatus, int, error) {
	records, cols, skipped, err := readWithHeader(r, "store_id", "status", "timestamp_utc")
	if err != nil {
		return nil, 0, err
	}

	var rows []database.StoreStatus
	for _, rec := range records {
		ts, err := parseTimestamp(rec[cols["timestamp_utc"]])
		if err != nil {
			skipped++
			continue
		}
		status := strings.TrimSpace(rec[cols["status"]])
		if status != string(uptime.StatusActive) && status != string(uptime.StatusInactive) {
			skipped++
			continue
		}
		rows = append(rows, database.StoreStatus{
			StoreID:      strings.TrimSpace(rec[cols["store_id"]]),
			TimestampUTC: ts,
			Status:       status,
		})
	}
	return rows, skipped, nil
}

// ParseBusinessHours reads menu_hours.csv rows. Rows with a bad day of
// week, malformed times, or a start at or after the end are skipped and
// counted (overnight spans are unsupported).
func ParseBusinessHours(r io.Reader) ([]database.BusinessHours, int, error) {
	records, cols, skipped, err := readWithHeader(r, "store_id", "dayOfWeek", "start_time_local", "end_time_local")
	if err != nil {
		return nil, 0, err
	}

	var rows []database.BusinessHours
	for _, rec := range records {
		day, err := strconv.Atoi(strings.TrimSpace(rec[cols["dayOfWeek"]]))
		if err != nil || day < 0 || day > 6 {
			skipped++
			continue
		}
		start := strings.TrimSpace(rec[cols["start_time_local"]])
		end := strings.TrimSpace(rec[cols["end_time_local"]])
		startSec, err := uptime.ParseTimeOfDay(start)
		if err != nil {
			skipped++
			continue
		}
		endSec, err := uptime.ParseTimeOfDay(end)
		if err != nil || startSec >= endSec {
			skipped++
			continue
		}
		rows = append(rows, database.BusinessHours{
			StoreID:        strings.TrimSpace(rec[cols["store_id"]]),
			DayOfWeek:      day,
			StartTimeLocal: start,
			EndTimeLocal:   end,
		})
	}
	return rows, skipped, nil
}

// ParseStoreTimezones reads timezones.csv rows, skipping rows whose
// timezone identifier does not resolve.
func ParseStoreTimezones(r io.Reader) ([]database.StoreTimezone, int, error) {
	records, cols, skipped, err := readWithHeader(r, "store_id", "timezone_str")
	if err != nil {
		return nil, 0, err
	}

	var rows []database.StoreTimezone
	for _, rec := range records {
		tz := strings.TrimSpace(rec[cols["timezone_str"]])
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			skipped++
			continue
		}
		rows = append(rows, database.StoreTimezone{
			StoreID:     strings.TrimSpace(rec[cols["store_id"]]),
			TimezoneStr: tz,
		})
	}
	return rows, skipped, nil
}

// readWithHeader reads all CSV records, maps the required column names to
// their indexes from the header row, and drops (counting them as skipped)
// records too short to hold every required column.
func readWithHeader(r io.Reader, required ...string) ([][]string, map[string]int, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error reading CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, nil, 0, fmt.Errorf("empty CSV: missing header row")
	}

	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, 0, fmt.Errorf("missing required column %q", name)
		}
	}

	var valid [][]string
	skipped := 0
	for _, rec := range records[1:] {
		ok := true
		for _, name := range required {
			if cols[name] >= len(rec) {
				ok = false
				break
			}
		}
		if ok {
			valid = append(valid, rec)
		} else {
			skipped++
		}
	}
	return valid, cols, skipped, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}
