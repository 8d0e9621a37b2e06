package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nafysaa/Store-monitoring/internal/log"
	"go.uber.org/zap"
)

// ErrReportNotFound is returned by GetReport for an unknown report id.
var ErrReportNotFound = errors.New("report not found")

const insertBatchSize = 500

// Client holds the connection to the monitoring database
type Client struct {
	connectionString string
	DB               *gorm.DB // Exported so it can be accessed from other packages
	logger           *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(connectionString string, logger *zap.SugaredLogger) *Client {
	return &Client{
		connectionString: connectionString,
		logger:           logger,
	}
}

// Connect connects to the monitoring database
func (c *Client) Connect() error {
	var err error

	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	log.Info("connecting to monitoring database...")
	c.DB, err = gorm.Open(postgres.Open(c.connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		log.Warn("warning: unable to create a database connection:", err)
		return err
	}
	log.Info("database connection successful")

	return nil
}

// Migrate creates or updates the monitoring tables
func (c *Client) Migrate() error {
	return c.DB.AutoMigrate(
		&StoreStatus{},
		&BusinessHours{},
		&StoreTimezone{},
		&Report{},
	)
}

// TruncateMonitoringData clears the three ingested data sets ahead of a
// fresh load. Report status rows are kept.
func (c *Client) TruncateMonitoringData() error {
	for _, model := range []interface{}{&StoreStatus{}, &BusinessHours{}, &StoreTimezone{}} {
		if err := c.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("error clearing table: %v", err)
		}
	}
	return nil
}

// InsertStoreStatuses bulk-inserts status polls
func (c *Client) InsertStoreStatuses(rows []StoreStatus) error {
	if len(rows) == 0 {
		return nil
	}
	return c.DB.CreateInBatches(rows, insertBatchSize).Error
}

// InsertBusinessHours bulk-inserts schedule rows
func (c *Client) InsertBusinessHours(rows []BusinessHours) error {
	if len(rows) == 0 {
		return nil
	}
	return c.DB.CreateInBatches(rows, insertBatchSize).Error
}

// InsertStoreTimezones bulk-inserts timezone rows
func (c *Client) InsertStoreTimezones(rows []StoreTimezone) error {
	if len(rows) == 0 {
		return nil
	}
	return c.DB.CreateInBatches(rows, insertBatchSize).Error
}

// FetchStoreStatuses returns every status poll in insertion order, so that
// downstream input-order policies are reproducible across runs.
func (c *Client) FetchStoreStatuses() ([]StoreStatus, error) {
	var rows []StoreStatus
	if err := c.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying store_status: %v", err)
	}
	return rows, nil
}

// FetchBusinessHours returns every schedule row
func (c *Client) FetchBusinessHours() ([]BusinessHours, error) {
	var rows []BusinessHours
	if err := c.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying business_hours: %v", err)
	}
	return rows, nil
}

// FetchStoreTimezones returns every timezone row
func (c *Client) FetchStoreTimezones() ([]StoreTimezone, error) {
	var rows []StoreTimezone
	if err := c.DB.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying store_timezones: %v", err)
	}
	return rows, nil
}

// CreateReport records a new report generation request in the Running state
func (c *Client) CreateReport(id string) error {
	report := Report{
		ReportID:  id,
		Status:    ReportRunning,
		CreatedAt: time.Now().UTC(),
	}
	return c.DB.Create(&report).Error
}

// CompleteReport marks a report as finished and records its artifact path
func (c *Client) CompleteReport(id, filePath string) error {
	now := time.Now().UTC()
	return c.DB.Model(&Report{}).Where("report_id = ?", id).Updates(map[string]interface{}{
		"status":       ReportComplete,
		"file_path":    filePath,
		"completed_at": &now,
	}).Error
}

// FailReport marks a report as failed and records the reason
func (c *Client) FailReport(id string, genErr error) error {
	now := time.Now().UTC()
	return c.DB.Model(&Report{}).Where("report_id = ?", id).Updates(map[string]interface{}{
		"status":       ReportFailed,
		"error":        genErr.Error(),
		"completed_at": &now,
	}).Error
}

// GetReport looks up one report generation request by id
func (c *Client) GetReport(id string) (*Report, error) {
	var report Report
	err := c.DB.Where("report_id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying report_status: %v", err)
	}
	return &report, nil
}
