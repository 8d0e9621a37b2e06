package database

import (
	"time"
)

// StoreStatus is one raw status poll as ingested from store_status.csv
type StoreStatus struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id"`
	StoreID      string    `gorm:"column:store_id;index;not null"`
	TimestampUTC time.Time `gorm:"column:timestamp_utc;not null"`
	Status       string    `gorm:"column:status;not null"`
}

// TableName specifies the table name for StoreStatus
func (StoreStatus) TableName() string {
	return "store_status"
}

// BusinessHours is one weekly schedule row for a store. Day of week uses
// 0=Monday .. 6=Sunday; times are local "HH:MM:SS" strings as they appear
// in menu_hours.csv
type BusinessHours struct {
	ID             uint   `gorm:"primaryKey;autoIncrement;column:id"`
	StoreID        string `gorm:"column:store_id;index;not null"`
	DayOfWeek      int    `gorm:"column:day_of_week;not null"`
	StartTimeLocal string `gorm:"column:start_time_local;not null"`
	EndTimeLocal   string `gorm:"column:end_time_local;not null"`
}

// TableName specifies the table name for BusinessHours
func (BusinessHours) TableName() string {
	return "business_hours"
}

// StoreTimezone maps a store to its IANA timezone identifier
type StoreTimezone struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;column:id"`
	StoreID     string `gorm:"column:store_id;uniqueIndex;not null"`
	TimezoneStr string `gorm:"column:timezone_str;not null"`
}

// TableName specifies the table name for StoreTimezone
func (StoreTimezone) TableName() string {
	return "store_timezones"
}

// Report generation states
const (
	ReportRunning  = "Running"
	ReportComplete = "Complete"
	ReportFailed   = "Failed"
)

// Report tracks one report generation request and, once complete, the path
// of the CSV artifact
type Report struct {
	ReportID    string     `gorm:"primaryKey;column:report_id"`
	Status      string     `gorm:"column:status;not null"`
	FilePath    string     `gorm:"column:file_path"`
	Error       string     `gorm:"column:error"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "report_status"
}
