package reports

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nafysaa/Store-monitoring/internal/uptime"
)

// csvHeader is the fixed output schema: six minute values per store.
var csvHeader = []string{
	"store_id",
	"uptime_last_hour",
	"uptime_last_day",
	"uptime_last_week",
	"downtime_last_hour",
	"downtime_last_day",
	"downtime_last_week",
}

// WriteCSV serializes report rows to a CSV artifact at path. Values carry
// two decimals, matching the rounding applied upstream.
func WriteCSV(path string, rows []uptime.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating report file %s: %v", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("error writing report header: %v", err)
	}
	for _, row := range rows {
		record := []string{
			row.StoreID,
			minutes(row.UptimeLastHour),
			minutes(row.UptimeLastDay),
			minutes(row.UptimeLastWeek),
			minutes(row.DowntimeLastHour),
			minutes(row.DowntimeLastDay),
			minutes(row.DowntimeLastWeek),
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("error writing report row for store %s: %v", row.StoreID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("error flushing report file %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing report file %s: %v", path, err)
	}
	return nil
}

func minutes(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
