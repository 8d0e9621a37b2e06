package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nafysaa/Store-monitoring/internal/database"
	"go.uber.org/zap"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	svc    ReportService
	logger *zap.SugaredLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc ReportService, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		svc:    svc,
		logger: logger,
	}
}

// TriggerReport starts a new background report generation and returns its id.
func (h *Handlers) TriggerReport(w http.ResponseWriter, req *http.Request) {
	id, err := h.svc.Trigger()
	if err != nil {
		h.logger.Errorf("error triggering report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "could not start report generation"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"report_id": id})
}

// GetReport polls one report by id: an in-progress marker while running, an
// error document on failure, or the CSV artifact once complete.
func (h *Handlers) GetReport(w http.ResponseWriter, req *http.Request) {
	id := req.URL.Query().Get("report_id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "report_id query parameter is required"})
		return
	}

	report, err := h.svc.Get(id)
	if errors.Is(err, database.ErrReportNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Report ID not found"})
		return
	}
	if err != nil {
		h.logger.Errorf("error fetching report %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "could not fetch report"})
		return
	}

	switch report.Status {
	case database.ReportRunning:
		writeJSON(w, http.StatusOK, map[string]string{"status": database.ReportRunning})
	case database.ReportFailed:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": database.ReportFailed,
			"detail": report.Error,
		})
	default:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, id))
		http.ServeFile(w, req, report.FilePath)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
