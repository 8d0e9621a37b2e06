// Package restserver exposes the trigger/poll API for report generation.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/nafysaa/Store-monitoring/internal/database"
	"github.com/nafysaa/Store-monitoring/pkg/config"
	"go.uber.org/zap"
)

// ReportService is the report management surface the handlers call.
type ReportService interface {
	Trigger() (string, error)
	Get(id string) (*database.Report, error)
}

// Controller represents the REST server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	httpCfg  config.HTTPData
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, hc config.HTTPData, svc ReportService, logger *zap.SugaredLogger) (*Controller, error) {
	if hc.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		hc.ListenAddr = "0.0.0.0"
	}
	if hc.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		hc.Port = 8080
	}

	ctrl := &Controller{
		ctx:      ctx,
		wg:       wg,
		httpCfg:  hc,
		logger:   logger,
		handlers: NewHandlers(svc, logger),
	}

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", hc.ListenAddr, hc.Port)
	ctrl.Server.Handler = newRouter(ctrl.handlers)

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("Starting REST server controller on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// newRouter configures the HTTP router with all endpoints
func newRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/trigger_report", h.TriggerReport).Methods(http.MethodPost)
	router.HandleFunc("/get_report", h.GetReport).Methods(http.MethodGet)
	return router
}
