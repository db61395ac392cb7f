package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/salon-server/internal/logger"
)

// ScheduleService exports and fetches daily schedules.
type ScheduleService interface {
	Export(ctx context.Context, date string) (string, error)
	Fetch(ctx context.Context, date string) (io.ReadCloser, error)
}

type Schedules struct {
	schedules ScheduleService
	logger    *logger.Logger
}

func NewSchedules(schedules ScheduleService, logger *logger.Logger) *Schedules {
	return &Schedules{schedules: schedules, logger: logger}
}

// Export handles POST /admin/schedules/:date.
func (h *Schedules) Export(c *gin.Context) {
	date := c.Param("date")
	key, err := h.schedules.Export(c.Request.Context(), date)
	if err != nil {
		fail(c, h.logger, "export schedule", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"date": date, "key": key})
}

// Fetch handles GET /admin/schedules/:date and streams the stored document.
func (h *Schedules) Fetch(c *gin.Context) {
	rc, err := h.schedules.Fetch(c.Request.Context(), c.Param("date"))
	if err != nil {
		fail(c, h.logger, "fetch schedule", err)
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, "application/json", rc, nil)
}
