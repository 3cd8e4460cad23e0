package handlers

import (
	"errors"
	"net/http"

	"fleetfuel/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errLoadFleet    = "failed to load fleet report"
	errLoadShortage = "failed to load shortage report"
	errLoadObject   = "failed to load object report"
	errUnknownID    = "object not found"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Fleet report
// @Description  Current state of every object in storage order, with derived amount-to-full values.
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, objects"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/fleet [get]
func (h *Handler) getFleet(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.services.Reports.Fleet(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadFleet, "fleet_report_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(rows),
		"objects": rows,
	})
}

// @Summary      Shortage report
// @Description  Objects missing fuel, ordered by ID, with the fleet-wide total.
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  service.ShortageReport
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/fleet/shortage [get]
func (h *Handler) getShortage(c *gin.Context) {
	ctx := c.Request.Context()
	rep, err := h.services.Reports.Shortage(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadShortage, "shortage_report_failed", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// @Summary      Single object report
// @Tags         fleet
// @Produce      json
// @Param        id   path      string  true  "Object ID"  example(US0001)
// @Success      200  {object}  service.ObjectReport
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/fleet/{id} [get]
func (h *Handler) getObject(c *gin.Context) {
	ctx := c.Request.Context()
	rep, err := h.services.Reports.Single(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUnknownID})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadObject, "object_report_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, rep)
}
