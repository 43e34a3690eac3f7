package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pyrolysis_sim/internal/models"
)

// @Summary      Active alarms
// @Description  Most severe first
// @Tags         alarms
// @Produce      json
// @Success      200  {array}   models.ActiveAlarm
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/alarms [get]
// @Security     BearerAuth
func (h *Handler) getAlarms(c *gin.Context) {
	alarms := h.services.Alarms.ActiveAlarms()
	if alarms == nil {
		alarms = []models.ActiveAlarm{}
	}
	c.JSON(http.StatusOK, alarms)
}

// @Summary      Alarm thresholds
// @Tags         alarms
// @Produce      json
// @Success      200  {object}  map[string]models.AlarmConfig
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/alarms/config [get]
// @Security     BearerAuth
func (h *Handler) getAlarmConfigs(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Alarms.AlarmConfigs())
}

// @Summary      Replace the thresholds of one signal
// @Description  A zero threshold disables its tier
// @Tags         alarms
// @Accept       json
// @Produce      json
// @Param        signal  path      string              true  "Signal"  Enums(reactor_temp,wall_temp,pressure,gas_line_pressure,condenser_temp,gas_co,bio_oil_tank,char_bin)
// @Param        body    body      models.AlarmConfig  true  "Thresholds"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/v1/alarms/config/{signal} [put]
// @Security     BearerAuth
func (h *Handler) setAlarmConfig(c *gin.Context) {
	var cfg models.AlarmConfig
	if ok := h.bindJSONOrBadRequest(c, &cfg); !ok {
		return
	}
	signal := c.Param("signal")
	if err := h.services.Alarms.SetAlarmConfig(signal, cfg); err != nil {
		h.commandError(c, "alarm_config_failed", err, "signal", signal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signal": signal, "config": cfg})
}

// @Summary      Security level and events
// @Tags         security
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "level, events"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/security [get]
// @Security     BearerAuth
func (h *Handler) getSecurity(c *gin.Context) {
	events := h.services.Security.SecurityEvents()
	if events == nil {
		events = []models.SecurityEvent{}
	}
	c.JSON(http.StatusOK, gin.H{
		"level":  h.services.Security.SecurityLevel(),
		"events": events,
	})
}

// @Summary      Reset security level
// @Tags         security
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/security/reset [post]
// @Security     BearerAuth
func (h *Handler) resetSecurityLevel(c *gin.Context) {
	changed := h.services.Security.ResetSecurityLevel()
	if changed {
		h.log.Infow("security_level_reset", "operator", operatorID(c))
	}
	c.JSON(http.StatusOK, gin.H{"reset": changed, "level": h.services.Security.SecurityLevel()})
}
