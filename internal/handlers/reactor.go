package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pyrolysis_sim/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK            = "ok"
	statusStarted       = "start_requested"
	statusStopped       = "stop_requested"
	statusEmergencyStop = "emergency_stopped"
	statusSetpointsSet  = "setpoints_updated"
	statusPresetApplied = "preset_applied"
	statusFaultSet      = "fault_updated"
	statusDiagStarted   = "diagnostics_started"
	statusDiagPending   = "diagnostics_pending"

	errCommandFailed   = "command failed"
	errInvalidBodyPref = "invalid body: "
)

// Respond with a status and include current state.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	resp["state"] = h.services.Monitoring.GetState()
	c.JSON(http.StatusOK, resp)
}

// SetpointsRequest is the partial setpoint update payload. Omitted fields are unchanged.
type SetpointsRequest struct {
	// Target reactor temperature, above 25 and up to 900 °C
	TargetTempC *float64 `json:"target_temp_c,omitempty" example:"520"`
	// Vapour residence time, up to 7200 s
	ResidenceTimeS *float64 `json:"residence_time_s,omitempty" example:"2"`
	// Oxygen concentration, 0..21 %
	OxygenPct *float64 `json:"oxygen_pct,omitempty" example:"0.5"`
	// Feed rate, 0..500 kg/h
	FeedRateKgH *float64 `json:"feed_rate_kg_h,omitempty" example:"120"`
	// Allowed: BIOCHAR, BIO_OIL, SYNGAS
	Mode *string `json:"mode,omitempty" example:"BIO_OIL"`
}

type presetRequest struct {
	Name string `json:"name" binding:"required" example:"bio-oil"`
}

type faultRequest struct {
	Active *bool `json:"active" binding:"required"`
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

// @Summary      Get plant state
// @Description  Primary reactor snapshot, fleet, supply plants, alarms and security in one document
// @Tags         reactor
// @Produce      json
// @Success      200  {object}  models.PlantState
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reactor/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetState())
}

// @Summary      Start primary reactor
// @Description  Accepted only while OFF; the transition to HEATING happens on the next tick
// @Tags         reactor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reactor/start [post]
// @Security     BearerAuth
func (h *Handler) startReactor(c *gin.Context) {
	if err := h.services.Reactor.Start(); err != nil {
		h.commandError(c, "reactor_start_failed", err, "operator", operatorID(c))
		return
	}
	h.log.Infow("reactor_start_requested", "operator", operatorID(c))
	h.respondWithStatusAndState(c, statusStarted, gin.H{})
}

// @Summary      Stop primary reactor
// @Description  Accepted only while STABLE; the reactor cools down from the next tick
// @Tags         reactor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reactor/stop [post]
// @Security     BearerAuth
func (h *Handler) stopReactor(c *gin.Context) {
	if err := h.services.Reactor.Stop(); err != nil {
		h.commandError(c, "reactor_stop_failed", err, "operator", operatorID(c))
		return
	}
	h.log.Infow("reactor_stop_requested", "operator", operatorID(c))
	h.respondWithStatusAndState(c, statusStopped, gin.H{})
}

// @Summary      Emergency stop
// @Description  Immediate shutdown from any status
// @Tags         reactor
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reactor/estop [post]
// @Security     BearerAuth
func (h *Handler) emergencyStop(c *gin.Context) {
	h.services.Reactor.EmergencyStop()
	h.log.Warnw("reactor_emergency_stop", "operator", operatorID(c))
	h.respondWithStatusAndState(c, statusEmergencyStop, gin.H{})
}

// @Summary      Update setpoints
// @Tags         reactor
// @Accept       json
// @Produce      json
// @Param        body  body      SetpointsRequest  true  "Setpoints"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/reactor/setpoints [put]
// @Security     BearerAuth
func (h *Handler) updateSetpoints(c *gin.Context) {
	var req SetpointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Reactor.UpdateSetpoints(service.SetpointParams{
		TargetTempC:    req.TargetTempC,
		ResidenceTimeS: req.ResidenceTimeS,
		OxygenPct:      req.OxygenPct,
		FeedRateKgH:    req.FeedRateKgH,
		Mode:           req.Mode,
	})
	if err != nil {
		h.commandError(c, "reactor_setpoints_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSetpointsSet, gin.H{})
}

// @Summary      Apply preset
// @Description  Overwrites all primary setpoints with a named preset
// @Tags         reactor
// @Accept       json
// @Produce      json
// @Param        body  body      presetRequest  true  "Preset name"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/reactor/preset [post]
// @Security     BearerAuth
func (h *Handler) applyPreset(c *gin.Context) {
	var req presetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Reactor.ApplyPreset(req.Name); err != nil {
		h.commandError(c, "reactor_preset_failed", err, "preset", req.Name)
		return
	}
	h.respondWithStatusAndState(c, statusPresetApplied, gin.H{"preset": req.Name})
}

// @Summary      List presets
// @Tags         reactor
// @Produce      json
// @Success      200  {array}   simulation.Preset
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/presets [get]
// @Security     BearerAuth
func (h *Handler) listPresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.Presets())
}

// @Summary      Inject or clear a fault
// @Tags         reactor
// @Accept       json
// @Produce      json
// @Param        name  path      string        true  "Fault"  Enums(condenser_blockage,gas_line_blockage,sensor_failure,feed_contamination)
// @Param        body  body      faultRequest  true  "Fault state"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/reactor/faults/{name} [put]
// @Security     BearerAuth
func (h *Handler) setFault(c *gin.Context) {
	var req faultRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	name := c.Param("name")
	if err := h.services.Reactor.SetFault(name, *req.Active); err != nil {
		h.commandError(c, "reactor_fault_failed", err, "fault", name)
		return
	}
	h.respondWithStatusAndState(c, statusFaultSet, gin.H{"fault": name, "active": *req.Active})
}

// @Summary      Run diagnostics
// @Description  Starts a delayed diagnostic run; a second request while one is pending is ignored
// @Tags         reactor
// @Produce      json
// @Success      202  {object}  map[string]string
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/reactor/diagnostics [post]
// @Security     BearerAuth
func (h *Handler) runDiagnostics(c *gin.Context) {
	if !h.services.Reactor.RunDiagnostics() {
		c.JSON(http.StatusOK, gin.H{"status": statusDiagPending})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": statusDiagStarted})
}

// @Summary      Last diagnostic report
// @Tags         reactor
// @Produce      json
// @Success      200  {object}  models.DiagnosticReport
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/reactor/diagnostics [get]
// @Security     BearerAuth
func (h *Handler) getDiagnostics(c *gin.Context) {
	report := h.services.Monitoring.Diagnostics()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no diagnostic run has completed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
