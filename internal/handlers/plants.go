package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type runningRequest struct {
	Running *bool `json:"running" binding:"required"`
}

type impurityRequest struct {
	ImpurityPct *float64 `json:"impurity_pct" binding:"required" example:"5"`
}

type restockRequest struct {
	Kg float64 `json:"kg" binding:"required" example:"5000"`
}

// @Summary      Fleet overview
// @Description  Secondary units with cumulative economics
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "units, economics"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/fleet [get]
// @Security     BearerAuth
func (h *Handler) getFleet(c *gin.Context) {
	st := h.services.Monitoring.GetState()
	c.JSON(http.StatusOK, gin.H{"units": st.Units, "economics": st.Economics})
}

// @Summary      Apply preset to fleet
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        body  body      presetRequest  true  "Preset name"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/fleet/preset [post]
// @Security     BearerAuth
func (h *Handler) applyFleetPreset(c *gin.Context) {
	var req presetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Fleet.ApplyFleetPreset(req.Name); err != nil {
		h.commandError(c, "fleet_preset_failed", err, "preset", req.Name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusPresetApplied, "preset": req.Name})
}

// @Summary      Start all idle units
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/fleet/start-all [post]
// @Security     BearerAuth
func (h *Handler) startIdleUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"started": h.services.Fleet.StartIdleUnits()})
}

// @Summary      Stop all running units
// @Tags         fleet
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/fleet/stop-all [post]
// @Security     BearerAuth
func (h *Handler) stopRunningUnits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stopped": h.services.Fleet.StopRunningUnits()})
}

// @Summary      Start one unit
// @Tags         fleet
// @Produce      json
// @Param        id   path      string  true  "Unit id"  example(R-02)
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/fleet/units/{id}/start [post]
// @Security     BearerAuth
func (h *Handler) startUnit(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Fleet.StartUnit(id); err != nil {
		h.commandError(c, "unit_start_failed", err, "unit", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStarted, "unit": id})
}

// @Summary      Stop one unit
// @Tags         fleet
// @Produce      json
// @Param        id   path      string  true  "Unit id"  example(R-02)
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/fleet/units/{id}/stop [post]
// @Security     BearerAuth
func (h *Handler) stopUnit(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Fleet.StopUnit(id); err != nil {
		h.commandError(c, "unit_stop_failed", err, "unit", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusStopped, "unit": id})
}

// @Summary      Supply plants
// @Tags         supply
// @Produce      json
// @Success      200  {array}   models.SupplyPlant
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/supply [get]
// @Security     BearerAuth
func (h *Handler) getSupply(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.GetState().Plants)
}

// @Summary      Start or stop a supply plant
// @Tags         supply
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Plant id"  Enums(pellet,rubber)
// @Param        body  body      runningRequest  true  "Run state"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/supply/{id}/running [put]
// @Security     BearerAuth
func (h *Handler) setPlantRunning(c *gin.Context) {
	var req runningRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id := c.Param("id")
	if err := h.services.Supply.SetPlantRunning(id, *req.Running); err != nil {
		h.commandError(c, "plant_running_failed", err, "plant", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plant": id, "running": *req.Running})
}

// @Summary      Set raw material impurity
// @Tags         supply
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Plant id"  Enums(pellet,rubber)
// @Param        body  body      impurityRequest  true  "Impurity, 0..100 %"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/supply/{id}/impurity [put]
// @Security     BearerAuth
func (h *Handler) setPlantImpurity(c *gin.Context) {
	var req impurityRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id := c.Param("id")
	if err := h.services.Supply.SetPlantImpurity(id, *req.ImpurityPct); err != nil {
		h.commandError(c, "plant_impurity_failed", err, "plant", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plant": id, "impurity_pct": *req.ImpurityPct})
}

// @Summary      Restock raw material
// @Description  The accepted amount is clamped to the plant's raw capacity
// @Tags         supply
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Plant id"  Enums(pellet,rubber)
// @Param        body  body      restockRequest  true  "Amount in kg"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/supply/{id}/restock [post]
// @Security     BearerAuth
func (h *Handler) restockPlant(c *gin.Context) {
	var req restockRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id := c.Param("id")
	accepted, err := h.services.Supply.RestockPlant(id, req.Kg)
	if err != nil {
		h.commandError(c, "plant_restock_failed", err, "plant", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plant": id, "accepted_kg": accepted})
}
