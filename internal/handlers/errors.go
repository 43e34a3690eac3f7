package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pyrolysis_sim/internal/genai"
	"pyrolysis_sim/internal/service"
	"pyrolysis_sim/internal/simulation"
)

// commandErrors are rejected operator commands; they map to 400.
var commandErrors = []error{
	simulation.ErrInvalidTransition,
	simulation.ErrInvalidSetpoint,
	simulation.ErrUnknownPreset,
	simulation.ErrUnknownFault,
	simulation.ErrUnknownUnit,
	simulation.ErrUnknownPlant,
	simulation.ErrUnknownSignal,
	service.ErrNoSetpoints,
}

func isCommandError(err error) bool {
	for _, target := range commandErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// genaiStatus maps a classified content service failure to our response code.
func genaiStatus(k genai.Kind) int {
	switch k {
	case genai.KindBadRequest:
		return http.StatusBadRequest
	case genai.KindRateLimited:
		return http.StatusTooManyRequests
	case genai.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// commandError answers a failed command: 400 with the error text for a
// rejected command, 500 otherwise.
func (h *Handler) commandError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if isCommandError(err) {
		h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errCommandFailed, logKey, err, kv...)
}

func (h *Handler) mediaError(c *gin.Context, logKey string, err error) {
	if errors.Is(err, service.ErrMediaUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	var gerr *genai.Error
	if errors.As(err, &gerr) {
		h.log.Warnw(logKey, "kind", gerr.Kind.String(), "status", gerr.Status, "err", err)
		c.JSON(genaiStatus(gerr.Kind), gin.H{"error": gerr.UserMessage(), "kind": gerr.Kind.String()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, "content generation failed", logKey, err)
}
