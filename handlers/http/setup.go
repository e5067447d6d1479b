package httpHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shubhankarvyas/medipulse-ai-insight/usecases"
)

type SetupHandler struct {
	registry *usecases.RegistryUseCase
}

func NewSetupHandler(registry *usecases.RegistryUseCase) *SetupHandler {
	return &SetupHandler{registry: registry}
}

type SetupDeviceRequest struct {
	PatientEmail string `json:"patient_email" binding:"required"`
	DeviceName   string `json:"device_name" binding:"required"`
}

// SetupDevice handles POST /setup-ecg-device. Registration failures are
// application-level: the agent inspects the success flag, not the status
// code, so resolution errors still answer 200.
func (h *SetupHandler) SetupDevice(c *gin.Context) {
	var req SetupDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	reg, err := h.registry.RegisterDevice(req.PatientEmail, req.DeviceName)
	if err != nil {
		if errors.Is(err, usecases.ErrAccountNotFound) || errors.Is(err, usecases.ErrNotAPatient) {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "Device setup failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"patient_id": reg.PatientID,
		"device_id":  reg.DeviceID,
	})
}
