package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	"github.com/ecoduino/greenhouse-backend/internal/middleware"
	"github.com/ecoduino/greenhouse-backend/internal/usecase/device"
	"github.com/ecoduino/greenhouse-backend/internal/usecase/provisioning"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

// DeviceHandler serves the user-facing provisioning and listing endpoints.
type DeviceHandler struct {
	provisioningService *provisioning.Service
	deviceService       *device.Service
}

func NewDeviceHandler(provisioningService *provisioning.Service, deviceService *device.Service) *DeviceHandler {
	return &DeviceHandler{
		provisioningService: provisioningService,
		deviceService:       deviceService,
	}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.POST("", h.ProvisionDevice)
		devices.GET("", h.ListDevices)
	}
}

func (h *DeviceHandler) ProvisionDevice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req provisioning.ProvisionDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.provisioningService.Provision(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, provisioning.ErrIncompleteRequest):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domainDevice.ErrTokenAlreadyRegistered):
			utils.ErrorResponse(c, http.StatusConflict, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to provision device")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Device provisioned successfully", resp)
}

func (h *DeviceHandler) ListDevices(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp, err := h.deviceService.ListDevices(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list devices")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", resp)
}
