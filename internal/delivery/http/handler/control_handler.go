package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainControl "github.com/ecoduino/greenhouse-backend/internal/domain/control"
	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	"github.com/ecoduino/greenhouse-backend/internal/middleware"
	"github.com/ecoduino/greenhouse-backend/internal/usecase/control"
	appErrors "github.com/ecoduino/greenhouse-backend/pkg/errors"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

// ControlHandler serves the device-facing control poll and the user-facing
// actuator update.
type ControlHandler struct {
	service *control.Service
}

func NewControlHandler(service *control.Service) *ControlHandler {
	return &ControlHandler{service: service}
}

// RegisterDeviceRoutes registers endpoints authenticated by device token.
func (h *ControlHandler) RegisterDeviceRoutes(router *gin.RouterGroup) {
	router.POST("/control/fetch", h.FetchControlState)
}

// RegisterUserRoutes registers endpoints authenticated by user JWT.
func (h *ControlHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	router.PUT("/devices/:id/control", h.UpdateActuator)
}

func (h *ControlHandler) FetchControlState(c *gin.Context) {
	var req control.FetchControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Fetch(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domainDevice.ErrDeviceNotAuthorized):
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, domainControl.ErrControlStateUninitialized):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case isValidationError(err):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch control state")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Control state retrieved successfully", resp)
}

func (h *ControlHandler) UpdateActuator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	deviceID, err := parseDeviceID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	var req control.UpdateActuatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateActuator(c.Request.Context(), userID, deviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domainControl.ErrInvalidActuator):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domainOwnership.ErrNotOwner):
			utils.ErrorResponse(c, http.StatusForbidden, err.Error())
		case errors.Is(err, domainControl.ErrControlStateUninitialized):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		case isValidationError(err):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to update actuator")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Actuator updated successfully", resp)
}

// isValidationError reports whether err came out of utils.ValidateStruct.
func isValidationError(err error) bool {
	return errors.Is(err, appErrors.ErrInvalidInput)
}
