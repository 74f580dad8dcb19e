package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainDevice "github.com/ecoduino/greenhouse-backend/internal/domain/device"
	domainOwnership "github.com/ecoduino/greenhouse-backend/internal/domain/ownership"
	domainTelemetry "github.com/ecoduino/greenhouse-backend/internal/domain/telemetry"
	"github.com/ecoduino/greenhouse-backend/internal/middleware"
	"github.com/ecoduino/greenhouse-backend/internal/usecase/telemetry"
	"github.com/ecoduino/greenhouse-backend/pkg/utils"
)

// TelemetryHandler serves the device-facing ingest endpoint and the
// user-facing reading queries.
type TelemetryHandler struct {
	service *telemetry.Service
}

func NewTelemetryHandler(service *telemetry.Service) *TelemetryHandler {
	return &TelemetryHandler{service: service}
}

// RegisterDeviceRoutes registers endpoints authenticated by device token.
func (h *TelemetryHandler) RegisterDeviceRoutes(router *gin.RouterGroup) {
	router.POST("/telemetry", h.IngestTelemetry)
}

// RegisterUserRoutes registers endpoints authenticated by user JWT.
func (h *TelemetryHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	devices := router.Group("/devices")
	{
		devices.GET("/:id/readings/latest", h.GetLatestReading)
		devices.GET("/:id/readings", h.GetReadingHistory)
	}
}

func (h *TelemetryHandler) IngestTelemetry(c *gin.Context) {
	var req telemetry.IngestTelemetryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Ingest(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domainDevice.ErrDeviceNotAuthorized):
			utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		case isValidationError(err):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to store telemetry")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Telemetry stored successfully", resp)
}

func (h *TelemetryHandler) GetLatestReading(c *gin.Context) {
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

	resp, err := h.service.Latest(c.Request.Context(), userID, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, domainOwnership.ErrNotOwner):
			utils.ErrorResponse(c, http.StatusForbidden, err.Error())
		case errors.Is(err, domainTelemetry.ErrNoReadingsYet):
			utils.ErrorResponse(c, http.StatusNotFound, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to get latest reading")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Latest reading retrieved successfully", resp)
}

func (h *TelemetryHandler) GetReadingHistory(c *gin.Context) {
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

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
	}

	resp, err := h.service.History(c.Request.Context(), userID, deviceID, limit)
	if err != nil {
		switch {
		case errors.Is(err, domainOwnership.ErrNotOwner):
			utils.ErrorResponse(c, http.StatusForbidden, err.Error())
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to get reading history")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reading history retrieved successfully", resp)
}

func parseDeviceID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
