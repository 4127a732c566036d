package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/services"
)

// GenerationRunner runs one generation pipeline request.
type GenerationRunner interface {
	Generate(userID string, params services.GenerateParams) (*models.GeneratedPhoto, error)
}

type GenerateHandler struct {
	service GenerationRunner
}

func NewGenerateHandler(service GenerationRunner) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate handles POST /generate. Quota and premium-style rejections
// carry upgrade=true so the client shows the Pro offer; everything that
// fails after the gates is a generic retryable failure.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	faceProfileID, err := uuid.Parse(req.FaceProfileID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid face profile id"})
		return
	}

	styleID, err := uuid.Parse(req.StyleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid style id"})
		return
	}

	photo, err := h.service.Generate(userID, services.GenerateParams{
		FaceProfileID: faceProfileID,
		StyleID:       styleID,
		EnergyLevel:   req.EnergyLevel,
		RealismLevel:  req.RealismLevel,
		Options:       req.Options,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuotaExceeded):
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "Generation limit reached",
				Upgrade: true,
			})
		case errors.Is(err, services.ErrPremiumRequired):
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "Premium style requires Pro subscription",
				Upgrade: true,
			})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not found",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success: true,
		Photo:   toPhotoResponse(photo),
	})
}
