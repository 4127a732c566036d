package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
	"selfio-backend/internal/storage"
)

type PhotosHandler struct {
	dbClient      *postgres.DatabaseClient
	storageClient *storage.Client
}

func NewPhotosHandler(dbClient *postgres.DatabaseClient, storageClient *storage.Client) *PhotosHandler {
	return &PhotosHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

func toPhotoResponse(photo *models.GeneratedPhoto) models.PhotoResponse {
	insights := photo.Insights
	if insights == nil {
		insights = []string{}
	}
	return models.PhotoResponse{
		ID:            photo.ID.String(),
		ImageURL:      photo.ImageURL,
		Title:         photo.Title,
		Category:      photo.Category,
		EnergyLevel:   photo.EnergyLevel,
		RealismLevel:  photo.RealismLevel,
		Stats:         photo.Stats,
		Insights:      insights,
		IsFavorite:    photo.IsFavorite,
		IsWatermarked: photo.IsWatermarked,
		CreatedAt:     photo.CreatedAt,
	}
}

func (h *PhotosHandler) ListPhotos(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	photos, err := h.dbClient.ListGeneratedPhotos(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list photos",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = toPhotoResponse(&photos[i])
	}

	c.JSON(http.StatusOK, models.PhotoListResponse{Photos: responses})
}

func (h *PhotosHandler) GetPhoto(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.dbClient.GetGeneratedPhoto(photoID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get photo",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h *PhotosHandler) DeletePhoto(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	photoID, err := uuid.Parse(c.Param("photo_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid photo id"})
		return
	}

	photo, err := h.dbClient.GetGeneratedPhoto(photoID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found"})
		return
	}

	// Best-effort storage cleanup before the row goes away.
	if key, ok := h.storageClient.KeyFromPublicURL(photo.ImageURL); ok {
		_ = h.storageClient.DeleteFile(key)
	}

	if err := h.dbClient.DeleteGeneratedPhoto(photoID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete photo",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "photo deleted successfully"})
}
