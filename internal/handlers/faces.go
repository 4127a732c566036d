package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
	"selfio-backend/internal/storage"
)

const maxFaceUploadSize = 10 << 20 // 10 MB

type FacesHandler struct {
	dbClient      *postgres.DatabaseClient
	storageClient *storage.Client
}

func NewFacesHandler(dbClient *postgres.DatabaseClient, storageClient *storage.Client) *FacesHandler {
	return &FacesHandler{
		dbClient:      dbClient,
		storageClient: storageClient,
	}
}

// UploadFace stores a selfie and saves it as a reusable face profile.
func (h *FacesHandler) UploadFace(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no file provided"})
		return
	}
	if fileHeader.Size > maxFaceUploadSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = "My Face"
	}
	isDefault := c.PostForm("isDefault") == "true"

	contentType := fileHeader.Header.Get("Content-Type")
	key := fmt.Sprintf("faces/%s/%d-%s", userID, time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	imageURL, err := h.storageClient.UploadFile(key, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "upload failed",
			Message: err.Error(),
		})
		return
	}

	profile, err := h.dbClient.CreateFaceProfile(userID, name, imageURL, isDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create face profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": toFaceProfileResponse(profile),
	})
}

func toFaceProfileResponse(profile *models.FaceProfile) models.FaceProfileResponse {
	return models.FaceProfileResponse{
		ID:        profile.ID.String(),
		Name:      profile.Name,
		ImageURL:  profile.ImageURL,
		IsDefault: profile.IsDefault,
		CreatedAt: profile.CreatedAt,
	}
}

func (h *FacesHandler) ListFaces(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	profiles, err := h.dbClient.ListFaceProfiles(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list face profiles",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.FaceProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = toFaceProfileResponse(&profiles[i])
	}

	c.JSON(http.StatusOK, models.FaceProfileListResponse{Profiles: responses})
}

func (h *FacesHandler) DeleteFace(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	faceID, err := uuid.Parse(c.Param("face_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid face profile id"})
		return
	}

	profile, err := h.dbClient.GetFaceProfile(faceID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "face profile not found"})
		return
	}

	if key, ok := h.storageClient.KeyFromPublicURL(profile.ImageURL); ok {
		_ = h.storageClient.DeleteFile(key)
	}

	if err := h.dbClient.DeleteFaceProfile(faceID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete face profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "face profile deleted successfully"})
}
