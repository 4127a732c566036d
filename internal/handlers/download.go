package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/models"
	"selfio-backend/internal/storage"
)

type DownloadHandler struct {
	storageClient *storage.Client
	httpClient    *http.Client
}

func NewDownloadHandler(storageClient *storage.Client) *DownloadHandler {
	return &DownloadHandler{
		storageClient: storageClient,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Download proxies a first-party storage URL back with attachment
// headers, so mobile clients can save images without CORS trouble. URLs
// outside our bucket are rejected.
func (h *DownloadHandler) Download(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing url parameter"})
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		filename = "photo.jpg"
	}
	// Header injection guard.
	filename = strings.ReplaceAll(filename, `"`, "")

	if !strings.HasPrefix(imageURL, h.storageClient.PublicBaseURL()) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid url"})
		return
	}

	resp, err := h.httpClient.Get(imageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "download failed",
			Message: err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to fetch image"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, resp.Body)
}
