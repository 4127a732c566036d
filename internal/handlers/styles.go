package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
)

type StylesHandler struct {
	dbClient *postgres.DatabaseClient
}

func NewStylesHandler(dbClient *postgres.DatabaseClient) *StylesHandler {
	return &StylesHandler{dbClient: dbClient}
}

// ListStyles returns the active style catalog. Public: the style picker
// renders before sign-in.
func (h *StylesHandler) ListStyles(c *gin.Context) {
	styles, err := h.dbClient.ListActiveStyles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch styles",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.StyleResponse, len(styles))
	for i, style := range styles {
		responses[i] = models.StyleResponse{
			ID:            style.ID.String(),
			Name:          style.Name,
			Description:   style.Description.String,
			CoverImageURL: style.CoverImageURL,
			Category:      style.Category,
			IsPremium:     style.IsPremium,
		}
	}

	c.JSON(http.StatusOK, models.StyleListResponse{Styles: responses})
}
