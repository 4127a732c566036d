package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
)

type UsersHandler struct {
	dbClient *postgres.DatabaseClient
}

func NewUsersHandler(dbClient *postgres.DatabaseClient) *UsersHandler {
	return &UsersHandler{dbClient: dbClient}
}

// SyncUser upserts the account row from the identity provider's token
// claims. Clients call this after sign-in so the account exists before
// the first generation.
func (h *UsersHandler) SyncUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	email := middleware.UserEmail(c)
	firstName, lastName := splitName(middleware.UserName(c))

	user, err := h.dbClient.UpsertUser(userID, email, firstName, lastName, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "sync failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user synced successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"tier":  user.SubscriptionTier,
		},
	})
}

func splitName(fullName string) (string, string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	parts := strings.SplitN(fullName, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
