package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/middleware"
	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
)

type SubscriptionHandler struct {
	dbClient *postgres.DatabaseClient
}

func NewSubscriptionHandler(dbClient *postgres.DatabaseClient) *SubscriptionHandler {
	return &SubscriptionHandler{dbClient: dbClient}
}

// GetSubscription reports the caller's tier and remaining free
// generations. An account row that hasn't been synced yet reads as a
// fresh free account.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	user, err := h.dbClient.GetUser(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusOK, models.SubscriptionResponse{
				Tier:                 models.TierFree,
				GenerationsRemaining: models.FreeMonthlyLimit,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fetch subscription",
			Message: err.Error(),
		})
		return
	}

	remaining := -1 // pro: unlimited
	if user.SubscriptionTier == models.TierFree {
		remaining = models.FreeMonthlyLimit - user.GenerationsThisMonth
		if remaining < 0 {
			remaining = 0
		}
	}

	c.JSON(http.StatusOK, models.SubscriptionResponse{
		Tier:                 user.SubscriptionTier,
		GenerationsThisMonth: user.GenerationsThisMonth,
		GenerationsRemaining: remaining,
	})
}
