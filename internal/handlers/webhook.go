package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/config"
	"selfio-backend/internal/models"
	"selfio-backend/internal/postgres"
)

type WebhookHandler struct {
	config   *config.Config
	dbClient *postgres.DatabaseClient
}

func NewWebhookHandler(cfg *config.Config, dbClient *postgres.DatabaseClient) *WebhookHandler {
	return &WebhookHandler{
		config:   cfg,
		dbClient: dbClient,
	}
}

// BillingEvent is the payment provider's webhook payload. Period bounds
// are unix seconds.
type BillingEvent struct {
	Type string `json:"type"`
	Data struct {
		UserID            string `json:"user_id,omitempty"`
		CustomerID        string `json:"customer_id,omitempty"`
		SubscriptionID    string `json:"subscription_id"`
		PriceID           string `json:"price_id,omitempty"`
		Status            string `json:"status,omitempty"`
		PeriodStart       int64  `json:"period_start,omitempty"`
		PeriodEnd         int64  `json:"period_end,omitempty"`
		CancelAtPeriodEnd bool   `json:"cancel_at_period_end,omitempty"`
	} `json:"data"`
}

// HandleBillingWebhook applies payment-provider subscription events to
// the account. This is the only writer of subscription_tier besides the
// seed default.
func (h *WebhookHandler) HandleBillingWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	if !h.verifySignature(body, c.GetHeader("X-Billing-Signature")) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid webhook signature"})
		return
	}

	var event BillingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		if event.Data.UserID == "" || event.Data.SubscriptionID == "" {
			break
		}
		if err := h.dbClient.SetSubscriptionTier(event.Data.UserID, models.TierPro); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
			return
		}
		if event.Data.CustomerID != "" {
			_ = h.dbClient.SetStripeCustomer(event.Data.UserID, event.Data.CustomerID)
		}
		err = h.dbClient.UpsertSubscription(
			event.Data.UserID,
			event.Data.SubscriptionID,
			event.Data.PriceID,
			models.SubscriptionActive,
			time.Unix(event.Data.PeriodStart, 0),
			time.Unix(event.Data.PeriodEnd, 0),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
			return
		}

	case "customer.subscription.updated":
		err = h.dbClient.UpdateSubscriptionPeriod(
			event.Data.SubscriptionID,
			event.Data.Status,
			time.Unix(event.Data.PeriodStart, 0),
			time.Unix(event.Data.PeriodEnd, 0),
			event.Data.CancelAtPeriodEnd,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
			return
		}

	case "customer.subscription.deleted":
		if err := h.dbClient.UpdateSubscriptionStatus(event.Data.SubscriptionID, models.SubscriptionCanceled); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
			return
		}
		// Downgrade the owning account.
		if sub, err := h.dbClient.GetSubscriptionByStripeID(event.Data.SubscriptionID); err == nil {
			if err := h.dbClient.SetSubscriptionTier(sub.UserID, models.TierFree); err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
				return
			}
		}

	case "invoice.payment_failed":
		if event.Data.SubscriptionID != "" {
			if err := h.dbClient.UpdateSubscriptionStatus(event.Data.SubscriptionID, models.SubscriptionPastDue); err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "webhook handler failed", Message: err.Error()})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if h.config.BillingWebhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.config.BillingWebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
