package handlers_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"selfio-backend/internal/config"
	"selfio-backend/internal/handlers"
)

const webhookSecret = "whsec-test"

func newWebhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{BillingWebhookSecret: webhookSecret}
	router := gin.New()
	router.POST("/webhooks/billing", handlers.NewWebhookHandler(cfg, nil).HandleBillingWebhook)
	return router
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/webhooks/billing", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Billing-Signature", signature)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBillingWebhook_MissingSignature(t *testing.T) {
	body := []byte(`{"type":"checkout.session.completed"}`)

	w := postWebhook(newWebhookRouter(), body, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingWebhook_BadSignature(t *testing.T) {
	body := []byte(`{"type":"checkout.session.completed"}`)

	w := postWebhook(newWebhookRouter(), body, signBody("wrong-secret", body))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingWebhook_TamperedBody(t *testing.T) {
	body := []byte(`{"type":"customer.subscription.deleted"}`)
	signature := signBody(webhookSecret, body)

	w := postWebhook(newWebhookRouter(), []byte(`{"type":"checkout.session.completed"}`), signature)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBillingWebhook_UnknownEventAcknowledged(t *testing.T) {
	body := []byte(`{"type":"invoice.created","data":{}}`)

	w := postWebhook(newWebhookRouter(), body, signBody(webhookSecret, body))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBillingWebhook_MalformedPayload(t *testing.T) {
	body := []byte(`not-json`)

	w := postWebhook(newWebhookRouter(), body, signBody(webhookSecret, body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
