package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"art-contest/internal/logger"
	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	stripeSignatureHeader   = "Stripe-Signature"
	checkoutSessionComplete = "checkout.session.completed"
	maxWebhookBody          = 64 << 10
)

// WebhookHandler receives payment provider callbacks
type WebhookHandler struct {
	revenueService *services.RevenueService
	webhookSecret  string
}

func NewWebhookHandler(revenueService *services.RevenueService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		revenueService: revenueService,
		webhookSecret:  webhookSecret,
	}
}

// Stripe verifies the signature, then records completed checkouts
// POST /api/webhooks/stripe
func (h *WebhookHandler) Stripe(c *gin.Context) {
	if h.webhookSecret == "" {
		logger.Error("stripe webhook received but STRIPE_WEBHOOK_SECRET is not set")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook not configured"})
		return
	}

	signature := c.GetHeader(stripeSignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, h.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		logger.Warnf("stripe webhook signature rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	if string(event.Type) != checkoutSessionComplete {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		logger.Warnf("stripe webhook %s: malformed checkout session: %v", event.ID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event"})
		return
	}

	if _, err := h.revenueService.ProcessCheckoutCompleted(c.Request.Context(), session.ID, session.Metadata); err != nil {
		logger.WithFields(logrus.Fields{
			"event_id":   event.ID,
			"session_id": session.ID,
		}).Warnf("stripe webhook rejected: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
