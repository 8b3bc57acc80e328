package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripeEvent(t *testing.T, eventType string, metadata map[string]string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"id":          "evt_test",
		"object":      "event",
		"type":        eventType,
		"api_version": "2023-10-16",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":       "cs_test_123",
				"object":   "checkout.session",
				"metadata": metadata,
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func signStripe(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func (s *testServer) webhook(t *testing.T, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestStripeWebhookSignature(t *testing.T) {
	s := newTestServer(t)
	payload := stripeEvent(t, "checkout.session.completed", map[string]string{
		"type": "entry_fee", "amount": "100", "user_id": s.user.ID.String(),
	})

	requireStatus(t, s.webhook(t, payload, ""), http.StatusBadRequest)
	requireStatus(t, s.webhook(t, payload, signStripe(payload, "whsec_wrong", time.Now())), http.StatusBadRequest)
	requireStatus(t, s.webhook(t, payload, signStripe(payload, testWebhookSecret, time.Now().Add(-time.Hour))), http.StatusBadRequest)

	var count int64
	s.db.Model(&models.RevenueTransaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestStripeWebhookIgnoresOtherEvents(t *testing.T) {
	s := newTestServer(t)
	payload := stripeEvent(t, "payment_intent.created", nil)

	w := s.webhook(t, payload, signStripe(payload, testWebhookSecret, time.Now()))
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, true, decode(t, w)["received"])
}

func TestStripeWebhookEntryFee(t *testing.T) {
	s := newTestServer(t)
	draw := testutil.CreateDraw(t, s.db, 0)
	payload := stripeEvent(t, "checkout.session.completed", map[string]string{
		"type": "entry_fee", "amount": "100", "user_id": s.user.ID.String(),
	})

	w := s.webhook(t, payload, signStripe(payload, testWebhookSecret, time.Now()))
	requireStatus(t, w, http.StatusOK)

	var txn models.RevenueTransaction
	require.NoError(t, s.db.First(&txn, "stripe_session_id = ?", "cs_test_123").Error)
	assert.True(t, txn.PlatformCut.Equal(decimal.NewFromInt(40)))
	assert.True(t, txn.PrizePoolContribution.Equal(decimal.NewFromInt(60)))

	var stored models.JackpotDraw
	require.NoError(t, s.db.First(&stored, "id = ?", draw.ID).Error)
	assert.True(t, stored.PrizeAmount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 1, stored.TotalEntries)
}

func TestStripeWebhookSubmissionPin(t *testing.T) {
	s := newTestServer(t)
	contest := testutil.CreateContest(t, s.db, s.admin.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, s.db, contest.ID, s.user.ID, 0)
	payload := stripeEvent(t, "checkout.session.completed", map[string]string{
		"type": "submission_pin", "amount": "300", "user_id": s.user.ID.String(), "submission_id": submission.ID.String(),
	})

	requireStatus(t, s.webhook(t, payload, signStripe(payload, testWebhookSecret, time.Now())), http.StatusOK)

	var txn models.RevenueTransaction
	require.NoError(t, s.db.First(&txn, "stripe_session_id = ?", "cs_test_123").Error)
	assert.True(t, txn.PlatformCut.Equal(decimal.NewFromInt(60)))
	assert.True(t, txn.PrizePoolContribution.Equal(decimal.NewFromInt(240)))

	var pins int64
	s.db.Model(&models.SubmissionPin{}).Where("submission_id = ?", submission.ID).Count(&pins)
	assert.Equal(t, int64(1), pins)
}

func TestStripeWebhookRejectsBadMetadata(t *testing.T) {
	s := newTestServer(t)
	for _, meta := range []map[string]string{
		{"type": "donation", "amount": "5", "user_id": s.user.ID.String()},
		{"type": "entry_fee", "amount": "lots", "user_id": s.user.ID.String()},
	} {
		payload := stripeEvent(t, "checkout.session.completed", meta)
		requireStatus(t, s.webhook(t, payload, signStripe(payload, testWebhookSecret, time.Now())), http.StatusBadRequest)
	}
}

func TestStripeWebhookRejectsWithoutSecret(t *testing.T) {
	s := newTestServerWith(t, nil, "")
	payload := stripeEvent(t, "checkout.session.completed", map[string]string{
		"type": "profile_boost", "amount": "10", "user_id": s.user.ID.String(),
	})

	w := s.webhook(t, payload, signStripe(payload, "", time.Now()))
	requireStatus(t, w, http.StatusInternalServerError)
	assert.Equal(t, "Webhook not configured", decode(t, w)["error"])

	var boosts, txns int64
	s.db.Model(&models.ProfileBoost{}).Count(&boosts)
	s.db.Model(&models.RevenueTransaction{}).Count(&txns)
	assert.Zero(t, boosts)
	assert.Zero(t, txns)
}
