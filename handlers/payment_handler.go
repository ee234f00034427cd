package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AjinkyaSambare/razorpay-integration/internal/types/order"
	"github.com/AjinkyaSambare/razorpay-integration/internal/types/payment"
	"github.com/AjinkyaSambare/razorpay-integration/internal/types/plan"
	"github.com/AjinkyaSambare/razorpay-integration/middleware"
	"github.com/AjinkyaSambare/razorpay-integration/services"
)

var validate = validator.New()

type PaymentHandler struct {
	orderService      *services.OrderService
	membershipService *services.MembershipService
	successURL        string
}

func NewPaymentHandler(orderService *services.OrderService, membershipService *services.MembershipService, successURL string) *PaymentHandler {
	return &PaymentHandler{
		orderService:      orderService,
		membershipService: membershipService,
		successURL:        successURL,
	}
}

// CreateOrder handles POST /api/razorpay/create-order.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var req order.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	result, err := h.orderService.CreateOrder(ctx, req.Plan, req.Email)
	if err != nil {
		// Full error stays server-side; the caller gets a generic failure.
		log.Printf("Order creation failed: %v", err)
		respondWithJSON(w, http.StatusInternalServerError, errorResponse("Failed to create order"))
		return
	}

	middleware.RecordOrderCreated(plan.Resolve(req.Plan).ID)
	respondWithJSON(w, http.StatusOK, result)
}

// VerifyPayment handles POST /api/razorpay/verify-payment. A verified payment
// is never reported as a failure because of a membership bookkeeping problem:
// sync errors are logged and the caller still gets success with the redirect
// target.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	verified := false
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Panic while verifying payment: %v", rec)
			if verified {
				respondWithJSON(w, http.StatusInternalServerError, errorResponse("Payment verified but failed to process membership"))
			} else {
				respondWithJSON(w, http.StatusInternalServerError, errorResponse("Failed to verify payment"))
			}
		}
	}()

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var conf payment.Confirmation
	if err := json.NewDecoder(r.Body).Decode(&conf); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse("Missing payment information"))
		return
	}

	if err := validate.Struct(&conf); err != nil {
		middleware.RecordVerification("missing_fields")
		respondWithJSON(w, http.StatusBadRequest, errorResponse("Missing payment information"))
		return
	}

	if !h.membershipService.VerifySignature(conf.RazorpayOrderID, conf.RazorpayPaymentID, conf.RazorpaySignature) {
		// Log only the payment id, never the signatures themselves.
		log.Printf("Signature mismatch for payment %s", conf.RazorpayPaymentID)
		middleware.RecordVerification("invalid_signature")
		respondWithJSON(w, http.StatusBadRequest, errorResponse("Invalid signature"))
		return
	}
	verified = true

	resp := payment.VerifyResponse{
		Success:    true,
		SuccessURL: h.successURL,
	}

	if conf.Email == "" {
		log.Printf("Payment %s verified without an email, skipping membership sync", conf.RazorpayPaymentID)
		middleware.RecordVerification("no_email")
		respondWithJSON(w, http.StatusOK, resp)
		return
	}

	memberID, err := h.membershipService.SyncMembership(ctx, conf.Email, conf.Name, conf.RazorpayPaymentID)
	if err != nil {
		// The card was charged and the signature checked out; a platform
		// failure must not surface as a payment error.
		log.Printf("Membership sync failed for payment %s: %v", conf.RazorpayPaymentID, err)
		middleware.RecordVerification("sync_failed")
		respondWithJSON(w, http.StatusOK, resp)
		return
	}

	middleware.RecordVerification("synced")
	resp.MemberID = memberID
	respondWithJSON(w, http.StatusOK, resp)
}

func errorResponse(message string) map[string]interface{} {
	return map[string]interface{}{
		"success": false,
		"error":   message,
	}
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
