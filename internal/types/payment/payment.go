package payment

// Confirmation is what the client posts back after the Razorpay checkout
// completes. All three identifiers are required before any verification work
// happens; email and name are optional extras for the membership record.
type Confirmation struct {
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
}

type VerifyResponse struct {
	Success    bool   `json:"success"`
	MemberID   string `json:"memberId,omitempty"`
	SuccessURL string `json:"successUrl"`
}
