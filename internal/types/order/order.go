package order

type CreateRequest struct {
	Plan  string `json:"plan"`
	Email string `json:"email,omitempty"`
}

// Result is what the checkout page needs to open the Razorpay widget.
type Result struct {
	Success         bool   `json:"success"`
	OrderID         string `json:"orderId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	RazorpayKeyID   string `json:"razorpayKeyId"`
	SiteName        string `json:"siteName"`
	PlanDescription string `json:"planDescription"`
	SiteImage       string `json:"siteImage"`
	CustomerEmail   string `json:"customerEmail"`
}
