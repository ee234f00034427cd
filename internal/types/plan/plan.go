package plan

// Plan is a statically configured membership price point. Amounts are in
// minor currency units (paise for INR).
type Plan struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

const DefaultID = "monthly"

var plans = map[string]Plan{
	"monthly": {
		ID:          "monthly",
		Amount:      1000,
		Currency:    "INR",
		Description: "Monthly Membership",
	},
	"yearly": {
		ID:          "yearly",
		Amount:      9900,
		Currency:    "INR",
		Description: "Yearly Membership",
	},
}

// Resolve maps a client-supplied plan id to a pricing plan. Unknown ids fall
// back to the monthly plan instead of erroring.
func Resolve(id string) Plan {
	if p, ok := plans[id]; ok {
		return p
	}
	return plans[DefaultID]
}
