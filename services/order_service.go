package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AjinkyaSambare/razorpay-integration/config"
	"github.com/AjinkyaSambare/razorpay-integration/internal/types/order"
	"github.com/AjinkyaSambare/razorpay-integration/internal/types/plan"
)

// OrderGateway is the slice of the payment gateway the order service uses.
type OrderGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

type OrderService struct {
	gateway OrderGateway
	cfg     *config.Config
}

func NewOrderService(gateway OrderGateway, cfg *config.Config) *OrderService {
	return &OrderService{
		gateway: gateway,
		cfg:     cfg,
	}
}

// CreateOrder resolves the plan, registers an order with the gateway and
// composes the public checkout parameters. Unknown plan ids silently resolve
// to the monthly plan.
func (s *OrderService) CreateOrder(ctx context.Context, planID, email string) (*order.Result, error) {
	p := plan.Resolve(planID)

	receipt := fmt.Sprintf("rcpt_%d_%s", time.Now().Unix(), uuid.NewString()[:8])

	notes := map[string]interface{}{"plan": p.ID}
	if email != "" {
		notes["email"] = email
	}

	orderID, err := s.gateway.CreateOrder(ctx, p.Amount, p.Currency, receipt, notes)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	log.Printf("Created order %s for plan %s", orderID, p.ID)

	return &order.Result{
		Success:         true,
		OrderID:         orderID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		RazorpayKeyID:   s.cfg.RazorpayKeyID,
		SiteName:        s.cfg.SiteName,
		PlanDescription: p.Description,
		SiteImage:       s.cfg.SiteImage,
		CustomerEmail:   email,
	}, nil
}
