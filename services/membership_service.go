package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/AjinkyaSambare/razorpay-integration/internal/types/member"
)

// MemberLabel is appended to every member this bridge touches.
const MemberLabel = "razorpay-customer"

// MembershipPlatform is the slice of the content platform admin API the
// synchronizer uses.
type MembershipPlatform interface {
	BrowseMembersByEmail(ctx context.Context, email string) ([]member.Member, error)
	UpdateMember(ctx context.Context, id string, m member.Member) (*member.Member, error)
	CreateMember(ctx context.Context, m member.Member) (*member.Member, error)
}

type MembershipService struct {
	platform MembershipPlatform
	secret   string

	// Per-email locks serialize the browse -> edit/add window so two
	// confirmations for the same address cannot both observe "no member".
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMembershipService(platform MembershipPlatform, keySecret string) *MembershipService {
	return &MembershipService{
		platform: platform,
		secret:   keySecret,
		locks:    make(map[string]*sync.Mutex),
	}
}

// VerifySignature recomputes the checkout signature for an order/payment pair
// and compares it against the one supplied by the client. Razorpay signs the
// string "<order_id>|<payment_id>" with the key secret, hex-encoded.
func (s *MembershipService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *MembershipService) emailLock(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[email]
	if !ok {
		l = &sync.Mutex{}
		s.locks[email] = l
	}
	return l
}

// SyncMembership upserts the platform member for a captured payment: an
// existing member gets the label and a payment note appended, otherwise a new
// subscribed member is created. A member whose note already references the
// payment id is left untouched, so re-delivery of the same confirmation is a
// no-op.
func (s *MembershipService) SyncMembership(ctx context.Context, email, name, paymentID string) (string, error) {
	lock := s.emailLock(email)
	lock.Lock()
	defer lock.Unlock()

	members, err := s.platform.BrowseMembersByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("browse members: %w", err)
	}

	noteLine := "Razorpay payment: " + paymentID

	if len(members) > 0 {
		m := members[0]

		if strings.Contains(m.Note, paymentID) {
			log.Printf("Payment %s already recorded for member %s, skipping update", paymentID, m.ID)
			return m.ID, nil
		}

		if !m.HasLabel(MemberLabel) {
			m.Labels = append(m.Labels, member.Label{Name: MemberLabel})
		}
		if m.Note != "" {
			m.Note += "\n"
		}
		m.Note += noteLine

		updated, err := s.platform.UpdateMember(ctx, m.ID, m)
		if err != nil {
			return "", fmt.Errorf("update member: %w", err)
		}

		log.Printf("Updated member %s for payment %s", updated.ID, paymentID)
		return updated.ID, nil
	}

	created, err := s.platform.CreateMember(ctx, member.Member{
		Email:      email,
		Name:       name,
		Note:       noteLine,
		Labels:     []member.Label{{Name: MemberLabel}},
		Subscribed: true,
	})
	if err != nil {
		return "", fmt.Errorf("create member: %w", err)
	}

	log.Printf("Created member %s for payment %s", created.ID, paymentID)
	return created.ID, nil
}
