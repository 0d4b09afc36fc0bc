// Package cart keeps the shopping cart on the client as an HMAC-signed
// session. Nothing outside this package sees an unverified cart.
package cart

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MaxQuantityPerProduct = 10
	MaxTotalQuantity      = 50
	DefaultTTL            = 24 * time.Hour
)

var (
	ErrInvalidSignature = errors.New("invalid cart signature")
	ErrExpired          = errors.New("cart session expired")
	ErrMalformed        = errors.New("malformed cart session")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrProductLimit     = fmt.Errorf("maximum %d items per product", MaxQuantityPerProduct)
	ErrCartLimit        = fmt.Errorf("maximum %d items in cart", MaxTotalQuantity)
)

type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	AddedAt   int64 `json:"addedAt"`
}

// Session is the signed cart as stored in the cart cookie. Timestamps are
// unix milliseconds.
type Session struct {
	Items     []Item `json:"items"`
	Signature string `json:"signature"`
	SessionID string `json:"sessionId"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// TotalQuantity sums quantities across all lines.
func (s Session) TotalQuantity() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

func (s Session) Quantity(productID int64) int {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// Create starts a new session holding items.
func (s *Signer) Create(items []Item) (Session, error) {
	if err := checkLimits(items); err != nil {
		return Session{}, err
	}
	now := s.now().UnixMilli()
	session := Session{
		Items:     cloneItems(items),
		SessionID: uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	sig, err := s.sign(session)
	if err != nil {
		return Session{}, err
	}
	session.Signature = sig
	return session, nil
}

// Update replaces the items of an already verified session and re-signs it.
// The session id and creation time are kept.
func (s *Signer) Update(existing Session, items []Item) (Session, error) {
	if err := checkLimits(items); err != nil {
		return Session{}, err
	}
	updated := Session{
		Items:     cloneItems(items),
		SessionID: existing.SessionID,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: s.now().UnixMilli(),
	}
	sig, err := s.sign(updated)
	if err != nil {
		return Session{}, err
	}
	updated.Signature = sig
	return updated, nil
}

// Validate verifies the signature, the expiry window and the item limits.
func (s *Signer) Validate(session Session) error {
	if session.SessionID == "" || session.Signature == "" || session.CreatedAt <= 0 {
		return ErrMalformed
	}

	want, err := s.sign(session)
	if err != nil {
		return err
	}
	got, err := hex.DecodeString(session.Signature)
	if err != nil {
		return ErrInvalidSignature
	}
	expected, _ := hex.DecodeString(want)
	if !hmac.Equal(got, expected) {
		return ErrInvalidSignature
	}

	now := s.now()
	created := time.UnixMilli(session.CreatedAt)
	if now.Sub(created) > s.ttl || created.After(now.Add(time.Minute)) {
		return ErrExpired
	}

	if err := checkLimits(session.Items); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

func (s *Signer) Valid(session Session) bool {
	return s.Validate(session) == nil
}

type signedPayload struct {
	Items     []Item `json:"items"`
	Timestamp int64  `json:"timestamp"`
}

func (s *Signer) sign(session Session) (string, error) {
	items := session.Items
	if items == nil {
		items = []Item{}
	}
	payload, err := json.Marshal(signedPayload{Items: items, Timestamp: session.UpdatedAt})
	if err != nil {
		return "", fmt.Errorf("marshal cart payload: %w", err)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	mac.Write([]byte(":"))
	mac.Write([]byte(session.SessionID))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func checkLimits(items []Item) error {
	seen := make(map[int64]struct{}, len(items))
	total := 0
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if _, dup := seen[it.ProductID]; dup {
			return ErrMalformed
		}
		seen[it.ProductID] = struct{}{}
		if it.Quantity > MaxQuantityPerProduct {
			return ErrProductLimit
		}
		total += it.Quantity
	}
	if total > MaxTotalQuantity {
		return ErrCartLimit
	}
	return nil
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
