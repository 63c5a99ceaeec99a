package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/repository"
	"github.com/coursecms/coursesite/internal/utils"
)

// Purchase errors. The webhook handler maps each one onto its own status.
var (
	ErrCheckoutNotConfigured = errors.New("checkout url is not configured")
	ErrProductNotConfigured  = errors.New("product id is not configured")
	ErrMissingFields         = errors.New("missing required fields")
	ErrInvalidProduct        = errors.New("invalid product")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserLookup            = errors.New("user lookup failed")
)

// PurchaseService handles the hosted checkout and its payment confirmation
type PurchaseService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cfg      config.PurchaseSettings
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(users repository.UserRepository, profiles repository.ProfileRepository, cfg config.PurchaseSettings) *PurchaseService {
	return &PurchaseService{
		users:    users,
		profiles: profiles,
		cfg:      cfg,
	}
}

// CheckoutURL returns the hosted checkout page. The visitor is redirected there.
func (s *PurchaseService) CheckoutURL() (string, error) {
	if s.cfg.ProductURL == "" {
		return "", ErrCheckoutNotConfigured
	}
	return s.cfg.ProductURL, nil
}

// ConfirmPurchase marks the identity behind email as paid.
//
// Parameters:
//   - ctx: Context for the operation
//   - email: Buyer email as reported by the payment provider
//   - productID: Product the payment was made for
//
// Returns:
//   - ErrProductNotConfigured, ErrMissingFields or ErrInvalidProduct before any lookup
//   - ErrUserNotFound when no identity has that email or the email is malformed
//   - ErrUserLookup when the lookup itself failed
//   - The raw write error when the paid flag could not be stored
func (s *PurchaseService) ConfirmPurchase(ctx context.Context, email, productID string) error {
	if s.cfg.ProductID == "" {
		return ErrProductNotConfigured
	}

	email = strings.TrimSpace(email)
	if email == "" || productID == "" {
		return ErrMissingFields
	}
	if productID != s.cfg.ProductID {
		utils.LogPurchase("purchase_rejected", email, false, "product mismatch")
		return ErrInvalidProduct
	}
	if !utils.IsValidEmail(email) {
		// Signup only accepts valid addresses, so no identity can match
		utils.LogPurchase("purchase_unmatched", email, false, "malformed email")
		return ErrUserNotFound
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogPurchase("purchase_unmatched", email, false, "user not found")
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrUserLookup, err)
	}

	if err := s.profiles.SetPaid(ctx, user.ID); err != nil {
		utils.LogPurchase("purchase_failed", email, false, err.Error())
		return err
	}

	utils.LogPurchase("purchase_confirmed", email, true, "")
	return nil
}
