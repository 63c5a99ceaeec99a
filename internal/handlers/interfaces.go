// Package handlers provides HTTP request handlers for the course site API.
//
// Handlers depend on the narrow service interfaces declared here rather than
// on concrete services, so each handler can be tested against a mock.
package handlers

import (
	"context"

	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/gating"
	"github.com/coursecms/coursesite/internal/models"
)

// AuthServiceInterface defines the methods required from the identity service.
type AuthServiceInterface interface {
	// Signup registers a new identity and returns its first access token.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - reg: Registration data (email, password, confirmation)
	//
	// Returns:
	//   - The sanitized user with an access token
	//   - A duplicate error when the email is taken, or a validation error
	Signup(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error)

	// Login authenticates credentials and issues an access token.
	Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error)

	// Verify returns the identity behind an already validated token.
	Verify(ctx context.Context, userID int64) (*models.User, error)
}

// AccessServiceInterface defines the methods required from the gating service.
type AccessServiceInterface interface {
	// Resolve returns the access state of identity. A nil identity is anonymous.
	Resolve(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error)

	// Profile returns the profile document of userID.
	Profile(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// PurchaseServiceInterface defines the methods required from the purchase service.
type PurchaseServiceInterface interface {
	CheckoutURL() (string, error)
	ConfirmPurchase(ctx context.Context, email, productID string) error
}

// PublishServiceInterface defines the methods required from the publish service.
type PublishServiceInterface interface {
	// Publish commits a site snapshot to the hosting repository.
	Publish(ctx context.Context, data models.SiteData) (export.Outcome, error)

	// PublishDrafts commits the current draft content.
	PublishDrafts(ctx context.Context) (export.Outcome, error)

	// Export renders the current drafts into the baseline artifact.
	Export(ctx context.Context) ([]byte, error)

	// Status reports whether an attempt is running and how the last one ended.
	Status() export.Status

	// Configured reports whether the hosting repository settings are present.
	Configured() bool
}

// AdminServiceInterface defines the methods required from the admin session service.
type AdminServiceInterface interface {
	Login(code string) (*models.AdminSession, error)
	Logout(token string)
}

// DraftServiceInterface defines the methods required from the draft service.
type DraftServiceInterface interface {
	// Get returns the document of slot, falling back to its seed.
	Get(ctx context.Context, slot models.SlotName) (interface{}, error)

	// GetAll returns every slot keyed by name.
	GetAll(ctx context.Context) (map[models.SlotName]interface{}, error)

	// Replace overwrites slot with doc on behalf of admin.
	Replace(ctx context.Context, admin editor.AdminState, slot models.SlotName, doc []byte) error

	// Subscribe follows the change feed of slot. An empty slot follows every slot.
	Subscribe(slot models.SlotName) (*draftstore.Subscription, error)
}

// EditorProvider hands out content editors bound to an admin state.
type EditorProvider interface {
	Editor(admin editor.AdminState) *editor.ContentEditor
}
