// Package gating decides what the course page shows to a visitor.
package gating

import "github.com/coursecms/coursesite/internal/models"

// Identity is an authenticated visitor.
type Identity struct {
	UserID int64
	Email  string
}

// Resolve maps identity presence and the paid flag onto an access state. A nil
// identity is anonymous; a missing profile counts as unpaid.
func Resolve(identity *Identity, profile *models.UserProfile) models.AccessState {
	if identity == nil {
		return models.AccessAnonymous
	}
	if profile == nil || !profile.HasPaid {
		return models.AccessUnpaid
	}
	return models.AccessPaid
}

// CanViewCourse reports whether the state grants the gated content.
func CanViewCourse(state models.AccessState) bool {
	return state == models.AccessPaid
}
