package service

import (
	"context"

	"github.com/coursecms/coursesite/internal/gating"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/repository"
)

// AccessService resolves what the course page shows to a visitor
type AccessService struct {
	profiles repository.ProfileRepository
}

// NewAccessService creates a new AccessService
func NewAccessService(profiles repository.ProfileRepository) *AccessService {
	return &AccessService{profiles: profiles}
}

// Resolve returns the access state of identity. A nil identity is anonymous
// and never touches the profile store. A signed-in identity without a profile
// gets the unpaid default created on the spot.
func (s *AccessService) Resolve(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error) {
	if identity == nil {
		return &models.AccessResponse{State: gating.Resolve(nil, nil)}, nil
	}

	profile, err := s.profiles.EnsureDefault(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	state := gating.Resolve(identity, profile)
	return &models.AccessResponse{
		State:         state,
		Email:         identity.Email,
		HasPaid:       profile.HasPaid,
		CanViewCourse: gating.CanViewCourse(state),
	}, nil
}

// Profile returns the profile document of a signed-in identity
func (s *AccessService) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.profiles.EnsureDefault(ctx, userID)
}
