package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/models"
)

type adminSession struct {
	session *models.AdminSession
	admin   *editor.Admin
}

// AdminService keeps the unlocked admin-mode sessions. Each session owns its
// own admin state, so logging out in one browser leaves the others alone.
type AdminService struct {
	accessCode string
	ttl        time.Duration

	mu       sync.Mutex
	sessions map[string]*adminSession
	now      func() time.Time
}

// NewAdminService creates an AdminService. An empty access code disables admin mode.
func NewAdminService(accessCode string, ttl time.Duration) *AdminService {
	return &AdminService{
		accessCode: accessCode,
		ttl:        ttl,
		sessions:   make(map[string]*adminSession),
		now:        time.Now,
	}
}

// Login unlocks admin mode and returns the session token
func (s *AdminService) Login(code string) (*models.AdminSession, error) {
	admin := editor.NewAdmin(s.accessCode)
	if err := admin.Login(code); err != nil {
		log.Warn().Msg("Admin login rejected")
		return nil, err
	}

	session := models.NewAdminSession(s.ttl)

	s.mu.Lock()
	s.sessions[session.Token] = &adminSession{session: session, admin: admin}
	s.mu.Unlock()

	log.Info().Msg("Admin mode unlocked")
	return session, nil
}

// Lookup returns the admin state of a live session. Every successful lookup
// extends the session by the TTL.
func (s *AdminService) Lookup(token string) (*editor.Admin, bool) {
	if token == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.After(entry.session.ExpiresAt) || !entry.admin.IsAdmin() {
		delete(s.sessions, token)
		return nil, false
	}

	entry.session.ExpiresAt = now.Add(s.ttl)
	return entry.admin, true
}

// Logout leaves admin mode for the session. Unknown tokens are ignored.
func (s *AdminService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.sessions[token]; ok {
		entry.admin.Logout()
		delete(s.sessions, token)
	}
}

// PurgeExpired drops every session that expired before now and returns how many were removed
func (s *AdminService) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, entry := range s.sessions {
		if now.After(entry.session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
