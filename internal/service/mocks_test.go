package service

import (
	"context"
	"strings"
	"sync"

	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// MockUserRepository is an in-memory UserRepository
type MockUserRepository struct {
	mu           sync.Mutex
	users        map[int64]*models.User
	usersByEmail map[string]*models.User
	nextID       int64

	// GetByEmailErr, when set, is returned by every email lookup
	GetByEmailErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:        make(map[int64]*models.User),
		usersByEmail: make(map[string]*models.User),
		nextID:       1,
	}
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *models.User) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.usersByEmail[strings.ToLower(user.Email)]; ok {
		return nil, utils.NewDuplicateError("User", "email", user.Email)
	}
	user.ID = m.nextID
	m.nextID++

	m.users[user.ID] = user
	m.usersByEmail[strings.ToLower(user.Email)] = user
	return models.NewUserProfile(user.ID), nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, utils.NewNotFoundError("User", id)
	}
	return user, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailErr != nil {
		return nil, m.GetByEmailErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, utils.NewNotFoundError("User", email)
	}
	return user, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.usersByEmail[strings.ToLower(email)]
	return ok, nil
}

// MockProfileRepository is an in-memory ProfileRepository
type MockProfileRepository struct {
	mu       sync.Mutex
	profiles map[int64]*models.UserProfile

	SetPaidErr     error
	EnsureErr      error
	EnsureDefaults int
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[int64]*models.UserProfile)}
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, utils.NewNotFoundError("UserProfile", userID)
	}
	return p, nil
}

func (m *MockProfileRepository) EnsureDefault(ctx context.Context, userID int64) (*models.UserProfile, error) {
	if m.EnsureErr != nil {
		return nil, m.EnsureErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnsureDefaults++
	p, ok := m.profiles[userID]
	if !ok {
		p = models.NewUserProfile(userID)
		m.profiles[userID] = p
	}
	return p, nil
}

func (m *MockProfileRepository) SetPaid(ctx context.Context, userID int64) error {
	if m.SetPaidErr != nil {
		return m.SetPaidErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[userID]
	if !ok {
		p = models.NewUserProfile(userID)
		m.profiles[userID] = p
	}
	p.HasPaid = true
	return nil
}

// MockTokenIssuer returns predictable tokens
type MockTokenIssuer struct {
	Err error
}

func (m *MockTokenIssuer) GenerateAccessToken(userID int64, email string) (string, string, error) {
	if m.Err != nil {
		return "", "", m.Err
	}
	return "token-" + utils.FormatInt64(userID), "jti", nil
}

func (m *MockTokenIssuer) ExpiresIn() int64 {
	return 3600
}

// MockPublisher records published snapshots
type MockPublisher struct {
	mu          sync.Mutex
	Published   []models.SiteData
	Err         error
	Unset       bool
	PublishFunc func(ctx context.Context, data models.SiteData) error
}

func (m *MockPublisher) Publish(ctx context.Context, data models.SiteData) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, data)
	}
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	m.Published = append(m.Published, data)
	m.mu.Unlock()
	return nil
}

func (m *MockPublisher) Configured() bool {
	return !m.Unset
}
