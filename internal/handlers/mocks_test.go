package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/editor"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/gating"
	"github.com/coursecms/coursesite/internal/middleware"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/service"
)

// MockAuthService implements AuthServiceInterface
type MockAuthService struct {
	SignupFunc func(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error)
	LoginFunc  func(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error)
	VerifyFunc func(ctx context.Context, userID int64) (*models.User, error)
}

func (m *MockAuthService) Signup(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, reg)
	}
	return &models.AuthResponse{
		User:        &models.User{ID: 1, Email: reg.Email},
		AccessToken: "access_token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return &models.AuthResponse{
		User:        &models.User{ID: 1, Email: creds.Email},
		AccessToken: "access_token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil
}

func (m *MockAuthService) Verify(ctx context.Context, userID int64) (*models.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, userID)
	}
	return &models.User{ID: userID, Email: "test@example.com"}, nil
}

// MockAccessService implements AccessServiceInterface
type MockAccessService struct {
	ResolveFunc func(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error)
	ProfileFunc func(ctx context.Context, userID int64) (*models.UserProfile, error)
}

func (m *MockAccessService) Resolve(ctx context.Context, identity *gating.Identity) (*models.AccessResponse, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, identity)
	}
	if identity == nil {
		return &models.AccessResponse{State: models.AccessAnonymous}, nil
	}
	return &models.AccessResponse{State: models.AccessUnpaid, Email: identity.Email}, nil
}

func (m *MockAccessService) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return models.NewUserProfile(userID), nil
}

// MockPurchaseService is a mock implementation of PurchaseServiceInterface
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) CheckoutURL() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseService) ConfirmPurchase(ctx context.Context, email, productID string) error {
	args := m.Called(ctx, email, productID)
	return args.Error(0)
}

// MockPublishService implements PublishServiceInterface
type MockPublishService struct {
	PublishFunc       func(ctx context.Context, data models.SiteData) (export.Outcome, error)
	PublishDraftsFunc func(ctx context.Context) (export.Outcome, error)
	ExportFunc        func(ctx context.Context) ([]byte, error)
	StatusFunc        func() export.Status
	Unconfigured      bool
}

func (m *MockPublishService) Publish(ctx context.Context, data models.SiteData) (export.Outcome, error) {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, data)
	}
	return export.Outcome{Success: true, Message: constants.MsgPublishSuccess}, nil
}

func (m *MockPublishService) PublishDrafts(ctx context.Context) (export.Outcome, error) {
	if m.PublishDraftsFunc != nil {
		return m.PublishDraftsFunc(ctx)
	}
	return export.Outcome{Success: true, Message: constants.MsgPublishSuccess}, nil
}

func (m *MockPublishService) Export(ctx context.Context) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return []byte("export const initialData = {};\n"), nil
}

func (m *MockPublishService) Status() export.Status {
	if m.StatusFunc != nil {
		return m.StatusFunc()
	}
	return export.Status{State: export.StateIdle}
}

func (m *MockPublishService) Configured() bool {
	return !m.Unconfigured
}

// MockAdminService implements AdminServiceInterface
type MockAdminService struct {
	LoginFunc    func(code string) (*models.AdminSession, error)
	LoggedOut    []string
	ExpectedCode string
}

func (m *MockAdminService) Login(code string) (*models.AdminSession, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(code)
	}
	if code != m.ExpectedCode {
		return nil, editor.ErrInvalidAccessCode
	}
	return models.NewAdminSession(constants.AdminSessionTTL), nil
}

func (m *MockAdminService) Logout(token string) {
	m.LoggedOut = append(m.LoggedOut, token)
}

// newDraftService returns a draft service over an in-memory store
func newDraftService() *service.DraftService {
	return service.NewDraftService(draftstore.New(draftstore.NewMemoryBackend()))
}

// unlockedAdmin returns an admin state with admin mode active
func unlockedAdmin() *editor.Admin {
	admin := editor.NewAdmin("letmein")
	if err := admin.Login("letmein"); err != nil {
		panic(err)
	}
	return admin
}

// withAdmin attaches admin to the request the way the admin session middleware does
func withAdmin(r *http.Request, admin *editor.Admin) *http.Request {
	return r.WithContext(middleware.WithAdmin(r.Context(), admin))
}

// withIdentity attaches an authenticated identity to the request
func withIdentity(r *http.Request, userID int64, email string) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, auth.EmailContextKey, email)
	return r.WithContext(ctx)
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	return req
}
