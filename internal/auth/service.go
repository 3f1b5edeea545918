// internal/auth/service.go
package auth

import (
	"context"
	"strings"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/session"
)

// API is the slice of the platform client the auth flows need.
type API interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Register(ctx context.Context, firstName, lastName, email, password, role string) (*session.Session, error)
	OAuthExchange(ctx context.Context, provider, providerToken, role string) (*session.Session, error)
}

var supportedProviders = map[string]bool{
	"google":   true,
	"facebook": true,
	"apple":    true,
}

// Service drives sign-in, registration, and OAuth exchange, and owns writing
// the resulting session into the store.
type Service struct {
	api      API
	sessions session.Store
	logger   logger.Logger
}

func NewService(api API, sessions session.Store, log logger.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		logger:   log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// SignIn exchanges credentials for a session and persists it.
func (s *Service) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.NewValidationError("Please enter your email and password")
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("sign-in failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("signed in", map[string]interface{}{"userId": sess.UserID, "role": sess.UserRole})
	return sess, nil
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// Register creates an account, signs it in, and persists the session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*session.Session, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.Email == "" || in.Password == "" {
		return nil, errors.NewValidationError("Please fill in your name, email, and password")
	}
	if in.Role != "student" && in.Role != "tutor" {
		return nil, errors.NewValidationError("Please choose whether you are signing up as a student or a tutor")
	}

	sess, err := s.api.Register(ctx, in.FirstName, strings.TrimSpace(in.LastName), in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("registered", map[string]interface{}{"userId": sess.UserID, "role": sess.UserRole})
	return sess, nil
}

// OAuthSignIn trades a provider token for a platform session and persists it.
func (s *Service) OAuthSignIn(ctx context.Context, provider, providerToken, role string) (*session.Session, error) {
	if !supportedProviders[provider] {
		return nil, errors.NewValidationError("This sign-in provider is not supported")
	}
	if providerToken == "" {
		return nil, errors.NewValidationError("Sign-in with the provider did not complete. Please try again.")
	}

	sess, err := s.api.OAuthExchange(ctx, provider, providerToken, role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info("signed in via oauth", map[string]interface{}{
		"userId":   sess.UserID,
		"provider": provider,
	})
	return sess, nil
}

// Logout clears the stored session. Safe to call when signed out.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
