// internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
	"tutorlink-client/internal/session"
)

// ==========================
// Test Fixtures
// ==========================

type fakeAuthAPI struct {
	loginCalls int
	oauthCalls int
	sess       *session.Session
	err        error

	lastProvider string
	lastRole     string
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*session.Session, error) {
	f.loginCalls++
	return f.sess, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, _, _, _, _, role string) (*session.Session, error) {
	f.lastRole = role
	return f.sess, f.err
}

func (f *fakeAuthAPI) OAuthExchange(_ context.Context, provider, _, role string) (*session.Session, error) {
	f.oauthCalls++
	f.lastProvider = provider
	f.lastRole = role
	return f.sess, f.err
}

func testSession() *session.Session {
	return &session.Session{
		AccessToken: "token-abc",
		UserID:      "u1",
		UserRole:    "tutor",
		CreatedAt:   time.Now(),
	}
}

// ==========================
// Sign-in
// ==========================

func TestSignInPersistsSession(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	store := session.NewMemoryStore()
	svc := NewService(api, store, logger.NewNoOpLogger())

	sess, err := svc.SignIn(context.Background(), "ada@example.com", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-abc", stored.AccessToken)
}

func TestSignInRejectsEmptyCredentialsLocally(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	svc := NewService(api, session.NewMemoryStore(), logger.NewNoOpLogger())

	_, err := svc.SignIn(context.Background(), "  ", "")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, api.loginCalls)
}

func TestSignInPropagatesRejection(t *testing.T) {
	api := &fakeAuthAPI{err: errors.NewUnauthorizedError("bad credentials")}
	store := session.NewMemoryStore()
	svc := NewService(api, store, logger.NewNoOpLogger())

	_, err := svc.SignIn(context.Background(), "ada@example.com", "wrong")

	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
	_, err = store.Load(context.Background())
	require.Error(t, err, "no session persisted on failure")
}

// ==========================
// Registration
// ==========================

func TestRegisterValidatesRole(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	svc := NewService(api, session.NewMemoryStore(), logger.NewNoOpLogger())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "hunter2",
		Role:      "admin",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterSuccess(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	store := session.NewMemoryStore()
	svc := NewService(api, store, logger.NewNoOpLogger())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "hunter2",
		Role:      "tutor",
	})

	require.NoError(t, err)
	assert.Equal(t, "tutor", api.lastRole)
	_, err = store.Load(context.Background())
	assert.NoError(t, err)
}

// ==========================
// OAuth
// ==========================

func TestOAuthSignIn(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	store := session.NewMemoryStore()
	svc := NewService(api, store, logger.NewNoOpLogger())

	_, err := svc.OAuthSignIn(context.Background(), "google", "provider-token", "student")

	require.NoError(t, err)
	assert.Equal(t, "google", api.lastProvider)
	_, err = store.Load(context.Background())
	assert.NoError(t, err)
}

func TestOAuthSignInRejectsUnknownProvider(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	svc := NewService(api, session.NewMemoryStore(), logger.NewNoOpLogger())

	_, err := svc.OAuthSignIn(context.Background(), "myspace", "provider-token", "student")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, api.oauthCalls)
}

func TestOAuthSignInRejectsEmptyToken(t *testing.T) {
	api := &fakeAuthAPI{sess: testSession()}
	svc := NewService(api, session.NewMemoryStore(), logger.NewNoOpLogger())

	_, err := svc.OAuthSignIn(context.Background(), "apple", "", "student")

	require.Error(t, err)
	assert.Equal(t, 0, api.oauthCalls)
}

// ==========================
// Logout
// ==========================

func TestLogoutClearsSession(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), testSession()))
	svc := NewService(&fakeAuthAPI{}, store, logger.NewNoOpLogger())

	require.NoError(t, svc.Logout(context.Background()))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}
