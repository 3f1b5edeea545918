// internal/dashboard/aggregator_test.go
package dashboard

import (
	"context"
	"encoding/json"
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

type fakeFetcher struct {
	profile     json.RawMessage
	profileErr  error
	classes     json.RawMessage
	classesErr  error
	assignments json.RawMessage
	assignErr   error
	payments    json.RawMessage
	paymentsErr error
	messages    json.RawMessage
	messagesErr error
}

func (f *fakeFetcher) DashboardProfile(context.Context, string) (json.RawMessage, error) {
	return f.profile, f.profileErr
}
func (f *fakeFetcher) Classes(context.Context, string) (json.RawMessage, error) {
	return f.classes, f.classesErr
}
func (f *fakeFetcher) Assignments(context.Context, string) (json.RawMessage, error) {
	return f.assignments, f.assignErr
}
func (f *fakeFetcher) Payments(context.Context, string) (json.RawMessage, error) {
	return f.payments, f.paymentsErr
}
func (f *fakeFetcher) Messages(context.Context, string) (json.RawMessage, error) {
	return f.messages, f.messagesErr
}

func healthyFetcher() *fakeFetcher {
	return &fakeFetcher{
		profile:     []byte(`{"_id":"u1","firstName":"Ada","lastName":"Lovelace","role":"student"}`),
		classes:     []byte(`[{"_id":"c1","subject":"Math","status":"scheduled"}]`),
		assignments: []byte(`{"data":[{"_id":"a1","title":"Homework 1","score":90}]}`),
		payments:    []byte(`[{"_id":"p1","amount":40,"status":"completed"},{"_id":"p2","amount":10,"status":"pending"}]`),
		messages:    []byte(`[{"_id":"m1","content":"hello","read":false}]`),
	}
}

func studentStore(t *testing.T) session.Store {
	t.Helper()
	store := session.NewMemoryStore()
	err := store.Save(context.Background(), &session.Session{
		AccessToken: "test-token",
		UserID:      "u1",
		UserRole:    "student",
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	return store
}

func newTestAggregator(t *testing.T, f Fetcher) *Aggregator {
	t.Helper()
	return NewAggregator(f, studentStore(t), logger.NewNoOpLogger())
}

// ==========================
// Happy path
// ==========================

func TestBuildViewAssemblesAllSections(t *testing.T) {
	agg := newTestAggregator(t, healthyFetcher())

	vm, err := agg.BuildView(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "student", vm.Role)
	assert.Equal(t, "Ada", vm.Profile.FirstName)
	require.Len(t, vm.Classes, 1)
	require.Len(t, vm.Assignments, 1)
	require.Len(t, vm.Payments, 2)
	require.Len(t, vm.Messages, 1)
	assert.Nil(t, vm.Errors)

	assert.InDelta(t, 40.0, vm.Stats.TotalSpent, 0.001, "pending payments excluded")
	assert.Equal(t, 1, vm.Stats.UnreadMessages)
	assert.Equal(t, 1, vm.Stats.UpcomingClasses)
	assert.InDelta(t, 90.0, vm.Stats.AverageScore, 0.001)
}

// ==========================
// Degradation
// ==========================

func TestBuildViewWithoutSessionFails(t *testing.T) {
	agg := NewAggregator(healthyFetcher(), session.NewMemoryStore(), logger.NewNoOpLogger())

	_, err := agg.BuildView(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestBuildViewProfileFailureIsFatal(t *testing.T) {
	f := healthyFetcher()
	f.profileErr = errors.NewServerError(500, "")
	agg := newTestAggregator(t, f)

	_, err := agg.BuildView(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.GenericFailureMessage, errors.UserMessage(err))
}

func TestBuildViewSectionFailureDegradesToEmpty(t *testing.T) {
	f := healthyFetcher()
	f.paymentsErr = errors.NewServerError(502, "upstream unavailable")
	f.messagesErr = errors.NewNetworkError(context.DeadlineExceeded)
	agg := newTestAggregator(t, f)

	vm, err := agg.BuildView(context.Background())

	require.NoError(t, err, "section failures never fail the whole view")
	assert.Empty(t, vm.Payments)
	assert.Empty(t, vm.Messages)
	require.Len(t, vm.Classes, 1, "healthy sections still load")

	require.NotNil(t, vm.Errors)
	assert.Equal(t, "upstream unavailable", vm.Errors["payments"])
	assert.Equal(t, errors.GenericFailureMessage, vm.Errors["messages"])

	assert.Zero(t, vm.Stats.TotalSpent, "stats computed over what actually loaded")
	assert.Zero(t, vm.Stats.UnreadMessages)
}

func TestBuildViewRoleFallsBackToSession(t *testing.T) {
	f := healthyFetcher()
	f.profile = []byte(`{"_id":"u1","firstName":"Ada"}`)
	agg := newTestAggregator(t, f)

	vm, err := agg.BuildView(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "student", vm.Role)
}
