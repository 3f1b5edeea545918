// internal/payments/checkout_test.go
package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorlink-client/internal/common/config"
	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
)

type fakeCheckoutAPI struct {
	calls       int
	url         string
	err         error
	lastSuccess string
	lastCancel  string
}

func (f *fakeCheckoutAPI) CreateCheckout(_ context.Context, _, successURL, cancelURL string) (string, error) {
	f.calls++
	f.lastSuccess = successURL
	f.lastCancel = cancelURL
	return f.url, f.err
}

func testConfig() config.PaymentsConfig {
	return config.PaymentsConfig{
		SuccessURL: "https://app.example.com/payments/success",
		CancelURL:  "https://app.example.com/payments/cancel",
	}
}

func TestCheckoutReturnsProviderURL(t *testing.T) {
	api := &fakeCheckoutAPI{url: "https://checkout.example.com/session/abc"}
	svc := NewService(api, testConfig(), logger.NewNoOpLogger())

	url, err := svc.Checkout(context.Background(), "class-1")

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/session/abc", url)
	assert.Equal(t, "https://app.example.com/payments/success", api.lastSuccess)
	assert.Equal(t, "https://app.example.com/payments/cancel", api.lastCancel)
}

func TestCheckoutRejectsEmptyClassLocally(t *testing.T) {
	api := &fakeCheckoutAPI{url: "https://checkout.example.com/session/abc"}
	svc := NewService(api, testConfig(), logger.NewNoOpLogger())

	_, err := svc.Checkout(context.Background(), "  ")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, api.calls)
}

func TestCheckoutPropagatesFailure(t *testing.T) {
	api := &fakeCheckoutAPI{err: errors.NewServerError(502, "gateway unavailable")}
	svc := NewService(api, testConfig(), logger.NewNoOpLogger())

	_, err := svc.Checkout(context.Background(), "class-1")

	require.Error(t, err)
	assert.Equal(t, "gateway unavailable", errors.UserMessage(err))
}
