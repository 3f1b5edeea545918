// internal/payments/checkout.go
package payments

import (
	"context"
	"strings"

	"tutorlink-client/internal/common/config"
	"tutorlink-client/internal/common/errors"
	"tutorlink-client/internal/common/logger"
)

// API is the slice of the platform client checkout needs.
type API interface {
	CreateCheckout(ctx context.Context, classID, successURL, cancelURL string) (string, error)
}

// Service requests hosted-checkout sessions from the backend. Card data never
// passes through this client; the user is handed off to the payment provider's
// page and returned to the configured success or cancel URL.
type Service struct {
	api        API
	successURL string
	cancelURL  string
	logger     logger.Logger
}

func NewService(api API, cfg config.PaymentsConfig, log logger.Logger) *Service {
	return &Service{
		api:        api,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		logger:     log.WithFields(map[string]interface{}{"component": "payments"}),
	}
}

// Checkout returns the provider URL to redirect the user to for paying for a
// class booking.
func (s *Service) Checkout(ctx context.Context, classID string) (string, error) {
	if strings.TrimSpace(classID) == "" {
		return "", errors.NewValidationError("Please select a class to pay for")
	}

	url, err := s.api.CreateCheckout(ctx, classID, s.successURL, s.cancelURL)
	if err != nil {
		s.logger.Warn("checkout creation failed", map[string]interface{}{
			"classId": classID,
			"error":   err.Error(),
		})
		return "", err
	}
	s.logger.Info("checkout created", map[string]interface{}{"classId": classID})
	return url, nil
}
