// internal/api/payments.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tutorlink-client/internal/common/jsonutil"
)

type checkoutRequest struct {
	ClassID    string `json:"classId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// CreateCheckout asks the backend for a hosted-checkout authorization URL for
// the given class booking. The client never touches card data itself.
func (c *Client) CreateCheckout(ctx context.Context, classID, successURL, cancelURL string) (string, error) {
	var raw json.RawMessage
	body := checkoutRequest{ClassID: classID, SuccessURL: successURL, CancelURL: cancelURL}
	if err := c.do(ctx, http.MethodPost, "/payments/checkout", "payments_checkout", body, &raw); err != nil {
		return "", err
	}

	m := jsonutil.UnwrapObject(raw)
	url := jsonutil.StringAt(m, "url", "checkoutUrl", "sessionUrl")
	if url == "" {
		return "", fmt.Errorf("checkout response carried no authorization URL")
	}
	return url, nil
}
