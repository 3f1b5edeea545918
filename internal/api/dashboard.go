// internal/api/dashboard.go
package api

import (
	"context"
	"encoding/json"
)

// The dashboard endpoints return inconsistent shapes (bare arrays, {data: [...]}
// envelopes, drifting key names), so the client hands back raw bodies and the
// dashboard package normalizes them into canonical view structs.

func (c *Client) DashboardProfile(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/users/"+userID, "dashboard_profile")
}

func (c *Client) Classes(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/classes/user/"+userID, "dashboard_classes")
}

func (c *Client) Assignments(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/assignments/user/"+userID, "dashboard_assignments")
}

func (c *Client) Payments(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/payments/user/"+userID, "dashboard_payments")
}

func (c *Client) Messages(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "/messages/user/"+userID, "dashboard_messages")
}
