package api

import (
	"encoding/json"
	"fmt"
)

// Health calls /api/health and returns the reported status.
func (c *Client) Health() (*HealthStatus, error) {
	data, err := c.get("/api/health")
	if err != nil {
		return nil, err
	}

	var payload HealthStatus
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status == "" {
		return nil, fmt.Errorf("health check returned no status")
	}
	return &payload, nil
}
