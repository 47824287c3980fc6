package client

import (
	"context"
	"encoding/json"

	"subres/internal/apperrors"
	"subres/internal/models"
)

// Quota fetches the account's daily download allowance from {base}/quota.
func (c *client) Quota(ctx context.Context) (*models.QuotaInfo, error) {
	body, err := c.doAPIRequest(ctx, c.baseURL+"/quota", searchStatusError)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &apperrors.ErrProviderContract{Detail: "quota endpoint not found"}
	}

	var quota models.QuotaInfo
	if err := json.Unmarshal(body, &quota); err != nil {
		return nil, &apperrors.ErrProviderContract{Detail: "malformed quota response: " + err.Error()}
	}
	if quota.Remaining == 0 && quota.Limit > 0 && quota.Used < quota.Limit {
		quota.Remaining = quota.Limit - quota.Used
	}
	return &quota, nil
}
