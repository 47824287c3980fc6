package client

import (
	"context"
	"net/http"
	"net/url"

	"subres/internal/apperrors"
	"subres/internal/config"
	"subres/internal/metrics"
	"subres/internal/models"
)

// Download fetches the raw archive bytes for a subtitle ID from
// {base}/subtitle/{id}/download. A 429 here means the daily quota is gone,
// not throttling; it fails this download without poisoning the session.
func (c *client) Download(ctx context.Context, subtitleID string) (*models.DownloadResult, error) {
	logger := config.GetLogger()

	downloadURL := c.baseURL + "/subtitle/" + url.PathEscape(subtitleID) + "/download"

	body, err := c.doAPIRequest(ctx, downloadURL, func(statusCode int, respBody []byte) error {
		if statusCode == http.StatusTooManyRequests {
			return &apperrors.ErrQuotaExceeded{SubtitleID: subtitleID}
		}
		return &apperrors.ErrProviderContract{StatusCode: statusCode, Detail: truncateBody(respBody)}
	})
	if err != nil {
		metrics.SubtitleDownloadsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if body == nil {
		metrics.SubtitleDownloadsTotal.WithLabelValues("not_found").Inc()
		return nil, &apperrors.ErrProviderContract{StatusCode: http.StatusNotFound, Detail: "subtitle " + subtitleID + " not found"}
	}
	if len(body) == 0 {
		metrics.SubtitleDownloadsTotal.WithLabelValues("empty").Inc()
		return nil, &apperrors.ErrProviderContract{Detail: "empty download body for subtitle " + subtitleID}
	}

	metrics.SubtitleDownloadsTotal.WithLabelValues("success").Inc()
	logger.Info().Str("subtitleID", subtitleID).Int("size", len(body)).Msg("Downloaded subtitle archive")
	return &models.DownloadResult{SubtitleID: subtitleID, Content: body}, nil
}
