package alerts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/vertical-farm/internal/config"
	"github.com/mamadbah2/vertical-farm/internal/domain/models"
)

// Client delivers utilization alerts to a webhook.
type Client interface {
	SendAlert(ctx context.Context, alert models.UtilizationAlert) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the alert configuration.
func NewClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// webhookPayload is the body posted for every alert.
type webhookPayload struct {
	Text  string                  `json:"text"`
	Alert models.UtilizationAlert `json:"alert"`
}

// apiError captures an error body returned by the receiver, when it has one.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *WebhookClient) SendAlert(ctx context.Context, alert models.UtilizationAlert) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{Text: alert.Message, Alert: alert}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send utilization alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("alert webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
