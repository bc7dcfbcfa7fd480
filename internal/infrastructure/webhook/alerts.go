package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"PetitionRouter/internal/domain"
	"PetitionRouter/internal/ports"
)

// AlertSink posts petition alerts as JSON to a configured endpoint, e.g. a
// department duty channel integration.
type AlertSink struct {
	endpoint string
	client   *http.Client
}

var _ ports.AlertSink = (*AlertSink)(nil)

// NewAlertSink registers the webhook endpoint.
func NewAlertSink(endpoint string) *AlertSink {
	return &AlertSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishAlert posts one alert payload.
func (s *AlertSink) PublishAlert(ctx context.Context, alert domain.Alert) error {
	if s.endpoint == "" || s.client == nil {
		return fmt.Errorf("alert sink misconfigured")
	}

	payload := map[string]string{
		"petition_id": alert.PetitionID,
		"title":       alert.Title,
		"category":    alert.Category,
		"priority":    string(alert.Priority),
		"urgency":     string(alert.Urgency),
		"summary":     alert.Summary,
		"reason":      alert.Reason,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook error: %s", resp.Status)
	}

	return nil
}
