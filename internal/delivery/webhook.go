package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/revops-assessment/internal/catalog"
)

// WebhookSinkName identifies the spreadsheet webhook in logs and metrics.
const WebhookSinkName = "webhook"

// DefaultWebhookTimeout bounds a single webhook post.
const DefaultWebhookTimeout = 5 * time.Second

// timestampLayout matches the millisecond ISO-8601 form spreadsheets parse natively.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// WebhookSink posts a flat row per submission to a spreadsheet webhook.
type WebhookSink struct {
	url     string
	client  *http.Client
	catalog *catalog.Catalog
}

// NewWebhookSink creates a webhook sink. A nil client uses one with DefaultWebhookTimeout.
func NewWebhookSink(url string, c *catalog.Catalog, client *http.Client) *WebhookSink {
	if client == nil {
		client = &http.Client{Timeout: DefaultWebhookTimeout}
	}
	return &WebhookSink{url: url, client: client, catalog: c}
}

// Name implements Sink.
func (w *WebhookSink) Name() string {
	return WebhookSinkName
}

// Payload builds the spreadsheet row for sub. Nested values are JSON-encoded strings
// so every column is a scalar.
func (w *WebhookSink) Payload(sub Submission) (map[string]any, error) {
	responses, err := json.Marshal(sub.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode responses: %w", err)
	}
	risks, err := json.Marshal(sub.Report.Risks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode risks: %w", err)
	}
	wins, err := json.Marshal(sub.Report.Wins)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wins: %w", err)
	}

	payload := map[string]any{
		"timestamp":    sub.ReceivedAt.UTC().Format(timestampLayout),
		"submissionId": sub.ID,
		"name":         sub.Lead.Name,
		"title":        sub.Lead.Title,
		"email":        sub.Lead.Email,
		"phone":        sub.Lead.Phone,
		"company":      sub.Lead.Company,
		"category":     sub.Lead.Category,
		"size":         sub.Lead.Size,
		"state":        sub.Lead.State,
		"zip":          sub.Lead.Zip,
		"totalScore":   sub.Scores.Total,
		"tier":         sub.Tier.Label,
		"responses":    string(responses),
		"aiSummary":    sub.Report.Summary,
		"aiRisks":      string(risks),
		"aiWins":       string(wins),
		"ipAddress":    orUnknown(sub.ClientIP),
		"userAgent":    orUnknown(sub.UserAgent),
	}
	for _, section := range w.catalog.Sections() {
		payload[section.ID+"Score"] = sub.Scores.Section(section.ID)
	}
	return payload, nil
}

// Deliver implements Sink. Any non-2xx status is an error.
func (w *WebhookSink) Deliver(ctx context.Context, sub Submission) error {
	payload, err := w.Payload(sub)
	if err != nil {
		return &Error{Sink: WebhookSinkName, Message: "failed to build payload", Cause: err}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{Sink: WebhookSinkName, Message: "failed to encode payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return &Error{Sink: WebhookSinkName, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return &Error{Sink: WebhookSinkName, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Sink: WebhookSinkName, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
