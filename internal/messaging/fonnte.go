// Package messaging sends WhatsApp messages through the Fonnte gateway.
package messaging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/segyhp/kos-management/internal/config"
)

const (
	fonnteCountryCode    = "62"
	fonnteDefaultTimeout = 10 * time.Second
)

// Result is the outcome of one send. Delivery failures are reported here,
// never as a Go error.
type Result struct {
	Success bool           `json:"success"`
	Phone   string         `json:"phone"`
	Status  int            `json:"status,omitempty"`
	Error   string         `json:"error,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// FonnteClient handles WhatsApp delivery via api.fonnte.com
type FonnteClient struct {
	apiURL string
	token  string
	client *http.Client
}

type fonnteRequest struct {
	Target      string `json:"target"`
	Message     string `json:"message"`
	CountryCode string `json:"countryCode"`
}

func NewFonnteClient(cfg config.WhatsAppConfig) *FonnteClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = fonnteDefaultTimeout
	}

	return &FonnteClient{
		apiURL: cfg.APIURL,
		token:  cfg.Token,
		client: &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether an API token is set
func (c *FonnteClient) IsConfigured() bool {
	return c.token != ""
}

// Send delivers message to phone
func (c *FonnteClient) Send(ctx context.Context, phone, message string) Result {
	if !c.IsConfigured() {
		return Result{Phone: phone, Error: "Fonnte API token is not configured"}
	}

	body, err := json.Marshal(fonnteRequest{
		Target:      FormatPhoneNumber(phone),
		Message:     message,
		CountryCode: fonnteCountryCode,
	})
	if err != nil {
		return Result{Phone: phone, Error: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return Result{Phone: phone, Error: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "whatsapp send failed", "phone", phone, "error", err)
		return Result{Phone: phone, Error: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	data := map[string]any{}
	_ = json.Unmarshal(raw, &data)

	// Fonnte answers 200 with {"status": false, "reason": ...} on rejection
	accepted, hasStatus := data["status"].(bool)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && (!hasStatus || accepted) {
		slog.InfoContext(ctx, "whatsapp notification sent", "phone", phone)
		return Result{Success: true, Phone: phone, Status: resp.StatusCode, Data: data}
	}

	reason := "Failed to send message"
	for _, key := range []string{"reason", "message"} {
		if s, ok := data[key].(string); ok && s != "" {
			reason = s
			break
		}
	}
	slog.WarnContext(ctx, "whatsapp notification rejected", "phone", phone, "status", resp.StatusCode, "reason", reason)

	return Result{Phone: phone, Status: resp.StatusCode, Error: reason, Data: data}
}

// SendBulk sends message to every phone in order
func (c *FonnteClient) SendBulk(ctx context.Context, phones []string, message string) []Result {
	results := make([]Result, 0, len(phones))
	for _, phone := range phones {
		results = append(results, c.Send(ctx, phone, message))
	}
	return results
}

var nonDialable = regexp.MustCompile(`[^0-9+]`)

// FormatPhoneNumber normalizes an Indonesian number to +62 form:
// "0812-3456" -> "+628123456", "62812" -> "+62812".
func FormatPhoneNumber(phone string) string {
	p := nonDialable.ReplaceAllString(phone, "")

	switch {
	case strings.HasPrefix(p, "+62"):
		return p
	case strings.HasPrefix(p, "62"):
		return "+" + p
	case strings.HasPrefix(p, "0"):
		return "+62" + p[1:]
	default:
		return "+62" + p
	}
}
