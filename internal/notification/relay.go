package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 10 * time.Second

	// maxResponseBytes caps how much of a relay response is read for the
	// outcome detail.
	maxResponseBytes = 64 << 10
)

// RelaySender delivers notifications by POSTing JSON to the external
// notification relay: <base>/send-email and <base>/send-sms.
type RelaySender struct {
	baseURL string
	client  *http.Client
}

// NewRelaySender creates a RelaySender for the given base URL. A timeout of
// zero selects the 10 second default.
func NewRelaySender(baseURL string, timeout time.Duration) *RelaySender {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &RelaySender{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SendEmail delivers message to address via POST /send-email.
func (s *RelaySender) SendEmail(ctx context.Context, address, message string) Outcome {
	return s.post(ctx, ChannelEmail, "/send-email", map[string]string{
		"email":   address,
		"message": message,
	})
}

// SendSMS delivers message to telephone via POST /send-sms.
func (s *RelaySender) SendSMS(ctx context.Context, telephone, message string) Outcome {
	return s.post(ctx, ChannelSMS, "/send-sms", map[string]string{
		"telephone": telephone,
		"message":   message,
	})
}

// post issues one relay call and maps the response to an Outcome. All failure
// modes are contained here; post never panics and never returns an error.
func (s *RelaySender) post(ctx context.Context, ch Channel, path string, payload map[string]string) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{Channel: ch, Detail: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Outcome{Channel: ch, Detail: fmt.Sprintf("building request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Outcome{Channel: ch, Detail: transportDetail(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Outcome{Channel: ch, Detail: fmt.Sprintf("reading response: %v", err)}
	}

	if resp.StatusCode == http.StatusOK {
		return Outcome{Channel: ch, Success: true, Detail: successDetail(data)}
	}
	return Outcome{Channel: ch, Detail: errorDetail(resp, data)}
}

// transportDetail converts a transport-level error into the human-readable
// detail string recorded in the Outcome.
func transportDetail(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return "request timeout - external service not responding"
	}
	var operr *net.OpError
	if errors.As(err, &operr) {
		return "connection failed - external service unavailable"
	}
	return fmt.Sprintf("unexpected error: %v", err)
}

// successDetail extracts a detail string from a 200 response body. A JSON
// object's "message" field wins; any other valid JSON is reported verbatim;
// unparseable bodies fall back to a generic note.
func successDetail(data []byte) string {
	if len(bytes.TrimSpace(data)) == 0 {
		return "delivered"
	}
	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
		return string(bytes.TrimSpace(data))
	}
	return "response received but could not parse JSON"
}

// errorDetail extracts an error string from a non-200 response: the "error"
// field of a JSON body when present, else a generic "HTTP <status>" string.
func errorDetail(resp *http.Response, data []byte) string {
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var parsed map[string]any
		if err := json.Unmarshal(data, &parsed); err == nil {
			if msg, ok := parsed["error"].(string); ok && msg != "" {
				return msg
			}
			return fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}
	return fmt.Sprintf("HTTP %d - %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
