package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"signup-form/internal/domain"
)

// ErrTransport marks a submission that produced no usable response.
var ErrTransport = errors.New("form submission transport failure")

// FormPath is the endpoint the submitter posts to
const FormPath = "/api/form"

// maxResponseBytes bounds how much of a response body is read
const maxResponseBytes = 1 << 20

// Submitter sends locally valid values to the server.
type Submitter interface {
	Submit(ctx context.Context, values map[string]any) (domain.SubmitResponse, error)
}

// HTTPSubmitter posts the values as JSON to the form endpoint.
type HTTPSubmitter struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSubmitter creates a submitter for the server at baseURL.
// timeout bounds the whole round trip so a hung server surfaces as a
// transport failure instead of an indefinitely pending submit.
func NewHTTPSubmitter(baseURL string, timeout time.Duration) *HTTPSubmitter {
	return NewHTTPSubmitterWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewHTTPSubmitterWithClient creates a submitter using a caller-owned client
func NewHTTPSubmitterWithClient(baseURL string, client *http.Client) *HTTPSubmitter {
	return &HTTPSubmitter{
		client:   client,
		endpoint: strings.TrimRight(baseURL, "/") + FormPath,
	}
}

// Submit posts values and decodes the response body.
// Every failure to obtain a decodable 200 response wraps ErrTransport.
func (s *HTTPSubmitter) Submit(ctx context.Context, values map[string]any) (domain.SubmitResponse, error) {
	var out domain.SubmitResponse

	payload, err := json.Marshal(values)
	if err != nil {
		return out, fmt.Errorf("%w: encode values: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return out, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	return out, nil
}
