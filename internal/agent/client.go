// Package agent wraps the remote inference endpoint behind a small
// synchronous client. One call, one reply; retries are the caller's problem
// and deliberately not offered.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NoContentReply is returned when the effective payload has no "response"
// field.
const NoContentReply = "No response content received."

// TransportError covers network failures, timeouts and non-2xx gateway
// statuses.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "agent gateway: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// MalformedEnvelopeError reports a gateway body whose JSON, outer or nested,
// could not be parsed.
type MalformedEnvelopeError struct {
	Err error
}

func (e *MalformedEnvelopeError) Error() string {
	return "agent gateway: malformed envelope: " + e.Err.Error()
}
func (e *MalformedEnvelopeError) Unwrap() error { return e.Err }

type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *zap.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

type queryRequest struct {
	UserInput string `json:"user_input"`
	SessionID string `json:"session_id"`
}

// queryPayload is the effective gateway response after envelope resolution.
// Pointers distinguish absent fields from empty ones.
type queryPayload struct {
	Response  *string `json:"response"`
	SessionID *string `json:"session_id"`
}

// Query posts the user input to the gateway and returns the reply text plus
// the session id the gateway resolved. The caller-supplied session id is
// echoed back whenever the gateway omits one or the call fails.
func (c *Client) Query(ctx context.Context, userInput, sessionID string) (string, string, error) {
	body, err := json.Marshal(queryRequest{UserInput: userInput, SessionID: sessionID})
	if err != nil {
		return "", sessionID, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", sessionID, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", sessionID, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sessionID, &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", sessionID, &TransportError{Err: fmt.Errorf("gateway returned %s", resp.Status)}
	}

	env, err := resolveEnvelope(raw)
	if err != nil {
		return "", sessionID, err
	}
	if env.kind == envelopeWrapped {
		c.logger.Debug("unwrapped nested gateway envelope", zap.String("session", sessionID))
	}

	var p queryPayload
	if err := json.Unmarshal(env.payload, &p); err != nil {
		return "", sessionID, &MalformedEnvelopeError{Err: err}
	}

	reply := NoContentReply
	if p.Response != nil {
		reply = *p.Response
	}
	resolved := sessionID
	if p.SessionID != nil {
		resolved = *p.SessionID
	}
	return reply, resolved, nil
}
