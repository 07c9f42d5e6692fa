package types

import "time"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	// ResolvedSessionID is the id the gateway reported back; it can differ
	// from SessionID when the agent assigns its own.
	ResolvedSessionID string `json:"resolvedSessionId,omitempty"`
	Reply             string `json:"reply"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionsResponse struct {
	Current SessionInfo   `json:"current"`
	History []SessionInfo `json:"history"`
}

type SwitchRequest struct {
	Name string `json:"name"`
}

type TranscriptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TranscriptResponse struct {
	Session  SessionInfo         `json:"session"`
	Messages []TranscriptMessage `json:"messages"`
}

type SuggestionsResponse struct {
	About   string   `json:"about"`
	Queries []string `json:"queries"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
