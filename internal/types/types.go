package types

import (
	"softsell-backend/internal/chat"
	"softsell-backend/internal/leads"
)

type ChatRequest struct {
	Message string `json:"message"`
}

type PredefinedRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	SessionID string         `json:"sessionId"`
	Reply     string         `json:"reply"`
	Source    chat.Source    `json:"source,omitempty"`
	Messages  []chat.Message `json:"messages"`
}

type TranscriptResponse struct {
	SessionID string         `json:"sessionId"`
	Typing    bool           `json:"typing"`
	Messages  []chat.Message `json:"messages"`
}

type FieldEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type FormResponse struct {
	SessionID string         `json:"sessionId"`
	Form      leads.Snapshot `json:"form"`
}

type SubmitResponse struct {
	Submitted bool           `json:"submitted"`
	Message   string         `json:"message,omitempty"`
	Form      leads.Snapshot `json:"form"`
}

type LeadResponse struct {
	Submitted bool           `json:"submitted"`
	Message   string         `json:"message,omitempty"`
	Errors    leads.ErrorMap `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	ChatMode string `json:"chatMode"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// WSInbound is what the chat widget sends over the websocket.
type WSInbound struct {
	Type string `json:"type"` // "message" | "predefined"
	Text string `json:"text"`
}

// WSOutbound is what the server pushes: one frame per turn event, plus a
// "history" frame on connect and "error" frames for bad input.
type WSOutbound struct {
	Type     string         `json:"type"`
	Message  *chat.Message  `json:"message,omitempty"`
	Source   chat.Source    `json:"source,omitempty"`
	Messages []chat.Message `json:"messages,omitempty"`
	Error    string         `json:"error,omitempty"`
}
