package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	SessionId          *uuid.UUID `json:"session_id"`
	VisitorAnonymousId string     `json:"visitor_anonymous_id"`
	Message            string     `json:"message" validate:"required"`
}

type SendChatResponse struct {
	Reply     string    `json:"reply"`
	SessionId uuid.UUID `json:"session_id"`
	Sources   []string  `json:"sources"`
}

// QueryResult is the core query contract: an answer string (always present,
// even for the degenerate "no knowledge" reply) plus the originating document
// or URL per retrieved chunk.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type ChatHistoryResponse struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
