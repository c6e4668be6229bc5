package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionResponse struct {
	SessionId          uuid.UUID `json:"session_id"`
	VisitorAnonymousId string    `json:"visitor_anonymous_id"`
	ExpiresAt          time.Time `json:"expires_at"`
}
