package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatLog is one persisted conversation turn, role "user" or "bot".
type ChatLog struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitorSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	ChatbotId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Role             string    `gorm:"type:varchar(20);not null"`
	Message          string    `gorm:"type:text;not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
