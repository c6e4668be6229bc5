package model

import (
	"time"

	"github.com/google/uuid"
)

type Visitor struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AnonymousId string    `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Visitor) TableName() string {
	return "visitors"
}

type VisitorSession struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitorId uuid.UUID `gorm:"type:uuid;not null;index"`
	ChatbotId uuid.UUID `gorm:"type:uuid;not null;index"`
	StartedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"index"`
}

func (VisitorSession) TableName() string {
	return "visitor_sessions"
}
