package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chatbot struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string         `gorm:"type:varchar(255);not null"`
	Description   string         `gorm:"type:text"`
	CompanyId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	IsTrained     bool           `gorm:"default:false"`
	LastTrainedAt *time.Time
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Chatbot) TableName() string {
	return "chatbots"
}
