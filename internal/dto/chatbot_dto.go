package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatbotRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type CreateChatbotResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateChatbotRequest struct {
	Id          uuid.UUID
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ChatbotResponse struct {
	Id            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	CompanyId     uuid.UUID  `json:"company_id"`
	IsTrained     bool       `json:"is_trained"`
	LastTrainedAt *time.Time `json:"last_trained_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TrainFromURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}
