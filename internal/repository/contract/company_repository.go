package contract

import (
	"context"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Company, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Company, error)
}
