package contract

import (
	"context"
	"time"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/specification"
)

type VisitorRepository interface {
	CreateVisitor(ctx context.Context, visitor *model.Visitor) error
	FindVisitor(ctx context.Context, specs ...specification.Specification) (*model.Visitor, error)
	CreateSession(ctx context.Context, session *model.VisitorSession) error
	FindSession(ctx context.Context, specs ...specification.Specification) (*model.VisitorSession, error)
	UpdateSession(ctx context.Context, session *model.VisitorSession) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)
}
