package implementation

import (
	"context"
	"errors"
	"time"

	"tribe-chatbot-be/internal/model"
	"tribe-chatbot-be/internal/repository/contract"
	"tribe-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type VisitorRepositoryImpl struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) contract.VisitorRepository {
	return &VisitorRepositoryImpl{db: db}
}

func (r *VisitorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VisitorRepositoryImpl) CreateVisitor(ctx context.Context, visitor *model.Visitor) error {
	return r.db.WithContext(ctx).Create(visitor).Error
}

func (r *VisitorRepositoryImpl) FindVisitor(ctx context.Context, specs ...specification.Specification) (*model.Visitor, error) {
	var m model.Visitor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *VisitorRepositoryImpl) CreateSession(ctx context.Context, session *model.VisitorSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *VisitorRepositoryImpl) FindSession(ctx context.Context, specs ...specification.Specification) (*model.VisitorSession, error) {
	var m model.VisitorSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *VisitorRepositoryImpl) UpdateSession(ctx context.Context, session *model.VisitorSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *VisitorRepositoryImpl) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.VisitorSession{}).Where("expires_at < ?", before).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		// Chat logs belong to their session and go with it.
		if err := tx.Where("visitor_session_id IN ?", ids).Delete(&model.ChatLog{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&model.VisitorSession{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}
