package implementation

import (
	"context"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/mapper"
	"ai-thinkspace-be/internal/model"
	"ai-thinkspace-be/internal/repository/contract"
	"ai-thinkspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRevisionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionRevisionMapper
}

func NewSessionRevisionRepository(db *gorm.DB) contract.SessionRevisionRepository {
	return &SessionRevisionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionRevisionMapper(),
	}
}

func (r *SessionRevisionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionRevisionRepositoryImpl) Create(ctx context.Context, revision *entity.SessionRevision) error {
	m := r.mapper.ToModel(revision)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*revision = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionRevisionRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.SessionRevision{}).Error
}

func (r *SessionRevisionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionRevision, error) {
	var models []*model.SessionRevision
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionRevisionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionRevision{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
