package implementation

import (
	"context"
	"errors"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/mapper"
	"ai-thinkspace-be/internal/model"
	"ai-thinkspace-be/internal/repository/contract"
	"ai-thinkspace-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionStepRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionStepMapper
}

func NewSessionStepRepository(db *gorm.DB) contract.SessionStepRepository {
	return &SessionStepRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionStepMapper(),
	}
}

func (r *SessionStepRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionStepRepositoryImpl) Create(ctx context.Context, step *entity.SessionStep) error {
	m := r.mapper.ToModel(step)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionStepRepositoryImpl) Update(ctx context.Context, step *entity.SessionStep) error {
	m := r.mapper.ToModel(step)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*step = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionStepRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SessionStep{}, id).Error
}

func (r *SessionStepRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.SessionStep{}).Error
}

func (r *SessionStepRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionStep, error) {
	var m model.SessionStep
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionStepRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionStep, error) {
	var models []*model.SessionStep
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionStepRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SessionStep{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
