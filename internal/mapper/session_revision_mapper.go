package mapper

import (
	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/model"
)

type SessionRevisionMapper struct{}

func NewSessionRevisionMapper() *SessionRevisionMapper {
	return &SessionRevisionMapper{}
}

func (m *SessionRevisionMapper) ToEntity(r *model.SessionRevision) *entity.SessionRevision {
	if r == nil {
		return nil
	}
	return &entity.SessionRevision{
		Id:         r.Id,
		SessionId:  r.SessionId,
		StepNumber: r.StepNumber,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *SessionRevisionMapper) ToModel(r *entity.SessionRevision) *model.SessionRevision {
	if r == nil {
		return nil
	}
	return &model.SessionRevision{
		Id:         r.Id,
		SessionId:  r.SessionId,
		StepNumber: r.StepNumber,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *SessionRevisionMapper) ToEntities(revisions []*model.SessionRevision) []*entity.SessionRevision {
	entities := make([]*entity.SessionRevision, len(revisions))
	for i, r := range revisions {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
