package mapper

import (
	"time"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/model"
)

type SessionStepMapper struct{}

func NewSessionStepMapper() *SessionStepMapper {
	return &SessionStepMapper{}
}

func (m *SessionStepMapper) ToEntity(s *model.SessionStep) *entity.SessionStep {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.SessionStep{
		Id:         s.Id,
		SessionId:  s.SessionId,
		StepNumber: s.StepNumber,
		Content:    s.Content,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SessionStepMapper) ToModel(s *entity.SessionStep) *model.SessionStep {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.SessionStep{
		Id:         s.Id,
		SessionId:  s.SessionId,
		StepNumber: s.StepNumber,
		Content:    s.Content,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *SessionStepMapper) ToEntities(steps []*model.SessionStep) []*entity.SessionStep {
	entities := make([]*entity.SessionStep, len(steps))
	for i, s := range steps {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
