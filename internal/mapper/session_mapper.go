package mapper

import (
	"encoding/json"
	"time"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:           s.Id,
		WorkspaceId:  s.WorkspaceId,
		UserId:       s.UserId,
		ToolkitType:  s.ToolkitType,
		ThinkingLens: s.ThinkingLens,
		SentenceOfTruth: entity.SentenceOfTruth{
			Content:  s.SentenceOfTruth,
			Source:   s.SentenceSource,
			IsLocked: s.SentenceLocked,
		},
		Insights:       decodeStringList(s.Insights),
		NecessaryMoves: decodeStringList(s.NecessaryMoves),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      s.DeletedAt.Valid,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:              s.Id,
		WorkspaceId:     s.WorkspaceId,
		UserId:          s.UserId,
		ToolkitType:     s.ToolkitType,
		ThinkingLens:    s.ThinkingLens,
		SentenceOfTruth: s.SentenceOfTruth.Content,
		SentenceSource:  s.SentenceOfTruth.Source,
		SentenceLocked:  s.SentenceOfTruth.IsLocked,
		Insights:        encodeStringList(s.Insights),
		NecessaryMoves:  encodeStringList(s.NecessaryMoves),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

// decodeStringList tolerates malformed stored JSON by returning an empty
// list; generated output lists are replaced wholesale on the next save.
func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}
	}
	return list
}

func encodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
