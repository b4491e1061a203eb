package mapper

import (
	"time"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/model"

	"gorm.io/gorm"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}

	var deletedAt *time.Time
	if w.DeletedAt.Valid {
		t := w.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workspace{
		Id:          w.Id,
		Title:       w.Title,
		Description: w.Description,
		UserId:      w.UserId,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   w.DeletedAt.Valid,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if w.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *w.DeletedAt, Valid: true}
	} else if w.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workspace{
		Id:          w.Id,
		Title:       w.Title,
		Description: w.Description,
		UserId:      w.UserId,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *WorkspaceMapper) ToEntities(workspaces []*model.Workspace) []*entity.Workspace {
	entities := make([]*entity.Workspace, len(workspaces))
	for i, w := range workspaces {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
