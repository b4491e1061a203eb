package service

import (
	"context"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/pkg/events"
	pktNats "ai-thinkspace-be/pkg/nats"
	"ai-thinkspace-be/pkg/toolkit"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllWorkspacesResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowWorkspaceResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.UpdateWorkspaceResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type workspaceService struct {
	uowFactory     unitofwork.RepositoryFactory
	selection      ISelectionService
	eventPublisher *pktNats.Publisher
}

func NewWorkspaceService(
	uowFactory unitofwork.RepositoryFactory,
	selection ISelectionService,
	eventPublisher *pktNats.Publisher,
) IWorkspaceService {
	return &workspaceService{
		uowFactory:     uowFactory,
		selection:      selection,
		eventPublisher: eventPublisher,
	}
}

func (c *workspaceService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllWorkspacesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0)
	result := make([]*dto.GetAllWorkspacesResponse, 0)
	for _, workspace := range workspaces {
		result = append(result, &dto.GetAllWorkspacesResponse{
			Id:          workspace.Id,
			Title:       workspace.Title,
			Description: workspace.Description,
			CreatedAt:   workspace.CreatedAt,
			UpdatedAt:   workspace.UpdatedAt,
			Sessions:    make([]*dto.WorkspaceSessionSummary, 0),
		})
		ids = append(ids, workspace.Id)
	}

	if len(ids) == 0 {
		return result, nil
	}

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(result); i++ {
		for j := 0; j < len(sessions); j++ {
			if sessions[j].WorkspaceId == result[i].Id {
				result[i].Sessions = append(result[i].Sessions, sessionSummary(sessions[j]))
			}
		}
	}

	return result, nil
}

func (c *workspaceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	workspace := entity.Workspace{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.WorkspaceRepository().Create(ctx, &workspace); err != nil {
		return nil, err
	}

	return &dto.CreateWorkspaceResponse{
		Id: workspace.Id,
	}, nil
}

func (c *workspaceService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowWorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, nil
	}

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: id},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.WorkspaceSessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, sessionSummary(session))
	}

	return &dto.ShowWorkspaceResponse{
		Id:          workspace.Id,
		Title:       workspace.Title,
		Description: workspace.Description,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
		Sessions:    summaries,
	}, nil
}

func (c *workspaceService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.UpdateWorkspaceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, nil
	}

	now := time.Now()
	workspace.Title = req.Title
	workspace.Description = req.Description
	workspace.UpdatedAt = &now

	if err := uow.WorkspaceRepository().Update(ctx, workspace); err != nil {
		return nil, err
	}

	return &dto.UpdateWorkspaceResponse{
		Id: workspace.Id,
	}, nil
}

// Delete removes a workspace and everything it owns. The active selection is
// cleared BEFORE any row is touched so a concurrently rendering view can
// never hold a pointer to a half-deleted workspace.
func (c *workspaceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if workspace == nil {
		return nil
	}

	// Clear the active pointer before anything disappears.
	if err := c.selection.ClearWorkspace(ctx, userId, id); err != nil {
		return err
	}

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: id},
	)
	if err != nil {
		return err
	}

	// Cascade inside one transaction: ledger rows, revisions, sessions,
	// then the workspace itself.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, session := range sessions {
		if err := uow.SessionStepRepository().DeleteBySessionId(ctx, session.Id); err != nil {
			return err
		}
		if err := uow.SessionRevisionRepository().DeleteBySessionId(ctx, session.Id); err != nil {
			return err
		}
	}

	if err := uow.SessionRepository().DeleteByWorkspaceId(ctx, id); err != nil {
		return err
	}

	if err := uow.WorkspaceRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if c.eventPublisher != nil {
		// Best effort; the deletion itself already succeeded.
		_ = c.eventPublisher.Publish(ctx, events.NewWorkspaceDeleted(userId, id))
	}

	return nil
}

func sessionSummary(session *entity.Session) *dto.WorkspaceSessionSummary {
	name := session.ToolkitType
	if def, ok := toolkit.Get(toolkit.Type(session.ToolkitType)); ok {
		name = def.Name
	}
	return &dto.WorkspaceSessionSummary{
		Id:           session.Id,
		ToolkitType:  session.ToolkitType,
		ToolkitName:  name,
		ThinkingLens: session.ThinkingLens,
		HasSentence:  session.SentenceOfTruth.Content != "",
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}
