package service

import (
	"context"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/pkg/generation"
	"ai-thinkspace-be/pkg/stepcontent"
	"ai-thinkspace-be/pkg/toolkit"

	"github.com/google/uuid"
)

type IContextService interface {
	AssembleContext(ctx context.Context, userId uuid.UUID, workspaceId uuid.UUID, excludeSessionId uuid.UUID) ([]generation.ContextEntry, error)
}

type contextService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewContextService(uowFactory unitofwork.RepositoryFactory) IContextService {
	return &contextService{uowFactory: uowFactory}
}

// AssembleContext gathers the distilled output of every sibling session in
// the workspace so a generation request carries cross-session context. The
// requesting session is always excluded. Returns nil, not an empty slice,
// when no sibling has anything to contribute: callers key the "include
// context" decision on nil.
func (c *contextService) AssembleContext(ctx context.Context, userId uuid.UUID, workspaceId uuid.UUID, excludeSessionId uuid.UUID) ([]generation.ContextEntry, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	var entries []generation.ContextEntry
	for _, session := range sessions {
		if session.Id == excludeSessionId {
			continue
		}

		steps, err := uow.SessionStepRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.OrderBy{Field: "step_number"},
		)
		if err != nil {
			return nil, err
		}

		entry, ok := buildContextEntry(session, steps)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// buildContextEntry distills one sibling session. A session qualifies only
// when it has a sentence of truth or at least one filled step; insights and
// moves ride along but never qualify a session on their own.
func buildContextEntry(session *entity.Session, steps []*entity.SessionStep) (generation.ContextEntry, bool) {
	entry := generation.ContextEntry{
		Toolkit:         session.ToolkitType,
		SentenceOfTruth: session.SentenceOfTruth.Content,
		Insights:        session.Insights,
		NecessaryMoves:  session.NecessaryMoves,
	}

	def, known := toolkit.Get(toolkit.Type(session.ToolkitType))
	if known {
		entry.ToolkitName = def.Name
	}

	for _, step := range steps {
		value := stepcontent.Decode(step.Content)
		if value.IsEmpty() {
			continue
		}

		label := toolkit.GenericStepLabel(step.StepNumber)
		if known {
			label = def.StepLabel(step.StepNumber)
		}
		entry.Steps = append(entry.Steps, generation.StepInput{
			Label:   label,
			Content: value.Flatten(),
		})
	}

	if entry.SentenceOfTruth == "" && len(entry.Steps) == 0 {
		return generation.ContextEntry{}, false
	}
	return entry, true
}
