package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/pkg/stepcontent"
	"ai-thinkspace-be/pkg/toolkit"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Exists(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error)
	ApplyStepWrite(ctx context.Context, sessionId uuid.UUID, stepNumber int, content string) error
	SetLens(ctx context.Context, userId uuid.UUID, req *dto.SetLensRequest) (*dto.SetLensResponse, error)
	SaveAIOutputs(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, input *dto.SaveAIOutputsInput) (*dto.SentenceResponse, error)
	SetSentence(ctx context.Context, userId uuid.UUID, req *dto.SetSentenceRequest) (*dto.SetSentenceResponse, error)
	ToggleLock(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ToggleLockResponse, error)
}

type sessionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	selection        ISelectionService
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	selection ISelectionService,
) ISessionService {
	return &sessionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		selection:        selection,
	}
}

func (c *sessionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if !toolkit.IsValidType(toolkit.Type(req.ToolkitType)) {
		return nil, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	// The parent workspace must exist and belong to the caller.
	workspace, err := uow.WorkspaceRepository().FindOne(ctx,
		specification.ByID{ID: req.WorkspaceId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, nil
	}

	session := entity.Session{
		Id:             uuid.New(),
		WorkspaceId:    req.WorkspaceId,
		UserId:         userId,
		ToolkitType:    req.ToolkitType,
		ThinkingLens:   string(toolkit.LensAutomatic),
		Insights:       []string{},
		NecessaryMoves: []string{},
		CreatedAt:      time.Now(),
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id: session.Id,
	}, nil
}

func (c *sessionService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	steps, err := uow.SessionStepRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OrderBy{Field: "step_number"},
	)
	if err != nil {
		return nil, err
	}

	def, _ := toolkit.Get(toolkit.Type(session.ToolkitType))

	stepResponses := make([]*dto.StepResponse, 0, len(steps))
	ledger := make(map[int]string, len(steps))
	for _, step := range steps {
		ledger[step.StepNumber] = step.Content
		value := stepcontent.Decode(step.Content)

		label := "Step"
		complete := false
		if def != nil {
			label = def.StepLabel(step.StepNumber)
			complete = def.IsStepComplete(step.StepNumber, value.Flatten())
		}

		stepResponses = append(stepResponses, &dto.StepResponse{
			StepNumber: step.StepNumber,
			Label:      label,
			Content:    step.Content,
			Structured: value.Kind == stepcontent.KindStructured,
			IsComplete: complete,
			UpdatedAt:  step.UpdatedAt,
		})
	}

	res := &dto.ShowSessionResponse{
		Id:           session.Id,
		WorkspaceId:  session.WorkspaceId,
		ToolkitType:  session.ToolkitType,
		ThinkingLens: session.ThinkingLens,
		Steps:        stepResponses,
		SentenceOfTruth: dto.SentenceResponse{
			Content:  session.SentenceOfTruth.Content,
			Source:   session.SentenceOfTruth.Source,
			IsLocked: session.SentenceOfTruth.IsLocked,
		},
		Insights:       session.Insights,
		NecessaryMoves: session.NecessaryMoves,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
	if def != nil {
		res.ToolkitName = def.Name
		res.CompleteSteps = def.CompleteCount(flattenLedger(ledger))
		res.ReadyForGeneration = def.ReadyForGeneration(flattenLedger(ledger))
	}

	return res, nil
}

func (c *sessionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	// Clear the active pointer before removing anything.
	if err := c.selection.ClearSession(ctx, userId, id); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SessionStepRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.SessionRevisionRepository().DeleteBySessionId(ctx, id); err != nil {
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// Exists reports whether the session exists and belongs to the caller. The
// autosave path checks ownership once at queue time; the debounced write
// itself runs without a user in scope.
func (c *sessionService) Exists(ctx context.Context, userId uuid.UUID, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// ApplyStepWrite upserts one ledger row. Writing the same content twice is a
// no-op beyond the timestamp refresh. A session deleted between queue and
// commit makes the write a silent discard.
func (c *sessionService) ApplyStepWrite(ctx context.Context, sessionId uuid.UUID, stepNumber int, content string) error {
	if stepNumber < 1 {
		return nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	now := time.Now()

	step, err := uow.SessionStepRepository().FindOne(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ByStepNumber{StepNumber: stepNumber},
	)
	if err != nil {
		return err
	}

	if step == nil {
		step = &entity.SessionStep{
			Id:         uuid.New(),
			SessionId:  sessionId,
			StepNumber: stepNumber,
			Content:    content,
			CreatedAt:  now,
		}
		if err := uow.SessionStepRepository().Create(ctx, step); err != nil {
			return err
		}
	} else {
		step.Content = content
		step.UpdatedAt = &now
		if err := uow.SessionStepRepository().Update(ctx, step); err != nil {
			return err
		}
	}

	session.UpdatedAt = &now
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}

	// Feed the revision pipeline so autosave history catches up out of band.
	msg := dto.StepRevisionMessage{
		SessionId:  sessionId,
		StepNumber: stepNumber,
		Content:    content,
	}
	msgJson, _ := json.Marshal(msg)
	return c.publisherService.Publish(ctx, msgJson)
}

// SetLens is pure assignment; changing the lens never triggers regeneration
// by itself.
func (c *sessionService) SetLens(ctx context.Context, userId uuid.UUID, req *dto.SetLensRequest) (*dto.SetLensResponse, error) {
	if !toolkit.IsValidLens(toolkit.Lens(req.ThinkingLens)) {
		return nil, nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	now := time.Now()
	session.ThinkingLens = req.ThinkingLens
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SetLensResponse{
		Id:           session.Id,
		ThinkingLens: session.ThinkingLens,
	}, nil
}

// SaveAIOutputs persists a generation result. A locked sentence of truth is
// never replaced; insights and necessary moves always are. Last generation
// wins on an unlocked sentence, manual edits included: locking is the only
// protection mechanism.
func (c *sessionService) SaveAIOutputs(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, input *dto.SaveAIOutputsInput) (*dto.SentenceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	now := time.Now()
	session.Insights = input.Insights
	session.NecessaryMoves = input.NecessaryMoves
	if !session.SentenceOfTruth.IsLocked {
		session.SentenceOfTruth.Content = input.SentenceOfTruth
		session.SentenceOfTruth.Source = entity.SentenceSourceGenerated
	}
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SentenceResponse{
		Content:  session.SentenceOfTruth.Content,
		Source:   session.SentenceOfTruth.Source,
		IsLocked: session.SentenceOfTruth.IsLocked,
	}, nil
}

// SetSentence is the direct manual edit path. It respects the lock: the UI
// must unlock first, and the store enforces it.
func (c *sessionService) SetSentence(ctx context.Context, userId uuid.UUID, req *dto.SetSentenceRequest) (*dto.SetSentenceResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.SentenceOfTruth.IsLocked {
		return nil, nil
	}

	now := time.Now()
	session.SentenceOfTruth.Content = req.Content
	session.SentenceOfTruth.Source = entity.SentenceSourceManual
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SetSentenceResponse{
		Id: session.Id,
		Sentence: dto.SentenceResponse{
			Content:  session.SentenceOfTruth.Content,
			Source:   session.SentenceOfTruth.Source,
			IsLocked: session.SentenceOfTruth.IsLocked,
		},
	}, nil
}

func (c *sessionService) ToggleLock(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ToggleLockResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	now := time.Now()
	session.SentenceOfTruth.IsLocked = !session.SentenceOfTruth.IsLocked
	session.UpdatedAt = &now

	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.ToggleLockResponse{
		Id:       session.Id,
		IsLocked: session.SentenceOfTruth.IsLocked,
	}, nil
}

// flattenLedger applies the canonical decode to every ledger entry so
// completeness is judged on readable text, not raw JSON length.
func flattenLedger(ledger map[int]string) map[int]string {
	flattened := make(map[int]string, len(ledger))
	for number, content := range ledger {
		flattened[number] = stepcontent.Decode(content).Flatten()
	}
	return flattened
}
