package service

import (
	"context"
	"errors"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/pkg/logger"
	"ai-thinkspace-be/internal/repository/memory"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/pkg/events"
	"ai-thinkspace-be/pkg/generation"
	pktNats "ai-thinkspace-be/pkg/nats"
	"ai-thinkspace-be/pkg/stepcontent"
	"ai-thinkspace-be/pkg/toolkit"

	"github.com/google/uuid"
)

// ErrGenerationInFlight is returned when a session already has a generation
// request running. The controller maps it to 409.
var ErrGenerationInFlight = errors.New("a generation request is already in flight for this session")

type IGenerationService interface {
	Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GenerateResponse, error)
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	contextService IContextService
	sessionService ISessionService
	provider       generation.Provider
	inflight       *memory.InflightRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	contextService IContextService,
	sessionService ISessionService,
	provider generation.Provider,
	inflight *memory.InflightRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		contextService: contextService,
		sessionService: sessionService,
		provider:       provider,
		inflight:       inflight,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Generate runs the full pipeline for one session: snapshot the ledger,
// assemble workspace context, call the provider, and persist the result
// atomically. Only one request per session runs at a time; a second caller
// gets ErrGenerationInFlight instead of a queued duplicate.
func (c *generationService) Generate(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.GenerateResponse, error) {
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

	if !c.inflight.TryAcquire(sessionId) {
		return nil, ErrGenerationInFlight
	}
	defer c.inflight.Release(sessionId)

	def, ok := toolkit.Get(toolkit.Type(session.ToolkitType))
	if !ok {
		return nil, nil
	}

	steps, err := uow.SessionStepRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "step_number"},
	)
	if err != nil {
		return nil, err
	}

	request := &generation.Request{
		ToolkitType:  session.ToolkitType,
		ToolkitName:  def.Name,
		ThinkingLens: session.ThinkingLens,
		OutputLabels: generation.OutputLabels{
			Primary:   def.Outputs.Primary,
			Secondary: def.Outputs.Secondary,
			Action:    def.Outputs.Action,
		},
	}
	for _, step := range steps {
		value := stepcontent.Decode(step.Content)
		if value.IsEmpty() {
			continue
		}
		request.Steps = append(request.Steps, generation.StepInput{
			Label:   def.StepLabel(step.StepNumber),
			Content: value.Flatten(),
		})
	}

	// nil means no sibling qualified; the field is omitted from the request
	// entirely in that case.
	workspaceContext, err := c.contextService.AssembleContext(ctx, userId, session.WorkspaceId, sessionId)
	if err != nil {
		return nil, err
	}
	request.WorkspaceContext = workspaceContext

	// The session id is captured before the provider call; the save below is
	// keyed by it, so a session deleted mid-flight just makes the save a
	// silent discard.
	response, err := c.provider.Generate(ctx, request)
	if err != nil {
		c.logger.Error("generation", "provider call failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		c.publishFailed(ctx, userId, sessionId, err)
		return nil, err
	}

	saved, err := c.sessionService.SaveAIOutputs(ctx, userId, sessionId, &dto.SaveAIOutputsInput{
		Insights:        response.Insights,
		SentenceOfTruth: response.SentenceOfTruth,
		NecessaryMoves:  response.NecessaryMoves,
	})
	if err != nil {
		c.publishFailed(ctx, userId, sessionId, err)
		return nil, err
	}
	if saved == nil {
		// Session vanished while the provider was working. Nothing persisted.
		return nil, nil
	}

	if c.eventPublisher != nil {
		_ = c.eventPublisher.Publish(ctx, events.NewGenerationCompleted(userId, sessionId, session.WorkspaceId))
	}

	return &dto.GenerateResponse{
		SessionId: sessionId,
		Insights:  response.Insights,
		SentenceOfTruth: dto.SentenceResponse{
			Content:  saved.Content,
			Source:   saved.Source,
			IsLocked: saved.IsLocked,
		},
		NecessaryMoves: response.NecessaryMoves,
		Extras:         response.Extras,
	}, nil
}

func (c *generationService) publishFailed(ctx context.Context, userId, sessionId uuid.UUID, cause error) {
	if c.eventPublisher == nil {
		return
	}
	_ = c.eventPublisher.Publish(ctx, events.NewGenerationFailed(userId, sessionId, cause.Error()))
}
