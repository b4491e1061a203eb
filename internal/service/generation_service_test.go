package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/memory"
	"ai-thinkspace-be/pkg/generation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	store       *memStore
	service     IGenerationService
	sessions    ISessionService
	provider    *fakeProvider
	inflight    *memory.InflightRepository
	userId      uuid.UUID
	workspaceId uuid.UUID
	sessionId   uuid.UUID
}

func newGenerationFixture(t *testing.T) *generationFixture {
	t.Helper()

	store := newMemStore()
	factory := newFakeFactory(store)
	publisher := &fakePublisher{}
	selection := NewSelectionService(nil)
	sessions := NewSessionService(factory, publisher, selection)
	contextSvc := NewContextService(factory)
	provider := &fakeProvider{
		response: &generation.Response{
			Insights:        []string{"generated insight"},
			SentenceOfTruth: "Generated sentence.",
			NecessaryMoves:  []string{"generated move"},
		},
	}
	inflight := memory.NewInflightRepository()

	svc := NewGenerationService(factory, contextSvc, sessions, provider, inflight, nil, nopLogger{})

	userId := uuid.New()
	workspaceId := uuid.New()
	store.workspaces[workspaceId] = &entity.Workspace{
		Id: workspaceId, Title: "W", UserId: userId, CreatedAt: time.Now(),
	}
	sessionId := seedSession(store, userId, workspaceId, "insight_stack", time.Now())
	seedStep(store, sessionId, 1, "a long enough observation about churn")
	seedStep(store, sessionId, 2, "the surprise was the timing")

	return &generationFixture{
		store:       store,
		service:     svc,
		sessions:    sessions,
		provider:    provider,
		inflight:    inflight,
		userId:      userId,
		workspaceId: workspaceId,
		sessionId:   sessionId,
	}
}

func TestGeneratePersistsOutputs(t *testing.T) {
	f := newGenerationFixture(t)

	res, err := f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{"generated insight"}, res.Insights)
	assert.Equal(t, "Generated sentence.", res.SentenceOfTruth.Content)
	assert.Equal(t, entity.SentenceSourceGenerated, res.SentenceOfTruth.Source)

	session := f.store.sessions[f.sessionId]
	assert.Equal(t, "Generated sentence.", session.SentenceOfTruth.Content)
	assert.Equal(t, []string{"generated move"}, session.NecessaryMoves)

	req := f.provider.lastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "insight_stack", req.ToolkitType)
	assert.Equal(t, "automatic", req.ThinkingLens)
	require.Len(t, req.Steps, 2)
	assert.Equal(t, "What did you observe?", req.Steps[0].Label)
	assert.Nil(t, req.WorkspaceContext, "single-session workspace sends no context")
}

func TestGenerateIncludesSiblingContext(t *testing.T) {
	f := newGenerationFixture(t)

	sibling := seedSession(f.store, f.userId, f.workspaceId, "pov_generator", time.Now().Add(-time.Hour))
	seedStep(f.store, sibling, 1, "investor audience")

	_, err := f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.NoError(t, err)

	req := f.provider.lastRequest()
	require.Len(t, req.WorkspaceContext, 1)
	assert.Equal(t, "pov_generator", req.WorkspaceContext[0].Toolkit)
}

func TestGenerateProviderFailureLeavesSessionUntouched(t *testing.T) {
	f := newGenerationFixture(t)
	f.provider.err = errors.New("endpoint timeout")

	before := *f.store.sessions[f.sessionId]

	res, err := f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.Error(t, err)
	assert.Nil(t, res)

	after := f.store.sessions[f.sessionId]
	assert.Equal(t, before.SentenceOfTruth, after.SentenceOfTruth)
	assert.Equal(t, before.Insights, after.Insights)
	assert.Equal(t, before.NecessaryMoves, after.NecessaryMoves)

	// The guard is released, so a retry goes through once the provider is back.
	f.provider.err = nil
	_, err = f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.NoError(t, err)
}

func TestGenerateRejectsConcurrentRequest(t *testing.T) {
	f := newGenerationFixture(t)

	var innerErr error
	f.provider.onCall = func() {
		f.provider.onCall = nil // only reenter once
		_, innerErr = f.service.Generate(context.Background(), f.userId, f.sessionId)
	}

	_, err := f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.NoError(t, err)
	assert.ErrorIs(t, innerErr, ErrGenerationInFlight)
}

func TestGenerateLockedSentenceKept(t *testing.T) {
	f := newGenerationFixture(t)
	ctx := context.Background()

	_, err := f.sessions.SetSentence(ctx, f.userId, &dto.SetSentenceRequest{Id: f.sessionId, Content: "Hands off."})
	require.NoError(t, err)
	_, err = f.sessions.ToggleLock(ctx, f.userId, f.sessionId)
	require.NoError(t, err)

	res, err := f.service.Generate(ctx, f.userId, f.sessionId)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Hands off.", res.SentenceOfTruth.Content, "response shows the kept sentence, not the generated one")
	assert.True(t, res.SentenceOfTruth.IsLocked)
	assert.Equal(t, []string{"generated insight"}, res.Insights, "insights still refresh under a lock")
}

func TestGenerateSessionDeletedMidFlight(t *testing.T) {
	f := newGenerationFixture(t)

	f.provider.onCall = func() {
		f.store.mu.Lock()
		delete(f.store.sessions, f.sessionId)
		f.store.mu.Unlock()
	}

	res, err := f.service.Generate(context.Background(), f.userId, f.sessionId)
	require.NoError(t, err)
	assert.Nil(t, res, "response for a vanished session is discarded")
	assert.Empty(t, f.store.sessions, "nothing is resurrected")
}

func TestGenerateUnknownSession(t *testing.T) {
	f := newGenerationFixture(t)

	res, err := f.service.Generate(context.Background(), f.userId, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Nil(t, f.provider.lastRequest(), "provider is never called for a missing session")
}
