package service

import (
	"context"
	"testing"
	"time"

	"ai-thinkspace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(store *memStore, userId, workspaceId uuid.UUID, toolkitType string, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	store.sessions[id] = &entity.Session{
		Id:             id,
		WorkspaceId:    workspaceId,
		UserId:         userId,
		ToolkitType:    toolkitType,
		ThinkingLens:   "automatic",
		Insights:       []string{},
		NecessaryMoves: []string{},
		CreatedAt:      createdAt,
	}
	return id
}

func seedStep(store *memStore, sessionId uuid.UUID, number int, content string) {
	id := uuid.New()
	store.steps[id] = &entity.SessionStep{
		Id:         id,
		SessionId:  sessionId,
		StepNumber: number,
		Content:    content,
		CreatedAt:  time.Now(),
	}
}

func TestAssembleContextExcludesRequester(t *testing.T) {
	store := newMemStore()
	svc := NewContextService(newFakeFactory(store))
	userId := uuid.New()
	workspaceId := uuid.New()

	requester := seedSession(store, userId, workspaceId, "pov_generator", time.Now())
	sibling := seedSession(store, userId, workspaceId, "insight_stack", time.Now().Add(-time.Hour))
	seedStep(store, requester, 1, "my own content must not appear")
	seedStep(store, sibling, 1, "sibling observation")
	store.sessions[sibling].SentenceOfTruth = entity.SentenceOfTruth{
		Content: "The sibling's truth.",
		Source:  entity.SentenceSourceGenerated,
	}

	entries, err := svc.AssembleContext(context.Background(), userId, workspaceId, requester)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "insight_stack", entry.Toolkit)
	assert.Equal(t, "Insight Stack", entry.ToolkitName)
	assert.Equal(t, "The sibling's truth.", entry.SentenceOfTruth)
	require.Len(t, entry.Steps, 1)
	assert.Equal(t, "What did you observe?", entry.Steps[0].Label)
	assert.Equal(t, "sibling observation", entry.Steps[0].Content)
}

func TestAssembleContextNilWhenNothingQualifies(t *testing.T) {
	store := newMemStore()
	svc := NewContextService(newFakeFactory(store))
	userId := uuid.New()
	workspaceId := uuid.New()

	requester := seedSession(store, userId, workspaceId, "insight_stack", time.Now())

	// A sibling with no outputs and only blank steps contributes nothing.
	empty := seedSession(store, userId, workspaceId, "pov_generator", time.Now())
	seedStep(store, empty, 1, "   ")

	entries, err := svc.AssembleContext(context.Background(), userId, workspaceId, requester)
	require.NoError(t, err)
	assert.Nil(t, entries, "empty context must be nil, not an empty slice")
}

func TestAssembleContextInsightsAloneDoNotQualify(t *testing.T) {
	store := newMemStore()
	svc := NewContextService(newFakeFactory(store))
	userId := uuid.New()
	workspaceId := uuid.New()

	requester := seedSession(store, userId, workspaceId, "insight_stack", time.Now())

	// A sibling can hold insights or moves without a sentence or any filled
	// step, e.g. after a generation that returned an empty sentence. It has
	// nothing anchoring the outputs and must stay out of the context.
	sibling := seedSession(store, userId, workspaceId, "pov_generator", time.Now())
	store.sessions[sibling].Insights = []string{"an unanchored insight"}
	store.sessions[sibling].NecessaryMoves = []string{"an unanchored move"}

	entries, err := svc.AssembleContext(context.Background(), userId, workspaceId, requester)
	require.NoError(t, err)
	assert.Nil(t, entries, "insights without a sentence or filled step must not qualify")
}

func TestAssembleContextFlattensStructuredSteps(t *testing.T) {
	store := newMemStore()
	svc := NewContextService(newFakeFactory(store))
	userId := uuid.New()
	workspaceId := uuid.New()

	requester := seedSession(store, userId, workspaceId, "insight_stack", time.Now())
	sibling := seedSession(store, userId, workspaceId, "metric_tree", time.Now().Add(-time.Minute))
	seedStep(store, sibling, 2, `[{"label":"Activation","weight":3}]`)

	entries, err := svc.AssembleContext(context.Background(), userId, workspaceId, requester)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Steps, 1)
	assert.Equal(t, "- Activation, weight: 3", entries[0].Steps[0].Content, "context carries readable text, not raw JSON")
}

func TestAssembleContextScopedToWorkspaceAndUser(t *testing.T) {
	store := newMemStore()
	svc := NewContextService(newFakeFactory(store))
	userId := uuid.New()
	workspaceId := uuid.New()

	requester := seedSession(store, userId, workspaceId, "insight_stack", time.Now())

	otherWorkspace := seedSession(store, userId, uuid.New(), "pov_generator", time.Now())
	seedStep(store, otherWorkspace, 1, "different workspace")

	otherUser := seedSession(store, uuid.New(), workspaceId, "pov_generator", time.Now())
	seedStep(store, otherUser, 1, "different user")

	entries, err := svc.AssembleContext(context.Background(), userId, workspaceId, requester)
	require.NoError(t, err)
	assert.Nil(t, entries)
}
