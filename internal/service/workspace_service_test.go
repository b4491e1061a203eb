package service

import (
	"context"
	"testing"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceFixture struct {
	store     *memStore
	service   IWorkspaceService
	selection ISelectionService
	userId    uuid.UUID
}

func newWorkspaceFixture(t *testing.T) *workspaceFixture {
	t.Helper()

	store := newMemStore()
	selection := NewSelectionService(nil)
	factory := newFakeFactory(store)

	return &workspaceFixture{
		store:     store,
		service:   NewWorkspaceService(factory, selection, nil),
		selection: selection,
		userId:    uuid.New(),
	}
}

func TestCreateAndShowWorkspace(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.userId, &dto.CreateWorkspaceRequest{
		Title:       "Q3 planning",
		Description: "Everything about the Q3 push",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	res, err := f.service.Show(ctx, f.userId, created.Id)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Q3 planning", res.Title)
	assert.Empty(t, res.Sessions)
}

func TestShowWorkspaceListsSessions(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.userId, &dto.CreateWorkspaceRequest{Title: "W"})
	require.NoError(t, err)

	sessionId := seedSession(f.store, f.userId, created.Id, "belief_mapper", time.Now())
	f.store.sessions[sessionId].SentenceOfTruth.Content = "A belief worth keeping."

	res, err := f.service.Show(ctx, f.userId, created.Id)
	require.NoError(t, err)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "Belief Mapper", res.Sessions[0].ToolkitName)
	assert.True(t, res.Sessions[0].HasSentence)
}

func TestUpdateWorkspace(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.userId, &dto.CreateWorkspaceRequest{Title: "Old"})
	require.NoError(t, err)

	_, err = f.service.Update(ctx, f.userId, &dto.UpdateWorkspaceRequest{Id: created.Id, Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", f.store.workspaces[created.Id].Title)

	// Another user cannot touch it.
	res, err := f.service.Update(ctx, uuid.New(), &dto.UpdateWorkspaceRequest{Id: created.Id, Title: "Hijacked"})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "New", f.store.workspaces[created.Id].Title)
}

func TestDeleteWorkspaceCascades(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.userId, &dto.CreateWorkspaceRequest{Title: "Doomed"})
	require.NoError(t, err)

	s1 := seedSession(f.store, f.userId, created.Id, "insight_stack", time.Now())
	s2 := seedSession(f.store, f.userId, created.Id, "pov_generator", time.Now())
	seedStep(f.store, s1, 1, "content")
	seedStep(f.store, s2, 1, "content")
	revId := uuid.New()
	f.store.revisions[revId] = &entity.SessionRevision{
		Id: revId, SessionId: s1, StepNumber: 1, Content: "old", CreatedAt: time.Now(),
	}

	_, err = f.selection.Set(ctx, f.userId, &dto.SetSelectionRequest{
		WorkspaceId: &created.Id,
		SessionId:   &s1,
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, f.userId, created.Id))

	assert.Empty(t, f.store.workspaces)
	assert.Empty(t, f.store.sessions)
	assert.Empty(t, f.store.steps)
	assert.Empty(t, f.store.revisions)

	sel, err := f.selection.Get(ctx, f.userId)
	require.NoError(t, err)
	assert.Nil(t, sel.WorkspaceId, "workspace pointer cleared before deletion")
	assert.Nil(t, sel.SessionId, "session pointer goes with it")
}

func TestDeleteWorkspaceForeignUserIsNoop(t *testing.T) {
	f := newWorkspaceFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.userId, &dto.CreateWorkspaceRequest{Title: "Mine"})
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, uuid.New(), created.Id))
	assert.Len(t, f.store.workspaces, 1)
}

// End-to-end shape of the cross-session story: one filled session, one fresh
// one, and the fresh session's generation request carries only the filled
// sibling as context.
func TestWorkspaceCrossSessionScenario(t *testing.T) {
	store := newMemStore()
	factory := newFakeFactory(store)
	publisher := &fakePublisher{}
	selection := NewSelectionService(nil)
	sessions := NewSessionService(factory, publisher, selection)
	contextSvc := NewContextService(factory)
	ctx := context.Background()
	userId := uuid.New()

	workspaces := NewWorkspaceService(factory, selection, nil)
	ws, err := workspaces.Create(ctx, userId, &dto.CreateWorkspaceRequest{Title: "Story"})
	require.NoError(t, err)

	filled, err := sessions.Create(ctx, userId, &dto.CreateSessionRequest{WorkspaceId: ws.Id, ToolkitType: "insight_stack"})
	require.NoError(t, err)
	require.NoError(t, sessions.ApplyStepWrite(ctx, filled.Id, 1, "users churn right after the trial ends"))
	_, err = sessions.SaveAIOutputs(ctx, userId, filled.Id, &dto.SaveAIOutputsInput{
		Insights:        []string{"trial length is the lever"},
		SentenceOfTruth: "The trial is too short to show value.",
		NecessaryMoves:  []string{"extend trial to 30 days"},
	})
	require.NoError(t, err)

	fresh, err := sessions.Create(ctx, userId, &dto.CreateSessionRequest{WorkspaceId: ws.Id, ToolkitType: "pov_generator"})
	require.NoError(t, err)

	entries, err := contextSvc.AssembleContext(ctx, userId, ws.Id, fresh.Id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "The trial is too short to show value.", entries[0].SentenceOfTruth)
	assert.Equal(t, []string{"trial length is the lever"}, entries[0].Insights)

	// The fresh, empty session contributes nothing the other way around.
	entries, err = contextSvc.AssembleContext(ctx, userId, ws.Id, filled.Id)
	require.NoError(t, err)
	assert.Nil(t, entries)
}
