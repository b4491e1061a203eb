package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/contract"
	"ai-thinkspace-be/internal/repository/specification"
	"ai-thinkspace-be/internal/repository/unitofwork"
	"ai-thinkspace-be/pkg/generation"

	"github.com/google/uuid"
)

// memStore is the shared in-memory backing for the fake repositories. The
// fakes interpret the same specification structs the GORM implementations
// translate to SQL, so service code under test runs unmodified.
type memStore struct {
	mu         sync.Mutex
	workspaces map[uuid.UUID]*entity.Workspace
	sessions   map[uuid.UUID]*entity.Session
	steps      map[uuid.UUID]*entity.SessionStep
	revisions  map[uuid.UUID]*entity.SessionRevision

	failSessionUpdate bool
}

func newMemStore() *memStore {
	return &memStore{
		workspaces: make(map[uuid.UUID]*entity.Workspace),
		sessions:   make(map[uuid.UUID]*entity.Session),
		steps:      make(map[uuid.UUID]*entity.SessionStep),
		revisions:  make(map[uuid.UUID]*entity.SessionRevision),
	}
}

type fakeFactory struct {
	store *memStore
}

func newFakeFactory(store *memStore) unitofwork.RepositoryFactory {
	return &fakeFactory{store: store}
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *memStore
}

func (u *fakeUow) Begin(_ context.Context) error { return nil }
func (u *fakeUow) Commit() error                 { return nil }
func (u *fakeUow) Rollback() error               { return nil }

func (u *fakeUow) WorkspaceRepository() contract.WorkspaceRepository {
	return &fakeWorkspaceRepo{store: u.store}
}

func (u *fakeUow) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) SessionStepRepository() contract.SessionStepRepository {
	return &fakeStepRepo{store: u.store}
}

func (u *fakeUow) SessionRevisionRepository() contract.SessionRevisionRepository {
	return &fakeRevisionRepo{store: u.store}
}

// --- workspace repo ---

type fakeWorkspaceRepo struct {
	store *memStore
}

func matchWorkspace(w *entity.Workspace, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if w.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if w.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, workspace *entity.Workspace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *workspace
	r.store.workspaces[workspace.Id] = &clone
	return nil
}

func (r *fakeWorkspaceRepo) Update(_ context.Context, workspace *entity.Workspace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.workspaces[workspace.Id]; !ok {
		return errors.New("workspace not found")
	}
	clone := *workspace
	r.store.workspaces[workspace.Id] = &clone
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.workspaces, id)
	return nil
}

func (r *fakeWorkspaceRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Workspace, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, w := range r.store.workspaces {
		if matchWorkspace(w, specs) {
			clone := *w
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkspaceRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Workspace, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Workspace
	for _, w := range r.store.workspaces {
		if matchWorkspace(w, specs) {
			clone := *w
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeWorkspaceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- session repo ---

type fakeSessionRepo struct {
	store *memStore
}

func matchSession(s *entity.Session, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		case specification.ByWorkspaceID:
			if s.WorkspaceId != sp.WorkspaceID {
				return false
			}
		case specification.ByToolkitType:
			if s.ToolkitType != sp.ToolkitType {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *session
	r.store.sessions[session.Id] = &clone
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failSessionUpdate {
		return errors.New("db down")
	}
	if _, ok := r.store.sessions[session.Id]; !ok {
		return errors.New("session not found")
	}
	clone := *session
	r.store.sessions[session.Id] = &clone
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByWorkspaceId(_ context.Context, workspaceId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, s := range r.store.sessions {
		if s.WorkspaceId == workspaceId {
			delete(r.store.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.Session
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			clone := *s
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- step repo ---

type fakeStepRepo struct {
	store *memStore
}

func matchStep(s *entity.SessionStep, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.BySessionID:
			if s.SessionId != sp.SessionID {
				return false
			}
		case specification.ByStepNumber:
			if s.StepNumber != sp.StepNumber {
				return false
			}
		}
	}
	return true
}

func (r *fakeStepRepo) Create(_ context.Context, step *entity.SessionStep) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *step
	r.store.steps[step.Id] = &clone
	return nil
}

func (r *fakeStepRepo) Update(_ context.Context, step *entity.SessionStep) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.steps[step.Id]; !ok {
		return errors.New("step not found")
	}
	clone := *step
	r.store.steps[step.Id] = &clone
	return nil
}

func (r *fakeStepRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.steps, id)
	return nil
}

func (r *fakeStepRepo) DeleteBySessionId(_ context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, s := range r.store.steps {
		if s.SessionId == sessionId {
			delete(r.store.steps, id)
		}
	}
	return nil
}

func (r *fakeStepRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.SessionStep, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.steps {
		if matchStep(s, specs) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeStepRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SessionStep, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.SessionStep
	for _, s := range r.store.steps {
		if matchStep(s, specs) {
			clone := *s
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StepNumber < result[j].StepNumber })
	return result, nil
}

func (r *fakeStepRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- revision repo ---

type fakeRevisionRepo struct {
	store *memStore
}

func (r *fakeRevisionRepo) Create(_ context.Context, revision *entity.SessionRevision) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *revision
	r.store.revisions[revision.Id] = &clone
	return nil
}

func (r *fakeRevisionRepo) DeleteBySessionId(_ context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, rev := range r.store.revisions {
		if rev.SessionId == sessionId {
			delete(r.store.revisions, id)
		}
	}
	return nil
}

func (r *fakeRevisionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SessionRevision, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var result []*entity.SessionRevision
	for _, rev := range r.store.revisions {
		matched := true
		for _, spec := range specs {
			if sp, ok := spec.(specification.BySessionID); ok && rev.SessionId != sp.SessionID {
				matched = false
				break
			}
		}
		if matched {
			clone := *rev
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeRevisionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// --- collaborators ---

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type fakeProvider struct {
	mu       sync.Mutex
	response *generation.Response
	err      error
	requests []*generation.Request
	onCall   func() // runs before returning, inside the provider call
}

func (p *fakeProvider) Generate(_ context.Context, req *generation.Request, _ ...generation.Option) (*generation.Response, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	hook := p.onCall
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func (p *fakeProvider) lastRequest() *generation.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return nil
	}
	return p.requests[len(p.requests)-1]
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
