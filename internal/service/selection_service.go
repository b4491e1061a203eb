package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ai-thinkspace-be/internal/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ISelectionService owns the per-user "active workspace/session" pointer. It
// is explicit state, not an ambient global: deletion paths must clear it
// BEFORE the entity is removed so no view can read a dangling reference.
type ISelectionService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.Selection, error)
	Set(ctx context.Context, userId uuid.UUID, req *dto.SetSelectionRequest) (*dto.Selection, error)
	ClearWorkspace(ctx context.Context, userId uuid.UUID, workspaceId uuid.UUID) error
	ClearSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

type selectionService struct {
	rdb *redis.Client

	// In-memory fallback when Redis is unavailable. Selection then only
	// lives as long as the process, which is still correct, just less
	// durable.
	mu    sync.RWMutex
	local map[uuid.UUID]*dto.Selection
}

func NewSelectionService(rdb *redis.Client) ISelectionService {
	return &selectionService{
		rdb:   rdb,
		local: make(map[uuid.UUID]*dto.Selection),
	}
}

func selectionKey(userId uuid.UUID) string {
	return fmt.Sprintf("selection:%s", userId)
}

func (s *selectionService) Get(ctx context.Context, userId uuid.UUID) (*dto.Selection, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, selectionKey(userId)).Result()
		if err == redis.Nil {
			return &dto.Selection{}, nil
		}
		if err != nil {
			return nil, err
		}
		var sel dto.Selection
		if err := json.Unmarshal([]byte(raw), &sel); err != nil {
			// Corrupt entry: treat as no selection rather than failing reads.
			return &dto.Selection{}, nil
		}
		return &sel, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if sel, ok := s.local[userId]; ok {
		copied := *sel
		return &copied, nil
	}
	return &dto.Selection{}, nil
}

func (s *selectionService) Set(ctx context.Context, userId uuid.UUID, req *dto.SetSelectionRequest) (*dto.Selection, error) {
	sel := &dto.Selection{
		WorkspaceId: req.WorkspaceId,
		SessionId:   req.SessionId,
	}
	if err := s.store(ctx, userId, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *selectionService) ClearWorkspace(ctx context.Context, userId uuid.UUID, workspaceId uuid.UUID) error {
	sel, err := s.Get(ctx, userId)
	if err != nil {
		return err
	}
	if sel.WorkspaceId == nil || *sel.WorkspaceId != workspaceId {
		return nil
	}
	// Clearing the workspace clears the session pointer too; a session
	// cannot stay active inside a workspace that is going away.
	return s.store(ctx, userId, &dto.Selection{})
}

func (s *selectionService) ClearSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	sel, err := s.Get(ctx, userId)
	if err != nil {
		return err
	}
	if sel.SessionId == nil || *sel.SessionId != sessionId {
		return nil
	}
	return s.store(ctx, userId, &dto.Selection{WorkspaceId: sel.WorkspaceId})
}

func (s *selectionService) store(ctx context.Context, userId uuid.UUID, sel *dto.Selection) error {
	if s.rdb != nil {
		data, err := json.Marshal(sel)
		if err != nil {
			return err
		}
		return s.rdb.Set(ctx, selectionKey(userId), data, 0).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sel
	s.local[userId] = &copied
	return nil
}
