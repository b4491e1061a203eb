package service

import (
	"context"
	"fmt"
	"time"

	"ai-thinkspace-be/internal/dto"
	"ai-thinkspace-be/internal/pkg/logger"
	"ai-thinkspace-be/pkg/events"
	pktNats "ai-thinkspace-be/pkg/nats"

	"github.com/google/uuid"
)

// NoticeDelivery pushes transient notices to connected clients. Implemented
// by the websocket hub.
type NoticeDelivery interface {
	Send(userID uuid.UUID, notice dto.Notice)
	Broadcast(notice dto.Notice)
}

// NoticeService turns bus events into user-facing notices. Notices are
// transient: nothing is persisted, and a user who is not connected simply
// misses them.
type NoticeService struct {
	subscriber *pktNats.Subscriber
	delivery   NoticeDelivery
	logger     logger.ILogger
}

func NewNoticeService(sub *pktNats.Subscriber, delivery NoticeDelivery, log logger.ILogger) *NoticeService {
	return &NoticeService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NoticeService) Start() {
	err := s.subscriber.Subscribe("thinkspace.>", "notice-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NoticeService", "Failed to start notice subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NoticeService", "Notice service started, listening to thinkspace.>", nil)
}

func (s *NoticeService) handleEvent(ctx context.Context, event events.Event) error {
	notice, ok := s.buildNotice(event)
	if !ok {
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(notice.UserId, notice)
	}
	return nil
}

// buildNotice maps one event type to its notice. Events without a user
// target, or types the notice channel does not surface, are dropped.
func (s *NoticeService) buildNotice(event events.Event) (dto.Notice, bool) {
	payload := event.Payload()

	userId, ok := parsePayloadId(payload, "user_id")
	if !ok {
		return dto.Notice{}, false
	}

	notice := dto.Notice{
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if sessionId, ok := parsePayloadId(payload, "session_id"); ok {
		notice.SessionId = &sessionId
	}
	if workspaceId, ok := parsePayloadId(payload, "workspace_id"); ok {
		notice.WorkspaceId = &workspaceId
	}

	switch event.EventType() {
	case events.TypeGenerationCompleted:
		notice.Type = dto.NoticeTypeGenerationCompleted
		notice.Level = dto.NoticeLevelInfo
		notice.Message = "Generation finished."
	case events.TypeGenerationFailed:
		notice.Type = dto.NoticeTypeGenerationFailed
		notice.Level = dto.NoticeLevelError
		reason, _ := payload["reason"].(string)
		notice.Message = fmt.Sprintf("Generation failed: %s", reason)
	case events.TypeAutosaveFailed:
		notice.Type = dto.NoticeTypeAutosaveFailed
		notice.Level = dto.NoticeLevelError
		notice.Message = "Autosave failed. Your latest edit is being retried."
	default:
		return dto.Notice{}, false
	}

	return notice, true
}

func parsePayloadId(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
