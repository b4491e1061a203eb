package contract

import (
	"context"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRevisionRepository interface {
	Create(ctx context.Context, revision *entity.SessionRevision) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionRevision, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
