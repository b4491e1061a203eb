package contract

import (
	"context"

	"ai-thinkspace-be/internal/entity"
	"ai-thinkspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionStepRepository interface {
	Create(ctx context.Context, step *entity.SessionStep) error
	Update(ctx context.Context, step *entity.SessionStep) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionStep, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionStep, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
