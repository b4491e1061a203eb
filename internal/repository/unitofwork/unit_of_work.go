package unitofwork

import (
	"context"

	"ai-thinkspace-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkspaceRepository() contract.WorkspaceRepository
	SessionRepository() contract.SessionRepository
	SessionStepRepository() contract.SessionStepRepository
	SessionRevisionRepository() contract.SessionRevisionRepository
}
