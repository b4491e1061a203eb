package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStep struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_step"`
	StepNumber int       `gorm:"not null;uniqueIndex:idx_session_step"`
	Content    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (SessionStep) TableName() string {
	return "session_steps"
}
