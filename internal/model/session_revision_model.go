package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionRevision struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	StepNumber int       `gorm:"not null"`
	Content    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SessionRevision) TableName() string {
	return "session_revisions"
}
