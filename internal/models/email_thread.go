package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/replycraft/internal/utils"
)

type EmailThread struct {
	ID        string         `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	Subject   *string        `gorm:"column:subject;type:text" json:"subject"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;not null;<-:create" json:"createdAt"`
	Messages  []EmailMessage `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"messages"`
}

func (EmailThread) TableName() string {
	return "email_threads"
}

func (e *EmailThread) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateNanoIDWithPrefix("thread", 16)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = utils.Now()
	}
	return nil
}
