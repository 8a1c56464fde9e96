package models

import (
	"gorm.io/gorm"

	"github.com/customeros/replycraft/internal/utils"
)

type EmailMessage struct {
	ID        string  `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	ThreadID  string  `gorm:"column:thread_id;type:varchar(50);not null;index" json:"threadId"`
	Sender    *string `gorm:"column:sender;type:varchar(1000)" json:"sender"`
	Recipient *string `gorm:"column:recipient;type:varchar(1000)" json:"recipient"`
	Body      *string `gorm:"column:body;type:text" json:"body"`
	Position  int     `gorm:"column:position_in_thread;not null" json:"position"`
}

func (EmailMessage) TableName() string {
	return "email_messages"
}

func (m *EmailMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("msg", 16)
	}
	return nil
}
