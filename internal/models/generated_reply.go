package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/customeros/replycraft/internal/utils"
)

type GeneratedReply struct {
	ID        string       `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	ThreadID  *string      `gorm:"column:thread_id;type:varchar(50);index" json:"threadId"`
	Thread    *EmailThread `gorm:"foreignKey:ThreadID;constraint:OnDelete:SET NULL" json:"-"`
	Tone      *string      `gorm:"column:tone;type:text" json:"tone"`
	ReplyBody string       `gorm:"column:reply_body;type:text" json:"replyBody"`
	Degraded  bool         `gorm:"column:degraded;not null;default:false" json:"degraded"`
	CreatedAt time.Time    `gorm:"column:created_at;type:timestamp;not null;<-:create" json:"createdAt"`
}

func (GeneratedReply) TableName() string {
	return "generated_replies"
}

func (r *GeneratedReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateNanoIDWithPrefix("reply", 16)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.Now()
	}
	return nil
}
