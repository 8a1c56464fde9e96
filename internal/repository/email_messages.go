package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/tracing"
)

type emailMessageRepository struct {
	db *gorm.DB
}

func NewEmailMessageRepository(db *gorm.DB) interfaces.EmailMessageRepository {
	return &emailMessageRepository{db: db}
}

// ListByThread returns the thread's messages ordered by position
func (r *emailMessageRepository) ListByThread(ctx context.Context, threadID string) ([]*models.EmailMessage, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailMessageRepository.ListByThread")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("thread_id", threadID)

	if threadID == "" {
		err := errors.Wrap(ErrInvalidInput, "thread ID cannot be empty")
		tracing.TraceErr(span, err)
		return nil, err
	}

	var messages []*models.EmailMessage
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("position_in_thread ASC").
		Find(&messages).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return messages, nil
}
