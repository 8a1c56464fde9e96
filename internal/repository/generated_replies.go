package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/tracing"
	"github.com/customeros/replycraft/internal/utils"
)

type generatedReplyRepository struct {
	db *gorm.DB
}

func NewGeneratedReplyRepository(db *gorm.DB) interfaces.GeneratedReplyRepository {
	return &generatedReplyRepository{db: db}
}

func (r *generatedReplyRepository) Create(ctx context.Context, reply *models.GeneratedReply) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "generatedReplyRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if reply == nil {
		err := errors.Wrap(ErrInvalidInput, "reply cannot be nil")
		tracing.TraceErr(span, err)
		return "", err
	}

	if reply.ID == "" {
		reply.ID = utils.GenerateNanoIDWithPrefix("reply", 16)
	}
	reply.CreatedAt = utils.Now()
	span.SetTag("reply_id", reply.ID)
	if reply.ThreadID != nil {
		span.SetTag("thread_id", *reply.ThreadID)
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(reply).Error; err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to create generated reply")
	}

	return reply.ID, nil
}

// ListByThread returns the thread's replies, oldest first
func (r *generatedReplyRepository) ListByThread(ctx context.Context, threadID string) ([]*models.GeneratedReply, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "generatedReplyRepository.ListByThread")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("thread_id", threadID)

	if threadID == "" {
		err := errors.Wrap(ErrInvalidInput, "thread ID cannot be empty")
		tracing.TraceErr(span, err)
		return nil, err
	}

	var replies []*models.GeneratedReply
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return replies, nil
}
