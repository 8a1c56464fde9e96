package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/tracing"
	"github.com/customeros/replycraft/internal/utils"
)

type emailThreadRepository struct {
	db *gorm.DB
}

// NewEmailThreadRepository creates a new email thread repository
func NewEmailThreadRepository(db *gorm.DB) interfaces.EmailThreadRepository {
	return &emailThreadRepository{
		db: db,
	}
}

// Create inserts the thread and its messages in one transaction. Messages are
// stored in slice order and must already carry their positions.
func (r *emailThreadRepository) Create(ctx context.Context, thread *models.EmailThread) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailThreadRepository.Create")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)

	if thread == nil {
		err := errors.Wrap(ErrInvalidInput, "thread cannot be nil")
		tracing.TraceErr(span, err)
		return "", err
	}

	if thread.ID == "" {
		thread.ID = utils.GenerateNanoIDWithPrefix("thread", 16)
	}
	thread.CreatedAt = utils.Now()
	span.SetTag("thread_id", thread.ID)
	span.SetTag("message_count", len(thread.Messages))

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		tracing.TraceErr(span, tx.Error)
		return "", tx.Error
	}

	if err := tx.Omit(clause.Associations).Create(thread).Error; err != nil {
		tx.Rollback()
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to create thread")
	}

	if len(thread.Messages) > 0 {
		for i := range thread.Messages {
			thread.Messages[i].ThreadID = thread.ID
		}
		if err := tx.Create(&thread.Messages).Error; err != nil {
			tx.Rollback()
			tracing.TraceErr(span, err)
			return "", errors.Wrap(err, "failed to create thread messages")
		}
	}

	if err := tx.Commit().Error; err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	return thread.ID, nil
}

// GetByID retrieves an email thread by its ID, without messages
func (r *emailThreadRepository) GetByID(ctx context.Context, id string) (*models.EmailThread, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailThreadRepository.GetByID")
	defer span.Finish()
	tracing.SetDefaultPostgresRepositorySpanTags(ctx, span)
	span.SetTag("thread_id", id)

	if id == "" {
		err := errors.Wrap(ErrInvalidInput, "thread ID cannot be empty")
		tracing.TraceErr(span, err)
		return nil, err
	}

	var thread models.EmailThread
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replycraft_errors.ErrThreadNotFound
		}
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &thread, nil
}
