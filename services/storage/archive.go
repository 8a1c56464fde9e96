package storage

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/tracing"
)

type responseArchive struct {
	storage interfaces.StorageService
}

func NewResponseArchive(storage interfaces.StorageService) interfaces.ResponseArchive {
	return &responseArchive{storage: storage}
}

// InitResponseArchive returns a no-op archive when archiving is disabled.
func InitResponseArchive(cfg *config.ArchiveConfig, log logger.Logger) (interfaces.ResponseArchive, error) {
	if cfg == nil || !cfg.Enabled {
		log.Info("response archive disabled")
		return noopArchive{}, nil
	}

	storageService, err := NewStorageServiceFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("archiving unreadable responses to %s bucket %s", cfg.Provider, cfg.Bucket)
	return NewResponseArchive(storageService), nil
}

func ResponseKey(threadID, replyID string) string {
	return fmt.Sprintf("responses/%s/%s.json", threadID, replyID)
}

func (a *responseArchive) ArchiveRawResponse(ctx context.Context, threadID, replyID string, body []byte) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "responseArchive.ArchiveRawResponse")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, replyID)

	err := a.storage.Upload(ctx, ResponseKey(threadID, replyID), body, "application/json")
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}

// RawResponse downloads the archived body of a degraded reply.
func (a *responseArchive) RawResponse(ctx context.Context, threadID, replyID string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "responseArchive.RawResponse")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagEntity(span, replyID)

	body, err := a.storage.Download(ctx, ResponseKey(threadID, replyID))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return body, nil
}

type noopArchive struct{}

func (noopArchive) ArchiveRawResponse(context.Context, string, string, []byte) error {
	return nil
}

func (noopArchive) RawResponse(context.Context, string, string) ([]byte, error) {
	return nil, nil
}
