package email_reply

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/tracing"
	"github.com/customeros/replycraft/internal/utils"
	"github.com/customeros/replycraft/services/prompt"
)

type emailReplyService struct {
	config     *config.GeminiConfig
	threadRepo interfaces.EmailThreadRepository
	replyRepo  interfaces.GeneratedReplyRepository
	generator  interfaces.ReplyGenerator
	archive    interfaces.ResponseArchive
	publisher  interfaces.EventPublisher
	log        logger.Logger
}

// Dependencies of the reply service. Archive and Publisher may be nil.
type Dependencies struct {
	Config     *config.GeminiConfig
	ThreadRepo interfaces.EmailThreadRepository
	ReplyRepo  interfaces.GeneratedReplyRepository
	Generator  interfaces.ReplyGenerator
	Archive    interfaces.ResponseArchive
	Publisher  interfaces.EventPublisher
	Log        logger.Logger
}

func NewEmailReplyService(deps Dependencies) interfaces.EmailReplyService {
	return &emailReplyService{
		config:     deps.Config,
		threadRepo: deps.ThreadRepo,
		replyRepo:  deps.ReplyRepo,
		generator:  deps.Generator,
		archive:    deps.Archive,
		publisher:  deps.Publisher,
		log:        deps.Log,
	}
}

// GenerateReply stores the submitted thread, asks the model for a reply and
// stores that too. A thread stored before a later step fails is kept.
func (s *emailReplyService) GenerateReply(ctx context.Context, request dto.GenerateReplyRequest) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "emailReplyService.GenerateReply")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("messages.count", len(request.Messages), "tone", utils.StringOrEmpty(request.Tone))

	if err := s.config.Validate(); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	thread := newThread(request)
	threadID, err := s.threadRepo.Create(ctx, thread)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to save email thread")
	}
	tracing.TagEntity(span, threadID)

	generated, err := s.generator.GenerateText(ctx, prompt.BuildPrompt(request))
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("reply generation failed for thread %s: %v", threadID, err)
		return "", errors.Wrap(err, "failed to generate reply")
	}
	if generated.Degraded {
		s.log.Warnf("unreadable model response for thread %s: %s", threadID, generated.Text)
	}

	reply := &models.GeneratedReply{
		ThreadID:  &threadID,
		Tone:      request.Tone,
		ReplyBody: generated.Text,
		Degraded:  generated.Degraded,
	}
	replyID, err := s.replyRepo.Create(ctx, reply)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to save generated reply")
	}

	if generated.Degraded {
		s.archiveRawResponse(ctx, threadID, replyID, generated.RawResponse)
	}
	s.publishReplyGenerated(ctx, replyID, reply, len(thread.Messages), generated.Degraded)

	s.log.Infof("generated reply %s for thread %s (messages: %d, tone: %q)", replyID, threadID, len(thread.Messages), utils.StringOrEmpty(request.Tone))
	return generated.Text, nil
}

// newThread maps the request onto the thread model. The message list wins
// over the legacy single body; positions follow the list order.
func newThread(request dto.GenerateReplyRequest) *models.EmailThread {
	thread := &models.EmailThread{
		Subject: request.Subject,
	}

	switch {
	case request.HasMessages():
		thread.Messages = make([]models.EmailMessage, 0, len(request.Messages))
		for i, msg := range request.Messages {
			thread.Messages = append(thread.Messages, models.EmailMessage{
				Sender:    msg.Sender,
				Recipient: msg.Recipient,
				Body:      msg.Body,
				Position:  i,
			})
		}
	case utils.IsPresent(request.EmailContent):
		thread.Messages = []models.EmailMessage{
			{Body: request.EmailContent, Position: 0},
		}
	}

	return thread
}

func (s *emailReplyService) archiveRawResponse(ctx context.Context, threadID, replyID string, body []byte) {
	if s.archive == nil {
		return
	}
	if err := s.archive.ArchiveRawResponse(ctx, threadID, replyID, body); err != nil {
		s.log.Errorf("failed to archive raw response for reply %s: %v", replyID, err)
	}
}

func (s *emailReplyService) publishReplyGenerated(ctx context.Context, replyID string, reply *models.GeneratedReply, messageCount int, degraded bool) {
	if s.publisher == nil {
		return
	}
	event := dto.ReplyGenerated{
		ThreadID:     utils.StringOrEmpty(reply.ThreadID),
		ReplyID:      replyID,
		Tone:         reply.Tone,
		MessageCount: messageCount,
		Degraded:     degraded,
		CreatedAt:    reply.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishReplyGenerated(ctx, event); err != nil {
		s.log.Errorf("failed to publish ReplyGenerated for reply %s: %v", replyID, err)
	}
}
