package services

import (
	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/services/ai"
	"github.com/customeros/replycraft/services/email_parser"
	"github.com/customeros/replycraft/services/email_reply"
	"github.com/customeros/replycraft/services/events"
	"github.com/customeros/replycraft/services/storage"
)

type Services struct {
	EventsService     *events.EventsService
	ResponseArchive   interfaces.ResponseArchive
	ReplyGenerator    interfaces.ReplyGenerator
	EmailReplyService interfaces.EmailReplyService
	RawEmailParser    interfaces.RawEmailParser
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	// events
	eventsService, err := events.NewEventsService(cfg.AppConfig.RabbitMQURL, log, events.DefaultPublisherConfig())
	if err != nil {
		return nil, err
	}

	archive, err := storage.InitResponseArchive(cfg.ArchiveConfig, log)
	if err != nil {
		eventsService.Close()
		return nil, err
	}

	replyGenerator := ai.NewGeminiService(cfg.GeminiConfig)

	services := Services{
		EventsService:   eventsService,
		ResponseArchive: archive,
		ReplyGenerator:  replyGenerator,
		EmailReplyService: email_reply.NewEmailReplyService(email_reply.Dependencies{
			Config:     cfg.GeminiConfig,
			ThreadRepo: repos.EmailThreadRepository,
			ReplyRepo:  repos.GeneratedReplyRepository,
			Generator:  replyGenerator,
			Archive:    archive,
			Publisher:  eventsService.Publisher,
			Log:        log,
		}),
		RawEmailParser: email_parser.NewRawEmailParser(),
	}

	return &services, nil
}

func (s *Services) Close() error {
	if s.EventsService == nil {
		return nil
	}
	return s.EventsService.Close()
}
