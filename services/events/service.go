package events

import (
	"context"
	"fmt"

	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/logger"
)

type EventsService struct {
	Publisher interfaces.EventPublisher
}

// NewEventsService connects the publisher. Without a broker url events are
// dropped and only logged at debug level. Events are published in the
// background so a slow broker never holds up a request.
func NewEventsService(rabbitmqURL string, log logger.Logger, publisherConfig *PublisherConfig) (*EventsService, error) {
	if rabbitmqURL == "" {
		log.Warn("RABBITMQ_URL not set, reply events will not be published")
		return &EventsService{Publisher: &noopPublisher{log: log}}, nil
	}
	if publisherConfig == nil {
		publisherConfig = DefaultPublisherConfig()
	}

	publisher, err := NewRabbitMQPublisher(rabbitmqURL, log, publisherConfig)
	if err != nil {
		return nil, err
	}

	return &EventsService{
		Publisher: NewBackgroundPublisher(publisher, publisherConfig.BackgroundDeadline, log),
	}, nil
}

func (s *EventsService) Close() error {
	var errs []error

	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing events service: %v", errs)
	}

	return nil
}

type noopPublisher struct {
	log logger.Logger
}

func (p *noopPublisher) PublishReplyGenerated(_ context.Context, event dto.ReplyGenerated) error {
	p.log.Debugf("skipping ReplyGenerated event for reply %s", event.ReplyID)
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
