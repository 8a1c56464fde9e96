package events

import (
	"context"
	"sync"
	"time"

	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/tracing"
)

// backgroundPublisher hands every event to the wrapped publisher on its own
// goroutine, bounded by deadline, and returns immediately. Failures are
// only logged.
type backgroundPublisher struct {
	publisher interfaces.EventPublisher
	deadline  time.Duration
	log       logger.Logger
	inFlight  sync.WaitGroup
}

func NewBackgroundPublisher(publisher interfaces.EventPublisher, deadline time.Duration, log logger.Logger) interfaces.EventPublisher {
	if deadline <= 0 {
		deadline = DefaultBackgroundDeadline
	}
	return &backgroundPublisher{
		publisher: publisher,
		deadline:  deadline,
		log:       log,
	}
}

func (p *backgroundPublisher) PublishReplyGenerated(ctx context.Context, event dto.ReplyGenerated) error {
	// request values (request id, app source) survive, its cancellation does not
	detached := context.WithoutCancel(ctx)

	p.inFlight.Add(1)
	go func() {
		defer p.inFlight.Done()
		defer tracing.RecoverAndLogToJaeger(p.log)

		span, ctx := tracing.StartTracerSpan(detached, "backgroundPublisher.PublishReplyGenerated")
		defer span.Finish()
		tracing.TagEntity(span, event.ReplyID)

		ctx, cancel := context.WithTimeout(ctx, p.deadline)
		defer cancel()

		if err := p.publisher.PublishReplyGenerated(ctx, event); err != nil {
			tracing.TraceErr(span, err)
			p.log.Errorf("failed to publish ReplyGenerated for reply %s: %v", event.ReplyID, err)
		}
	}()

	return nil
}

// Wait blocks until every event handed over so far has been published or
// has failed.
func (p *backgroundPublisher) Wait() {
	p.inFlight.Wait()
}

func (p *backgroundPublisher) Close() error {
	p.inFlight.Wait()
	return p.publisher.Close()
}
