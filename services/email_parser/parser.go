package email_parser

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/dto"
	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/tracing"
)

// maxRawMessageSize bounds how much of an uploaded message is read.
const maxRawMessageSize = 10 << 20

type rawEmailParser struct{}

func NewRawEmailParser() interfaces.RawEmailParser {
	return &rawEmailParser{}
}

// Parse turns an RFC 822 message into a one-message request. The text part is
// used as the body; enmime down-converts HTML-only messages to text.
func (p *rawEmailParser) Parse(ctx context.Context, raw io.Reader) (*dto.GenerateReplyRequest, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "rawEmailParser.Parse")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	data, err := io.ReadAll(io.LimitReader(raw, maxRawMessageSize))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to read raw message")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, replycraft_errors.ErrEmptyRawMessage
	}
	span.LogKV("message.size", len(data))

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to parse raw message")
	}
	for _, perr := range envelope.Errors {
		if perr.Severe {
			span.LogKV("parse.warning", perr.Error())
		}
	}

	message := dto.EmailMessage{
		Sender:    headerValue(envelope, "From"),
		Recipient: headerValue(envelope, "To"),
		Body:      bodyValue(envelope),
	}

	return &dto.GenerateReplyRequest{
		Subject:  headerValue(envelope, "Subject"),
		Messages: []dto.EmailMessage{message},
	}, nil
}

func headerValue(envelope *enmime.Envelope, key string) *string {
	value := strings.TrimSpace(envelope.GetHeader(key))
	if value == "" {
		return nil
	}
	return &value
}

func bodyValue(envelope *enmime.Envelope) *string {
	text := strings.TrimSpace(envelope.Text)
	if text == "" {
		return nil
	}
	return &text
}
