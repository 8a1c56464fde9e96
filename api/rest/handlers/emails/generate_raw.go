package emails

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	custom_err "github.com/customeros/replycraft/api/errors"
	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/internal/tracing"
)

var acceptedRawContentTypes = map[string]bool{
	"":                         true,
	"message/rfc822":           true,
	"text/plain":               true,
	"application/octet-stream": true,
}

// GenerateRaw handles POST /api/email/generate/raw. The body is a complete
// RFC 822 message; the tone comes from the query string.
func (h *EmailsHandler) GenerateRaw() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "EmailsHandler.GenerateRaw")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		body, err := c.GetRawData()
		if err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Unable to read request body", err)
			return
		}

		errs := validateRawRequest(ctx, c.ContentType(), body)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		request, err := h.parser.Parse(ctx, bytes.NewReader(body))
		if err != nil {
			if errors.Is(err, replycraft_errors.ErrEmptyRawMessage) {
				respondWithError(c, span, http.StatusBadRequest, "Email message is empty", err)
				return
			}
			respondWithError(c, span, http.StatusBadRequest, "Invalid email message", err)
			return
		}

		if tone := c.Query("tone"); tone != "" {
			request.Tone = &tone
		}

		h.generate(ctx, c, span, *request)
	}
}

func validateRawRequest(ctx context.Context, contentType string, body []byte) *custom_err.MultiErrors {
	span, _ := opentracing.StartSpanFromContext(ctx, "EmailsHandler.validateRawRequest")
	defer span.Finish()
	tracing.TagComponentRest(span)

	errs := custom_err.NewMultiErrors()

	mediaType := strings.ToLower(contentType)
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if !acceptedRawContentTypes[mediaType] {
		errs.Add("contentType", "send the message as message/rfc822", errors.Errorf("unsupported content type %s", contentType))
	}

	if len(body) == 0 {
		errs.Add("body", "please provide a raw email message", errors.New("body is empty"))
	}

	return errs
}
