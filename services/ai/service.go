package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/internal/tracing"
)

// DegradedReplyPrefix starts the reply text returned when the API response
// cannot be read.
const DegradedReplyPrefix = "Error processing request: "

type geminiService struct {
	config     *config.GeminiConfig
	httpClient *http.Client
}

func NewGeminiService(cfg *config.GeminiConfig) interfaces.ReplyGenerator {
	return NewGeminiServiceWithClient(cfg, &http.Client{Timeout: cfg.HttpTimeout})
}

func NewGeminiServiceWithClient(cfg *config.GeminiConfig, httpClient *http.Client) interfaces.ReplyGenerator {
	return &geminiService{
		config:     cfg,
		httpClient: httpClient,
	}
}

// GenerateText posts the prompt to the configured endpoint. The key is
// appended to the endpoint as-is, so the endpoint is expected to end with
// something like "?key=". Transport failures and non-2xx statuses are
// returned as errors; an unreadable 2xx body is not.
func (s *geminiService) GenerateText(ctx context.Context, prompt string) (*dto.GeneratedText, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "geminiService.GenerateText")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagComponentExternalApi(span)
	span.LogKV("prompt.length", len(prompt))

	payload, err := marshalRequest(dto.NewGeminiTextRequest(prompt))
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ApiUrl+s.config.ApiKey, bytes.NewReader(payload))
	if err != nil {
		err = stripURL(err)
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req = tracing.InjectSpanContextIntoHTTPRequest(req, span)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		err = stripURL(err)
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "gemini request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "unable to read response body")
	}

	span.SetTag("http.status_code", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("gemini request failed with status code %d: %s", resp.StatusCode, string(body))
		tracing.TraceErr(span, err)
		return nil, err
	}

	text, err := ExtractReplyText(body)
	if err != nil {
		tracing.TraceErr(span, err)
		span.SetTag("reply.degraded", true)
		return &dto.GeneratedText{
			Text:        DegradedReplyPrefix + err.Error(),
			Degraded:    true,
			RawResponse: body,
		}, nil
	}

	return &dto.GeneratedText{Text: text}, nil
}

// ExtractReplyText reads candidates[0].content.parts[0].text from a
// generateContent response body.
func ExtractReplyText(body []byte) (string, error) {
	var response dto.GeminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	content := response.Candidates[0].Content
	if content == nil {
		return "", errors.New("candidate has no content")
	}
	if len(content.Parts) == 0 {
		return "", errors.New("candidate content has no parts")
	}
	text := content.Parts[0].Text
	if text == nil {
		return "", errors.New("content part has no text")
	}

	return *text, nil
}

func marshalRequest(request dto.GeminiRequest) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(request); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// stripURL drops the request URL, which carries the API key, from transport errors.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
