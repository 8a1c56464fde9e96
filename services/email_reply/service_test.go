package email_reply

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/dto"
	replycraft_errors "github.com/customeros/replycraft/errors"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/models"
	"github.com/customeros/replycraft/internal/utils"
	"github.com/customeros/replycraft/services/events"
)

type MockThreadRepository struct {
	mock.Mock
}

func (m *MockThreadRepository) Create(ctx context.Context, thread *models.EmailThread) (string, error) {
	args := m.Called(ctx, thread)
	return args.String(0), args.Error(1)
}

func (m *MockThreadRepository) GetByID(ctx context.Context, id string) (*models.EmailThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailThread), args.Error(1)
}

type MockReplyRepository struct {
	mock.Mock
}

func (m *MockReplyRepository) Create(ctx context.Context, reply *models.GeneratedReply) (string, error) {
	args := m.Called(ctx, reply)
	return args.String(0), args.Error(1)
}

func (m *MockReplyRepository) ListByThread(ctx context.Context, threadID string) ([]*models.GeneratedReply, error) {
	args := m.Called(ctx, threadID)
	return args.Get(0).([]*models.GeneratedReply), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (*dto.GeneratedText, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GeneratedText), args.Error(1)
}

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) ArchiveRawResponse(ctx context.Context, threadID, replyID string, body []byte) error {
	args := m.Called(ctx, threadID, replyID, body)
	return args.Error(0)
}

func (m *MockArchive) RawResponse(ctx context.Context, threadID, replyID string) ([]byte, error) {
	args := m.Called(ctx, threadID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReplyGenerated(ctx context.Context, event dto.ReplyGenerated) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

type fixture struct {
	threadRepo *MockThreadRepository
	replyRepo  *MockReplyRepository
	generator  *MockGenerator
	archive    *MockArchive
	publisher  *MockPublisher
	cfg        *config.GeminiConfig
}

func newFixture() *fixture {
	return &fixture{
		threadRepo: new(MockThreadRepository),
		replyRepo:  new(MockReplyRepository),
		generator:  new(MockGenerator),
		archive:    new(MockArchive),
		publisher:  new(MockPublisher),
		cfg: &config.GeminiConfig{
			ApiUrl: "https://example.test/v1beta/models/gemini:generateContent?key=",
			ApiKey: "k",
		},
	}
}

func (f *fixture) service() *emailReplyService {
	log := logger.NewAppLogger(&logger.Config{LogLevel: "fatal"})
	log.InitLogger()
	return NewEmailReplyService(Dependencies{
		Config:     f.cfg,
		ThreadRepo: f.threadRepo,
		ReplyRepo:  f.replyRepo,
		Generator:  f.generator,
		Archive:    f.archive,
		Publisher:  f.publisher,
		Log:        log,
	}).(*emailReplyService)
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.threadRepo.AssertExpectations(t)
	f.replyRepo.AssertExpectations(t)
	f.generator.AssertExpectations(t)
	f.archive.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestGenerateReply_ThreadEndToEnd(t *testing.T) {
	f := newFixture()
	request := dto.GenerateReplyRequest{
		Subject: utils.StringPtr("Meeting"),
		Tone:    utils.StringPtr("concise"),
		Messages: []dto.EmailMessage{
			{Sender: utils.StringPtr("a@x.com"), Recipient: utils.StringPtr("b@x.com"), Body: utils.StringPtr("Can we meet Tuesday?")},
			{Sender: utils.StringPtr("b@x.com"), Recipient: utils.StringPtr("a@x.com"), Body: utils.StringPtr("Maybe, what time?")},
		},
	}

	var savedThread *models.EmailThread
	f.threadRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.EmailThread")).
		Run(func(args mock.Arguments) { savedThread = args.Get(1).(*models.EmailThread) }).
		Return("thread_1", nil).Once()

	var sentPrompt string
	f.generator.On("GenerateText", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sentPrompt = args.String(1) }).
		Return(&dto.GeneratedText{Text: "Hi, 10am works."}, nil).Once()

	var savedReply *models.GeneratedReply
	f.replyRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.GeneratedReply")).
		Run(func(args mock.Arguments) { savedReply = args.Get(1).(*models.GeneratedReply) }).
		Return("reply_1", nil).Once()

	f.publisher.On("PublishReplyGenerated", mock.Anything, mock.MatchedBy(func(event dto.ReplyGenerated) bool {
		return event.ThreadID == "thread_1" && event.ReplyID == "reply_1" &&
			event.MessageCount == 2 && !event.Degraded && *event.Tone == "concise"
	})).Return(nil).Once()

	text, err := f.service().GenerateReply(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, "Hi, 10am works.", text)

	require.NotNil(t, savedThread)
	assert.Equal(t, "Meeting", *savedThread.Subject)
	require.Len(t, savedThread.Messages, 2)
	assert.Equal(t, 0, savedThread.Messages[0].Position)
	assert.Equal(t, 1, savedThread.Messages[1].Position)
	assert.Equal(t, "a@x.com", *savedThread.Messages[0].Sender)
	assert.Equal(t, "Maybe, what time?", *savedThread.Messages[1].Body)

	assert.Contains(t, sentPrompt, "Subject of the email thread: Meeting")
	assert.Contains(t, sentPrompt, "- Focus on the key points only")
	assert.Contains(t, sentPrompt, "---- Message 2 ----\nFrom: b@x.com\nTo: a@x.com\nBody:\nMaybe, what time?")
	assert.Less(t, strings.Index(sentPrompt, "Can we meet Tuesday?"), strings.Index(sentPrompt, "Maybe, what time?"))

	require.NotNil(t, savedReply)
	assert.Equal(t, "thread_1", *savedReply.ThreadID)
	assert.Equal(t, "concise", *savedReply.Tone)
	assert.Equal(t, "Hi, 10am works.", savedReply.ReplyBody)

	f.archive.AssertNotCalled(t, "ArchiveRawResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestGenerateReply_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.GeminiConfig
	}{
		{name: "blank url", cfg: &config.GeminiConfig{ApiUrl: "  ", ApiKey: "k"}},
		{name: "blank key", cfg: &config.GeminiConfig{ApiUrl: "https://example.test", ApiKey: ""}},
		{name: "nil config", cfg: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.cfg = tt.cfg

			text, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hi")})

			assert.Equal(t, "", text)
			assert.ErrorIs(t, err, replycraft_errors.ErrGeminiNotConfigured)
			f.threadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
			f.replyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateReply_DegradedReplyIsStoredAndArchived(t *testing.T) {
	f := newFixture()
	raw := []byte(`{"candidates":[]}`)
	degraded := "Error processing request: response has no candidates"

	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).
		Return(&dto.GeneratedText{Text: degraded, Degraded: true, RawResponse: raw}, nil).Once()
	f.replyRepo.On("Create", mock.Anything, mock.MatchedBy(func(reply *models.GeneratedReply) bool {
		return reply.ReplyBody == degraded && reply.Tone == nil && reply.Degraded
	})).Return("reply_1", nil).Once()
	f.archive.On("ArchiveRawResponse", mock.Anything, "thread_1", "reply_1", raw).Return(nil).Once()
	f.publisher.On("PublishReplyGenerated", mock.Anything, mock.MatchedBy(func(event dto.ReplyGenerated) bool {
		return event.Degraded
	})).Return(nil).Once()

	text, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	require.NoError(t, err)
	assert.Equal(t, degraded, text)
	f.assertExpectations(t)
}

func TestGenerateReply_ThreadPersistenceErrorAborts(t *testing.T) {
	f := newFixture()
	dbErr := errors.New("connection refused")
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("", dbErr).Once()

	_, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	f.generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
	f.replyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateReply_TransportErrorKeepsThread(t *testing.T) {
	f := newFixture()
	apiErr := errors.New("gemini request failed with status code 503")
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

	text, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	assert.Equal(t, "", text)
	assert.ErrorIs(t, err, apiErr)
	f.replyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishReplyGenerated", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestGenerateReply_ReplyPersistenceErrorIsReturned(t *testing.T) {
	f := newFixture()
	dbErr := errors.New("disk full")
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).Return(&dto.GeneratedText{Text: "Hi"}, nil).Once()
	f.replyRepo.On("Create", mock.Anything, mock.Anything).Return("", dbErr).Once()

	_, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	assert.ErrorIs(t, err, dbErr)
	f.publisher.AssertNotCalled(t, "PublishReplyGenerated", mock.Anything, mock.Anything)
}

func TestGenerateReply_SideEffectFailuresAreIgnored(t *testing.T) {
	f := newFixture()
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).
		Return(&dto.GeneratedText{Text: "Error processing request: x", Degraded: true, RawResponse: []byte("x")}, nil).Once()
	f.replyRepo.On("Create", mock.Anything, mock.Anything).Return("reply_1", nil).Once()
	f.archive.On("ArchiveRawResponse", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket missing")).Once()
	f.publisher.On("PublishReplyGenerated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	text, err := f.service().GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	require.NoError(t, err)
	assert.Equal(t, "Error processing request: x", text)
	f.assertExpectations(t)
}

func TestGenerateReply_WithoutOptionalCollaborators(t *testing.T) {
	f := newFixture()
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).
		Return(&dto.GeneratedText{Text: "Error processing request: x", Degraded: true}, nil).Once()
	f.replyRepo.On("Create", mock.Anything, mock.Anything).Return("reply_1", nil).Once()

	svc := f.service()
	svc.archive = nil
	svc.publisher = nil

	_, err := svc.GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})
	require.NoError(t, err)
}

func TestNewThread(t *testing.T) {
	t.Run("legacy body becomes the only message", func(t *testing.T) {
		thread := newThread(dto.GenerateReplyRequest{EmailContent: utils.StringPtr("  Please confirm  ")})

		require.Len(t, thread.Messages, 1)
		assert.Equal(t, 0, thread.Messages[0].Position)
		assert.Nil(t, thread.Messages[0].Sender)
		assert.Nil(t, thread.Messages[0].Recipient)
		assert.Equal(t, "  Please confirm  ", *thread.Messages[0].Body)
	})

	t.Run("blank legacy body stores no messages", func(t *testing.T) {
		thread := newThread(dto.GenerateReplyRequest{EmailContent: utils.StringPtr("   "), Messages: []dto.EmailMessage{}})
		assert.Empty(t, thread.Messages)
		assert.Nil(t, thread.Subject)
	})

	t.Run("messages win over legacy body", func(t *testing.T) {
		thread := newThread(dto.GenerateReplyRequest{
			EmailContent: utils.StringPtr("legacy"),
			Messages:     []dto.EmailMessage{{Body: nil, Sender: utils.StringPtr(" a ")}},
		})

		require.Len(t, thread.Messages, 1)
		assert.Nil(t, thread.Messages[0].Body)
		assert.Equal(t, " a ", *thread.Messages[0].Sender)
	})

	t.Run("client positions are ignored", func(t *testing.T) {
		five, two := 5, 2
		thread := newThread(dto.GenerateReplyRequest{
			Messages: []dto.EmailMessage{{PositionInThread: &five}, {PositionInThread: &two}},
		})

		assert.Equal(t, 0, thread.Messages[0].Position)
		assert.Equal(t, 1, thread.Messages[1].Position)
	})
}

func TestGenerateReply_DoesNotWaitForEventBroker(t *testing.T) {
	f := newFixture()
	f.threadRepo.On("Create", mock.Anything, mock.Anything).Return("thread_1", nil).Once()
	f.generator.On("GenerateText", mock.Anything, mock.Anything).Return(&dto.GeneratedText{Text: "Hello"}, nil).Once()
	f.replyRepo.On("Create", mock.Anything, mock.Anything).Return("reply_1", nil).Once()

	release := make(chan struct{})
	f.publisher.On("PublishReplyGenerated", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil).Once()

	svc := f.service()
	background := events.NewBackgroundPublisher(f.publisher, time.Minute, svc.log)
	svc.publisher = background

	start := time.Now()
	text, err := svc.GenerateReply(context.Background(), dto.GenerateReplyRequest{EmailContent: utils.StringPtr("hello")})

	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
	assert.Less(t, time.Since(start), time.Second)

	close(release)
	require.NoError(t, background.Close())
	f.assertExpectations(t)
}
