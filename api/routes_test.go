package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/internal/logger"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/services"
	"github.com/customeros/replycraft/services/email_parser"
)

type MockEmailReplyService struct {
	mock.Mock
}

func (m *MockEmailReplyService) GenerateReply(ctx context.Context, request dto.GenerateReplyRequest) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

func newTestEngine(origins []string, replyService *MockEmailReplyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewAppLogger(&logger.Config{LogLevel: "fatal"})
	log.InitLogger()

	r := gin.New()
	RegisterRoutes(r, &config.AppConfig{CorsAllowedOrigins: origins}, &services.Services{
		EmailReplyService: replyService,
		RawEmailParser:    email_parser.NewRawEmailParser(),
	}, &repository.Repositories{}, log)
	return r
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, CorsConfig([]string{"*"}).AllowAllOrigins)
	assert.True(t, CorsConfig(nil).AllowAllOrigins)
	assert.True(t, CorsConfig([]string{" "}).AllowAllOrigins)

	restricted := CorsConfig([]string{"https://app.example.com", " chrome-extension://abc "})
	assert.False(t, restricted.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example.com", "chrome-extension://abc"}, restricted.AllowOrigins)
}

func TestRoutes_Health(t *testing.T) {
	r := newTestEngine([]string{"*"}, new(MockEmailReplyService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_GenerateCrossOrigin(t *testing.T) {
	replyService := new(MockEmailReplyService)
	replyService.On("GenerateReply", mock.Anything, mock.Anything).Return("Hi there", nil).Once()
	r := newTestEngine([]string{"https://mail.example.com"}, replyService)

	req := httptest.NewRequest(http.MethodPost, "/api/email/generate", strings.NewReader(`{"emailContent":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://mail.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hi there", w.Body.String())
	assert.Equal(t, "https://mail.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	replyService.AssertExpectations(t)
}

func TestRoutes_DisallowedOrigin(t *testing.T) {
	r := newTestEngine([]string{"https://mail.example.com"}, new(MockEmailReplyService))

	req := httptest.NewRequest(http.MethodPost, "/api/email/generate", strings.NewReader(`{}`))
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
