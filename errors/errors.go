package errors

import "github.com/pkg/errors"

var (
	// configuration errors
	ErrGeminiNotConfigured = errors.New("GEMINI_API_URL and GEMINI_API_KEY must be set as environment variables")

	// thread errors
	ErrThreadNotFound = errors.New("thread not found")

	// request errors
	ErrEmptyRawMessage = errors.New("raw email message is empty")
)
