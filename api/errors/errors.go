package errors

import (
	"fmt"
	"sort"
	"strings"
)

// MultiErrors collects request validation failures keyed by field.
type MultiErrors struct {
	Errors map[string][]ErrorInfo `json:"errors"`
}

type ErrorInfo struct {
	Message  string `json:"message"`
	RawError error  `json:"-"`
}

func NewMultiErrors() *MultiErrors {
	return &MultiErrors{
		Errors: make(map[string][]ErrorInfo),
	}
}

func (e *MultiErrors) Add(key, message string, err error) {
	e.Errors[key] = append(e.Errors[key], ErrorInfo{
		Message:  message,
		RawError: err,
	})
}

func (e *MultiErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *MultiErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, err := range e.Errors[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, err.Message))
		}
	}
	return strings.Join(parts, " | ")
}
