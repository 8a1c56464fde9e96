package handlers

import (
	"github.com/customeros/replycraft/api/rest/handlers/emails"
	"github.com/customeros/replycraft/api/rest/handlers/threads"
	"github.com/customeros/replycraft/internal/repository"
	"github.com/customeros/replycraft/services"
)

type APIHandlers struct {
	Emails  *emails.EmailsHandler
	Threads *threads.ThreadsHandler
}

func InitHandlers(s *services.Services, repos *repository.Repositories) *APIHandlers {
	return &APIHandlers{
		Emails:  emails.NewEmailsHandler(s.EmailReplyService, s.RawEmailParser),
		Threads: threads.NewThreadsHandler(repos, s.ResponseArchive),
	}
}
