package interfaces

import "context"

type StorageService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// ResponseArchive keeps raw API responses that could not be turned into a reply.
type ResponseArchive interface {
	ArchiveRawResponse(ctx context.Context, threadID, replyID string, body []byte) error
	// RawResponse returns nil without error when nothing was archived.
	RawResponse(ctx context.Context, threadID, replyID string) ([]byte, error)
}
