package storage

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/customeros/replycraft/config"
	"github.com/customeros/replycraft/interfaces"
	"github.com/customeros/replycraft/services/storage/aws_client"
)

const (
	ProviderS3 = "s3"
	ProviderR2 = "r2"
)

// NewS3StorageService creates a StorageService configured for AWS S3
func NewS3StorageService(awsRegion, accessKeyID, accessKeySecret, bucketName string) (interfaces.StorageService, error) {
	client, err := aws_client.NewS3Client(aws_client.S3Config(awsRegion, accessKeyID, accessKeySecret))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create s3 session")
	}
	return NewStorageService(client, bucketName), nil
}

// NewR2StorageService creates a StorageService configured for Cloudflare R2
func NewR2StorageService(accountID, accessKeyID, accessKeySecret, bucketName string) (interfaces.StorageService, error) {
	client, err := aws_client.NewS3Client(aws_client.R2Config(accountID, accessKeyID, accessKeySecret))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create r2 session")
	}
	return NewStorageService(client, bucketName), nil
}

func NewStorageServiceFromConfig(cfg *config.ArchiveConfig) (interfaces.StorageService, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderS3, "":
		return NewS3StorageService(cfg.AwsRegion, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Bucket)
	case ProviderR2:
		if cfg.R2AccountID == "" {
			return nil, errors.New("ARCHIVE_R2_ACCOUNT_ID is required for the r2 provider")
		}
		return NewR2StorageService(cfg.R2AccountID, cfg.AccessKeyID, cfg.AccessKeySecret, cfg.Bucket)
	default:
		return nil, errors.Errorf("unknown archive provider %q", cfg.Provider)
	}
}
