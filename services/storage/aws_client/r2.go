package aws_client

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

// S3Config returns the session config for an AWS S3 bucket.
func S3Config(region, accessKeyID, accessKeySecret string) *aws.Config {
	cfg := &aws.Config{
		Region: aws.String(region),
	}
	// fall back to the default credential chain
	if accessKeyID != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKeyID, accessKeySecret, "")
	}
	return cfg
}

// R2Config returns the session config for a Cloudflare R2 account.
func R2Config(accountID, accessKeyID, accessKeySecret string) *aws.Config {
	return &aws.Config{
		Endpoint:    aws.String(R2Endpoint(accountID)),
		Region:      aws.String("auto"), // R2 uses "auto" region
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
		// R2 does not support virtual-hosted buckets
		S3ForcePathStyle: aws.Bool(true),
	}
}

func R2Endpoint(accountID string) string {
	return "https://" + accountID + ".r2.cloudflarestorage.com"
}
