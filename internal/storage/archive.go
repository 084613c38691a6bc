// Package storage archives generated export files to an S3-compatible
// bucket (Cloudflare R2 in production) so a download can be re-served
// after the fact.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"shipdash-backend/internal/config"
	"shipdash-backend/internal/timeutil"
)

type ExportArchive struct {
	client *s3.Client
	bucket string
}

// NewExportArchive builds the S3 client for the configured bucket.
// Returns nil when archiving is disabled; callers treat a nil archive
// as a no-op.
func NewExportArchive(cfg *config.Config) *ExportArchive {
	if !cfg.Archive.Enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Archive.Region),
	)
	if err != nil {
		log.Printf("[Archive] Failed to configure S3 client: %v", err)
		return nil
	}

	endpoint := cfg.Archive.Endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &ExportArchive{client: client, bucket: cfg.Archive.Bucket}
}

// Store uploads one export file and returns its object key. The key
// embeds the export date and a uuid so repeated exports never collide.
func (a *ExportArchive) Store(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if a == nil {
		return "", nil
	}

	key := fmt.Sprintf("exports/%s/%s_%s",
		timeutil.Now().Format(timeutil.DateLayout), uuid.NewString()[:8], filename)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive upload failed: %w", err)
	}
	return key, nil
}
