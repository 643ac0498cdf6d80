package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FeedPublisher uploads the latest generated calendar feeds to S3 so they
// can be served from a stable public URL. Publishing is optional; when no
// bucket is configured the handlers skip it.
type FeedPublisher struct {
	client *s3.Client
	bucket string
	region string
}

// FeedUploadResult describes a completed feed upload.
type FeedUploadResult struct {
	Key        string    `json:"key"`
	PublicURL  string    `json:"public_url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewFeedPublisherFromEnv creates a publisher when FEEDS_BUCKET_NAME is
// set; otherwise it returns nil with no error and publishing is disabled.
func NewFeedPublisherFromEnv(ctx context.Context) (*FeedPublisher, error) {
	bucket := os.Getenv("FEEDS_BUCKET_NAME")
	if bucket == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &FeedPublisher{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}, nil
}

// PublishFeed uploads one feed document under feeds/<key>.
func (p *FeedPublisher) PublishFeed(ctx context.Context, key, contentType string, body []byte) (*FeedUploadResult, error) {
	fullKey := "feeds/" + key

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(fullKey),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=300"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload feed %s: %w: %w", fullKey, ErrPersistence, err)
	}

	result := &FeedUploadResult{
		Key:        fullKey,
		PublicURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, fullKey),
		Size:       int64(len(body)),
		UploadedAt: time.Now().UTC(),
	}
	log.Printf("Published feed %s (%d bytes)", result.Key, result.Size)
	return result, nil
}
