package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// WebhookEventStore records processed comment event ids so a redelivered
// webhook is handled at most once. Distinct comments racing on the same
// page stay unserialized; last write wins at the remote store.
type WebhookEventStore struct {
	client *dynamodb.Client
	table  string
}

// webhookEventRecord is one processed delivery.
type webhookEventRecord struct {
	EventID     string `dynamodbav:"EventID"`
	ProcessedAt string `dynamodbav:"ProcessedAt"`
	ExpiresAt   int64  `dynamodbav:"ExpiresAt"` // epoch seconds, table TTL attribute
}

// NewWebhookEventStoreFromEnv creates a store when WEBHOOK_EVENTS_TABLE is
// set; otherwise it returns nil with no error and dedupe is disabled.
func NewWebhookEventStoreFromEnv(ctx context.Context) (*WebhookEventStore, error) {
	table := os.Getenv("WEBHOOK_EVENTS_TABLE")
	if table == "" {
		return nil, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &WebhookEventStore{
		client: dynamodb.NewFromConfig(cfg),
		table:  table,
	}, nil
}

// MarkProcessed claims the event id with a conditional put. It returns
// false when the id was already claimed by an earlier delivery.
func (s *WebhookEventStore) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	now := time.Now().UTC()
	record := webhookEventRecord{
		EventID:     eventID,
		ProcessedAt: now.Format(time.RFC3339),
		ExpiresAt:   now.Add(7 * 24 * time.Hour).Unix(),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return false, fmt.Errorf("failed to marshal webhook event record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(EventID)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return false, nil
		}
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}
	return true, nil
}
