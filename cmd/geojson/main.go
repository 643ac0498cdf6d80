package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"notion-recipe-assistant/internal/handlers"
	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

func main() {
	notionClient, err := notion.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Notion client: %v", err)
	}

	publisher, err := services.NewFeedPublisherFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to create feed publisher: %v", err)
	}
	var uploader handlers.FeedUploader
	if publisher != nil {
		uploader = publisher
	}

	handler := handlers.NewGeoJSONHandler(notionClient, uploader)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler.Handle(ctx, req), nil
	})
}
