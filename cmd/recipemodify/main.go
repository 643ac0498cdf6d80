package main

import (
	"context"
	"log"
	"os"

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
	openaiClient, err := services.NewOpenAIClient()
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	store, err := services.NewWebhookEventStoreFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to create webhook event store: %v", err)
	}
	var ledger handlers.EventLedger
	if store != nil {
		ledger = store
	}

	service := services.NewModificationService(notionClient, openaiClient, os.Getenv("NOTION_RECIPES_DATABASE_ID"))

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		runner := services.NewTaskRunner()
		handler := handlers.NewModifyHandler(service, runner, ledger)
		resp := handler.Handle(ctx, req)
		if err := runner.Wait(); err != nil {
			log.Printf("Recipe modification failed: %v", err)
		}
		return resp, nil
	})
}
