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
	openaiClient, err := services.NewOpenAIClient()
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		runner := services.NewTaskRunner()
		handler := handlers.NewRecipeHandler(notionClient, openaiClient, runner)
		resp := handler.Handle(ctx, req)
		// The execution environment freezes once we return, so the
		// dispatched work must finish first.
		if err := runner.Wait(); err != nil {
			log.Printf("Recipe creation failed: %v", err)
		}
		return resp, nil
	})
}
