// Command devserver runs every endpoint on a local HTTP port so the
// workflows can be exercised without deploying. Environment variables are
// loaded from .env when present.
package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/joho/godotenv"

	"notion-recipe-assistant/internal/handlers"
	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

type proxyHandler func(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse

// adapt bridges net/http to the API Gateway handler shape. The factory
// receives a fresh runner per request; dispatched background work is waited
// on before responding so failures are visible in the local logs.
func adapt(factory func(runner *services.TaskRunner) proxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runner := services.NewTaskRunner()
		handler := factory(runner)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		params := map[string]string{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		resp := handler(r.Context(), events.APIGatewayProxyRequest{
			HTTPMethod:            r.Method,
			Path:                  r.URL.Path,
			QueryStringParameters: params,
			Body:                  string(body),
		})

		if err := runner.Wait(); err != nil {
			log.Printf("Background work failed: %v", err)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.StatusCode)
		io.WriteString(w, resp.Body)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	notionClient, err := notion.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Notion client: %v", err)
	}
	openaiClient, err := services.NewOpenAIClient()
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	ctx := context.Background()
	publisher, err := services.NewFeedPublisherFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to create feed publisher: %v", err)
	}
	var uploader handlers.FeedUploader
	if publisher != nil {
		uploader = publisher
	}

	store, err := services.NewWebhookEventStoreFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to create webhook event store: %v", err)
	}
	var ledger handlers.EventLedger
	if store != nil {
		ledger = store
	}

	modifyService := services.NewModificationService(notionClient, openaiClient, os.Getenv("NOTION_RECIPES_DATABASE_ID"))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/recipes", adapt(func(runner *services.TaskRunner) proxyHandler {
		return handlers.NewRecipeHandler(notionClient, openaiClient, runner).Handle
	}))
	mux.HandleFunc("/api/spanish-tips", adapt(func(runner *services.TaskRunner) proxyHandler {
		return handlers.NewTipHandler(notionClient, openaiClient, runner).Handle
	}))
	mux.HandleFunc("/api/recipes/modify", adapt(func(runner *services.TaskRunner) proxyHandler {
		return handlers.NewModifyHandler(modifyService, runner, ledger).Handle
	}))
	mux.HandleFunc("/api/calendar", adapt(func(*services.TaskRunner) proxyHandler {
		return handlers.NewCalendarHandler(notionClient, uploader).Handle
	}))
	mux.HandleFunc("/api/geojson", adapt(func(*services.TaskRunner) proxyHandler {
		return handlers.NewGeoJSONHandler(notionClient, uploader).Handle
	}))

	addr := os.Getenv("DEV_SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Dev server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
