package handlers

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

// PageQuerier is the read surface the export endpoints need.
type PageQuerier interface {
	QueryPages(ctx context.Context, databaseID string, filter interface{}, sorts []notion.QuerySort) ([]notion.Page, error)
}

// FeedUploader publishes rendered feeds for stable public URLs.
type FeedUploader interface {
	PublishFeed(ctx context.Context, key, contentType string, body []byte) (*services.FeedUploadResult, error)
}

// CalendarHandler serves the ICS export endpoint.
type CalendarHandler struct {
	notion   PageQuerier
	uploader FeedUploader
}

// NewCalendarHandler wires the ICS export endpoint. The uploader may be
// nil; the feed is then only returned inline.
func NewCalendarHandler(querier PageQuerier, uploader FeedUploader) *CalendarHandler {
	return &CalendarHandler{notion: querier, uploader: uploader}
}

// Handle renders the target database as an iCalendar feed.
func (h *CalendarHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	databaseID := req.QueryStringParameters["db"]
	if databaseID == "" {
		return badRequest("Missing required query param: db")
	}

	pages, err := h.notion.QueryPages(ctx, databaseID, nil, nil)
	if err != nil {
		return serverError("Failed to query calendar database", err)
	}

	var calEvents []*models.CalendarEvent
	for _, page := range pages {
		if event, ok := services.EventFromPage(page); ok {
			calEvents = append(calEvents, event)
		}
	}
	log.Printf("Calendar export: %d pages, %d events", len(pages), len(calEvents))

	feed := services.BuildICS(calEvents)

	if h.uploader != nil {
		if _, err := h.uploader.PublishFeed(ctx, "calendar-"+databaseID+".ics", "text/calendar", []byte(feed)); err != nil {
			log.Printf("Failed to publish calendar feed: %v", err)
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":  "text/calendar; charset=utf-8",
			"Cache-Control": "public, max-age=300",
		},
		Body: feed,
	}
}
