package handlers

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

// GeoJSONHandler serves the GeoJSON export endpoint.
type GeoJSONHandler struct {
	notion   PageQuerier
	uploader FeedUploader
}

// NewGeoJSONHandler wires the GeoJSON export endpoint. The uploader may be
// nil; the feed is then only returned inline.
func NewGeoJSONHandler(querier PageQuerier, uploader FeedUploader) *GeoJSONHandler {
	return &GeoJSONHandler{notion: querier, uploader: uploader}
}

// Handle renders the target database as a GeoJSON FeatureCollection. The
// column names are overridable per request so arbitrary travel databases
// can be mapped.
func (h *GeoJSONHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	params := req.QueryStringParameters
	databaseID := params["db"]
	if databaseID == "" {
		return badRequest("Missing required query param: db")
	}

	cfg := services.GeoJSONConfig{
		TitleProp:    params["titleProp"],
		StartProp:    params["startProp"],
		EndProp:      params["endProp"],
		LocationProp: params["locationProp"],
		CoordsProp:   params["coordsProp"],
		URLProp:      params["urlProp"],
	}

	sortProp := cfg.StartProp
	if sortProp == "" {
		sortProp = "Start"
	}
	sorts := []notion.QuerySort{{Property: sortProp, Direction: "ascending"}}

	pages, err := h.notion.QueryPages(ctx, databaseID, nil, sorts)
	if err != nil {
		return serverError("Failed to query database", err)
	}

	collection := services.BuildGeoJSON(pages, cfg)
	body, err := collection.MarshalJSON()
	if err != nil {
		return serverError("Failed to encode GeoJSON", err)
	}
	log.Printf("GeoJSON export: %d pages, %d features", len(pages), len(collection.Features))

	if h.uploader != nil {
		if _, err := h.uploader.PublishFeed(ctx, "places-"+databaseID+".geojson", "application/geo+json", body); err != nil {
			log.Printf("Failed to publish GeoJSON feed: %v", err)
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type":  "application/geo+json",
			"Cache-Control": "public, max-age=300",
		},
		Body: string(body),
	}
}
