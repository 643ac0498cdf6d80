package handlers

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/services"
)

// EventLedger records webhook deliveries so redeliveries become no-ops.
type EventLedger interface {
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
}

// ModifyHandler serves the comment webhook endpoint.
type ModifyHandler struct {
	service    *services.ModificationService
	runner     *services.TaskRunner
	ledger     EventLedger
	databaseID string
}

// NewModifyHandler wires the webhook endpoint. The ledger may be nil, in
// which case redeliveries are dispatched again and last write wins.
func NewModifyHandler(service *services.ModificationService, runner *services.TaskRunner, ledger EventLedger) *ModifyHandler {
	return &ModifyHandler{
		service:    service,
		runner:     runner,
		ledger:     ledger,
		databaseID: os.Getenv("NOTION_RECIPES_DATABASE_ID"),
	}
}

// Handle validates the webhook delivery and dispatches the modification
// workflow. Every well-formed delivery is acknowledged with 200 so the
// sender does not retry; workflow failures surface in logs only.
func (h *ModifyHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	var payload models.WebhookPayload
	if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
		log.Printf("Failed to parse webhook body: %v", err)
		return badRequest("Invalid webhook payload")
	}
	if !payload.Validate() {
		return badRequest("Invalid webhook payload")
	}
	if h.databaseID == "" {
		return serverError("NOTION_RECIPES_DATABASE_ID not configured", services.ErrConfiguration)
	}

	if h.ledger != nil {
		first, err := h.ledger.MarkProcessed(ctx, payload.TriggerCommentID())
		if err != nil {
			// Ledger trouble must not block the workflow; worst case a
			// redelivery runs twice and the second write wins.
			log.Printf("Webhook ledger error for event %s: %v", payload.TriggerCommentID(), err)
		} else if !first {
			log.Printf("Skipping already-processed webhook event %s", payload.TriggerCommentID())
			return jsonResponse(200, map[string]string{"message": "Event already processed"})
		}
	}

	pageID := payload.TargetPageID()
	commentID := payload.TriggerCommentID()
	background := context.WithoutCancel(ctx)
	h.runner.Go("modify-recipe", func() error {
		return h.service.Process(background, pageID, commentID)
	})

	return jsonResponse(200, map[string]string{"message": "Recipe modification in progress"})
}
