package models

import "log"

// WebhookPayload is the inbound comment webhook delivery.
type WebhookPayload struct {
	Type   string        `json:"type"`
	Entity WebhookEntity `json:"entity"`
	Data   WebhookData   `json:"data"`
}

// WebhookEntity identifies the object the event is about.
type WebhookEntity struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// WebhookData carries the event context.
type WebhookData struct {
	PageID string        `json:"page_id"`
	Parent WebhookParent `json:"parent"`
}

// WebhookParent locates the page's parent.
type WebhookParent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// EventTypeCommentCreated is the only event type the modify path accepts.
const EventTypeCommentCreated = "comment.created"

// Validate reports whether the payload is a well-formed comment.created
// delivery. Anything else is acknowledged upstream without side effects.
func (p *WebhookPayload) Validate() bool {
	if p == nil {
		log.Printf("Webhook validation failed: empty payload")
		return false
	}
	if p.Type != EventTypeCommentCreated {
		log.Printf("Webhook validation failed: type is not %s: %q", EventTypeCommentCreated, p.Type)
		return false
	}
	if p.Entity.ID == "" || p.Entity.Type != "comment" {
		log.Printf("Webhook validation failed: entity id=%q type=%q", p.Entity.ID, p.Entity.Type)
		return false
	}
	if p.Data.PageID == "" || p.Data.Parent.ID == "" {
		log.Printf("Webhook validation failed: page_id=%q parent id=%q", p.Data.PageID, p.Data.Parent.ID)
		return false
	}
	return true
}

// TargetPageID returns the page the triggering comment was made on.
func (p *WebhookPayload) TargetPageID() string {
	return p.Data.PageID
}

// TriggerCommentID returns the id of the triggering comment.
func (p *WebhookPayload) TriggerCommentID() string {
	return p.Entity.ID
}
