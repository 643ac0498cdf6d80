package models

import (
	"encoding/json"
	"testing"
)

func validPayload() WebhookPayload {
	return WebhookPayload{
		Type:   EventTypeCommentCreated,
		Entity: WebhookEntity{ID: "cmt-1", Type: "comment"},
		Data: WebhookData{
			PageID: "page-1",
			Parent: WebhookParent{ID: "db-1", Type: "database"},
		},
	}
}

func TestWebhookValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*WebhookPayload)
		want   bool
	}{
		{"valid", func(p *WebhookPayload) {}, true},
		{"wrong type", func(p *WebhookPayload) { p.Type = "page.updated" }, false},
		{"missing entity id", func(p *WebhookPayload) { p.Entity.ID = "" }, false},
		{"entity not a comment", func(p *WebhookPayload) { p.Entity.Type = "page" }, false},
		{"missing page id", func(p *WebhookPayload) { p.Data.PageID = "" }, false},
		{"missing parent", func(p *WebhookPayload) { p.Data.Parent.ID = "" }, false},
	}
	for _, tc := range cases {
		payload := validPayload()
		tc.mutate(&payload)
		if got := payload.Validate(); got != tc.want {
			t.Errorf("%s: Validate = %v, want %v", tc.name, got, tc.want)
		}
	}

	var nilPayload *WebhookPayload
	if nilPayload.Validate() {
		t.Error("nil payload validated")
	}
}

func TestWebhookDecode(t *testing.T) {
	raw := `{
		"type": "comment.created",
		"entity": {"id": "cmt-9", "type": "comment"},
		"data": {"page_id": "page-7", "parent": {"id": "db-3", "type": "database"}}
	}`
	var payload WebhookPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Validate() {
		t.Fatal("payload invalid")
	}
	if payload.TriggerCommentID() != "cmt-9" {
		t.Errorf("TriggerCommentID = %q", payload.TriggerCommentID())
	}
	if payload.TargetPageID() != "page-7" {
		t.Errorf("TargetPageID = %q", payload.TargetPageID())
	}
}
