package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// Client is a minimal Notion API client covering the page, block, comment
// and file upload operations this service needs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userID     string
}

// NewClient creates a Notion client from the environment. NOTION_TOKEN is
// required; NOTION_USER_ID is only needed for mention comments.
func NewClient() (*Client, error) {
	token := os.Getenv("NOTION_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN environment variable is required")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout: 90 * time.Second,
			},
		},
		baseURL: defaultBaseURL,
		token:   token,
		userID:  os.Getenv("NOTION_USER_ID"),
	}, nil
}

// NewClientWithToken creates a client with an explicit token and base URL,
// used by integration tests against a stub server.
func NewClientWithToken(token, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read notion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notion API returned status %d for %s %s: %s", resp.StatusCode, method, path, truncate(string(data), 300))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse notion response: %w", err)
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// QuerySort orders query results by a property.
type QuerySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	StartCursor string      `json:"start_cursor,omitempty"`
	Filter      interface{} `json:"filter,omitempty"`
	Sorts       []QuerySort `json:"sorts,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryPages returns every page of the database, following pagination.
func (c *Client) QueryPages(ctx context.Context, databaseID string, filter interface{}, sorts []QuerySort) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		var resp queryResponse
		req := queryRequest{StartCursor: cursor, Filter: filter, Sorts: sorts}
		if err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", req, &resp); err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

type createPageRequest struct {
	Parent     map[string]string `json:"parent"`
	Properties PropertyBag       `json:"properties"`
	Children   []Block           `json:"children,omitempty"`
	Cover      *Cover            `json:"cover,omitempty"`
}

// CreatePage creates a database page with properties, optional body blocks
// and an optional cover, returning the new page id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties PropertyBag, children []Block, cover *Cover) (string, error) {
	req := createPageRequest{
		Parent:     map[string]string{"database_id": databaseID},
		Properties: properties,
		Children:   children,
		Cover:      cover,
	}
	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &page); err != nil {
		return "", fmt.Errorf("failed to create page: %w", err)
	}
	return page.ID, nil
}

type updatePageRequest struct {
	Properties PropertyBag `json:"properties"`
	Cover      *Cover      `json:"cover,omitempty"`
}

// UpdatePageProperties writes the property bag back to the page in a single
// update, optionally replacing the cover.
func (c *Client) UpdatePageProperties(ctx context.Context, pageID string, properties PropertyBag, cover *Cover) error {
	req := updatePageRequest{Properties: properties, Cover: cover}
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, req, nil); err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	return nil
}

// FetchPage retrieves a page with its property bag and parent.
func (c *Client) FetchPage(ctx context.Context, pageID string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	return &page, nil
}

// VerifyDatabaseAccess reports whether the page belongs to the expected
// database, returning the page when it does.
func (c *Client) VerifyDatabaseAccess(ctx context.Context, pageID, databaseID string) (*Page, bool, error) {
	page, err := c.FetchPage(ctx, pageID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to verify database access: %w", err)
	}
	if page.Parent.DatabaseID != databaseID {
		return nil, false, nil
	}
	return page, true, nil
}

type blockListResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

func (c *Client) listBlocks(ctx context.Context, pageID string) ([]Block, error) {
	var resp blockListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/blocks/"+pageID+"/children", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list page blocks: %w", err)
	}
	return resp.Results, nil
}

// FetchPageBody flattens the page's text-bearing blocks into plain text,
// one block per line.
func (c *Client) FetchPageBody(ctx context.Context, pageID string) (string, error) {
	blocks, err := c.listBlocks(ctx, pageID)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, block := range blocks {
		var payload *RichTextBlock
		switch block.Type {
		case BlockParagraph:
			payload = block.Paragraph
		case BlockHeading1:
			payload = block.Heading1
		case BlockHeading2:
			payload = block.Heading2
		case BlockHeading3:
			payload = block.Heading3
		case BlockNumberedListItem:
			payload = block.NumberedListItem
		case BlockBulletedListItem:
			payload = block.BulletedListItem
		}
		if payload != nil {
			lines = append(lines, PlainText(payload.RichText))
		}
	}

	body := ""
	for i, line := range lines {
		if i > 0 {
			body += "\n"
		}
		body += line
	}
	return body, nil
}

type appendBlocksRequest struct {
	Children []Block `json:"children"`
}

// ReplacePageBody removes the page's existing blocks and appends the new
// ones. Old content is gone wholesale; there is no diffing.
func (c *Client) ReplacePageBody(ctx context.Context, pageID string, blocks []Block) error {
	existing, err := c.listBlocks(ctx, pageID)
	if err != nil {
		return err
	}
	for _, block := range existing {
		if block.ID == "" {
			continue
		}
		if err := c.do(ctx, http.MethodDelete, "/v1/blocks/"+block.ID, nil, nil); err != nil {
			return fmt.Errorf("failed to delete block %s: %w", block.ID, err)
		}
	}

	if err := c.do(ctx, http.MethodPatch, "/v1/blocks/"+pageID+"/children", appendBlocksRequest{Children: blocks}, nil); err != nil {
		return fmt.Errorf("failed to append page blocks: %w", err)
	}
	return nil
}

type createCommentRequest struct {
	Parent   map[string]string `json:"parent"`
	RichText []RichTextItem    `json:"rich_text"`
}

type commentResponse struct {
	ID       string         `json:"id"`
	RichText []RichTextItem `json:"rich_text"`
}

// CreateComment posts a plain text comment on the page.
func (c *Client) CreateComment(ctx context.Context, pageID, message string) error {
	req := createCommentRequest{
		Parent:   map[string]string{"page_id": pageID},
		RichText: []RichTextItem{NewTextItem(message)},
	}
	if err := c.do(ctx, http.MethodPost, "/v1/comments", req, nil); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}
	return nil
}

// CreateMentionComment posts a comment addressed to the configured user:
// "Hey @user, <message>". Requires NOTION_USER_ID.
func (c *Client) CreateMentionComment(ctx context.Context, pageID, message string) error {
	if c.userID == "" {
		return fmt.Errorf("NOTION_USER_ID is required for mention comments")
	}
	req := createCommentRequest{
		Parent: map[string]string{"page_id": pageID},
		RichText: []RichTextItem{
			NewTextItem("Hey "),
			{Type: "mention", Mention: &Mention{Type: "user", User: &UserMention{ID: c.userID}}},
			NewTextItem(", " + message),
		},
	}
	if err := c.do(ctx, http.MethodPost, "/v1/comments", req, nil); err != nil {
		return fmt.Errorf("failed to post mention comment: %w", err)
	}
	return nil
}

// FetchComment retrieves a comment's text, flattened.
func (c *Client) FetchComment(ctx context.Context, commentID string) (string, error) {
	var resp commentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/comments/"+commentID, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch comment: %w", err)
	}
	return PlainText(resp.RichText), nil
}

type fileUploadResponse struct {
	ID string `json:"id"`
}

// UploadImage uploads PNG bytes as a two-step file upload (create, then
// multipart send) and returns the file upload id for use as a page cover.
func (c *Client) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	var created fileUploadResponse
	createReq := map[string]string{
		"content_type": "image/png",
		"filename":     filename,
	}
	if err := c.do(ctx, http.MethodPost, "/v1/file_uploads", createReq, &created); err != nil {
		return "", fmt.Errorf("failed to create file upload: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/file_uploads/"+created.ID+"/send", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("file upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("file upload returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
	}
	return created.ID, nil
}
