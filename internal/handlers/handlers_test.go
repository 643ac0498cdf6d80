package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

// fakePages covers the creator interfaces for both create endpoints.
type fakePages struct {
	createdProps    []notion.PropertyBag
	createdChildren [][]notion.Block
	createdCovers   []*notion.Cover
	mentions        []string
	uploads         int
}

func (f *fakePages) CreatePage(ctx context.Context, databaseID string, properties notion.PropertyBag, children []notion.Block, cover *notion.Cover) (string, error) {
	f.createdProps = append(f.createdProps, properties)
	f.createdChildren = append(f.createdChildren, children)
	f.createdCovers = append(f.createdCovers, cover)
	return "page-new", nil
}

func (f *fakePages) CreateMentionComment(ctx context.Context, pageID, message string) error {
	f.mentions = append(f.mentions, message)
	return nil
}

func (f *fakePages) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	f.uploads++
	return "upload-1", nil
}

type fakeRecipeGen struct {
	inputs []string
}

func (f *fakeRecipeGen) GenerateRecipe(ctx context.Context, input, instructions string) (*models.Recipe, error) {
	f.inputs = append(f.inputs, input)
	return &models.Recipe{
		Title:        "Pad Thai",
		Preparation:  []string{"Soak the noodles"},
		Instructions: []string{"Stir fry everything"},
	}, nil
}

func (f *fakeRecipeGen) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return []byte("png"), nil
}

type fakeTipGen struct {
	inputs []string
}

func (f *fakeTipGen) GenerateTip(ctx context.Context, input, instructions string) (*models.Tip, error) {
	f.inputs = append(f.inputs, input)
	return &models.Tip{
		Title:          "Ser vs Estar",
		Category:       "🔷 Core Grammar & Verb Use",
		Subcategory:    "Verb Usage / Meaning Differences",
		Level:          "🟢 A1: Beginner",
		Explanation:    "Both mean to be.",
		Uses:           "- Soy alto.\n- Estoy cansado.",
		PracticePrompt: "Write five sentences using each.",
	}, nil
}

func request(params map[string]string) events.APIGatewayProxyRequest {
	return events.APIGatewayProxyRequest{QueryStringParameters: params}
}

func decodeBody(t *testing.T, resp events.APIGatewayProxyResponse) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("response body %q: %v", resp.Body, err)
	}
	return body
}

func TestRecipeHandlerValidation(t *testing.T) {
	runner := services.NewTaskRunner()
	handler := NewRecipeHandler(&fakePages{}, &fakeRecipeGen{}, runner)

	resp := handler.Handle(context.Background(), request(nil))
	if resp.StatusCode != 400 {
		t.Errorf("missing db: status = %d", resp.StatusCode)
	}

	resp = handler.Handle(context.Background(), request(map[string]string{"db": "db-1"}))
	if resp.StatusCode != 400 {
		t.Errorf("missing prompt: status = %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); !strings.Contains(body["error"], "prompt") {
		t.Errorf("error = %q", body["error"])
	}

	if err := runner.Wait(); err != nil {
		t.Errorf("work dispatched on invalid request: %v", err)
	}
}

func TestRecipeHandlerCreates(t *testing.T) {
	pages := &fakePages{}
	gen := &fakeRecipeGen{}
	runner := services.NewTaskRunner()
	handler := NewRecipeHandler(pages, gen, runner)

	resp := handler.Handle(context.Background(), request(map[string]string{
		"db":     "db-1",
		"prompt": "a thai noodle dish",
	}))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] != "Recipe creation in progress" {
		t.Errorf("message = %q", body["message"])
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("background work: %v", err)
	}
	if len(gen.inputs) != 1 || gen.inputs[0] != "a thai noodle dish" {
		t.Errorf("generator inputs = %v", gen.inputs)
	}
	if len(pages.createdProps) != 1 {
		t.Fatalf("pages created = %d", len(pages.createdProps))
	}
	if got := pages.createdProps[0].TitleValue(services.ColName); got != "Pad Thai" {
		t.Errorf("created title = %q", got)
	}
	if pages.uploads != 1 || pages.createdCovers[0] == nil {
		t.Errorf("cover not attached: uploads=%d", pages.uploads)
	}
	if len(pages.mentions) != 1 || pages.mentions[0] != "your recipe has been created!" {
		t.Errorf("mentions = %v", pages.mentions)
	}
}

func TestTipHandlerCreates(t *testing.T) {
	pages := &fakePages{}
	gen := &fakeTipGen{}
	runner := services.NewTaskRunner()
	handler := NewTipHandler(pages, gen, runner)

	resp := handler.Handle(context.Background(), request(map[string]string{
		"db":     "db-tips",
		"prompt": "ser vs estar",
	}))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("background work: %v", err)
	}
	if len(pages.createdProps) != 1 {
		t.Fatalf("pages created = %d", len(pages.createdProps))
	}
	props := pages.createdProps[0]
	if got := props.TitleValue("Name"); got != "Ser vs Estar" {
		t.Errorf("title = %q", got)
	}
	if got := props.SelectValue("CEFR Level"); got != "🟢 A1: Beginner" {
		t.Errorf("level = %q", got)
	}
	if props.DateValueOf("Last Reviewed") == nil {
		t.Error("Last Reviewed not set")
	}

	blocks := pages.createdChildren[0]
	if len(blocks) == 0 {
		t.Fatal("no body blocks")
	}
	link := blocks[0]
	if link.Type != notion.BlockParagraph || link.Paragraph == nil {
		t.Fatalf("first block = %+v, want practice link paragraph", link)
	}
	item := link.Paragraph.RichText[0]
	if item.Text == nil || item.Text.Link == nil || !strings.HasPrefix(item.Text.Link.URL, "https://chat.openai.com/?q=") {
		t.Errorf("practice link = %+v", item)
	}
	if len(pages.mentions) != 1 || pages.mentions[0] != "your Spanish tip has been created!" {
		t.Errorf("mentions = %v", pages.mentions)
	}
}

// modifyNotion is the minimal NotionAPI fake the webhook tests need.
type modifyNotion struct {
	comment        string
	commentFetches int
}

func (f *modifyNotion) FetchComment(ctx context.Context, commentID string) (string, error) {
	f.commentFetches++
	return f.comment, nil
}

func (f *modifyNotion) VerifyDatabaseAccess(ctx context.Context, pageID, databaseID string) (*notion.Page, bool, error) {
	return &notion.Page{ID: pageID, Properties: notion.PropertyBag{}}, true, nil
}

func (f *modifyNotion) FetchPageBody(ctx context.Context, pageID string) (string, error) {
	return "", nil
}

func (f *modifyNotion) UpdatePageProperties(ctx context.Context, pageID string, properties notion.PropertyBag, cover *notion.Cover) error {
	return nil
}

func (f *modifyNotion) ReplacePageBody(ctx context.Context, pageID string, blocks []notion.Block) error {
	return nil
}

func (f *modifyNotion) CreateComment(ctx context.Context, pageID, message string) error {
	return nil
}

func (f *modifyNotion) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	return "upload-1", nil
}

type fakeLedger struct {
	first bool
	seen  []string
}

func (f *fakeLedger) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	f.seen = append(f.seen, eventID)
	return f.first, nil
}

func webhookBody(t *testing.T) string {
	t.Helper()
	payload := models.WebhookPayload{
		Type:   models.EventTypeCommentCreated,
		Entity: models.WebhookEntity{ID: "cmt-1", Type: "comment"},
		Data: models.WebhookData{
			PageID: "page-1",
			Parent: models.WebhookParent{ID: "db-1", Type: "database"},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(data)
}

func TestModifyHandlerRejectsBadPayload(t *testing.T) {
	t.Setenv("NOTION_RECIPES_DATABASE_ID", "db-recipes")
	runner := services.NewTaskRunner()
	service := services.NewModificationService(&modifyNotion{}, &fakeRecipeGen{}, "db-recipes")
	handler := NewModifyHandler(service, runner, nil)

	for _, body := range []string{"", "not json", `{"type": "page.updated"}`} {
		resp := handler.Handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
		if resp.StatusCode != 400 {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
		if decoded := decodeBody(t, resp); decoded["error"] != "Invalid webhook payload" {
			t.Errorf("body %q: error = %q", body, decoded["error"])
		}
	}
}

func TestModifyHandlerRequiresDatabaseConfig(t *testing.T) {
	t.Setenv("NOTION_RECIPES_DATABASE_ID", "")
	runner := services.NewTaskRunner()
	service := services.NewModificationService(&modifyNotion{}, &fakeRecipeGen{}, "")
	handler := NewModifyHandler(service, runner, nil)

	resp := handler.Handle(context.Background(), events.APIGatewayProxyRequest{Body: webhookBody(t)})
	if resp.StatusCode != 500 {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestModifyHandlerDispatches(t *testing.T) {
	t.Setenv("NOTION_RECIPES_DATABASE_ID", "db-recipes")
	notionFake := &modifyNotion{comment: "nice, but no tag here"}
	runner := services.NewTaskRunner()
	service := services.NewModificationService(notionFake, &fakeRecipeGen{}, "db-recipes")
	handler := NewModifyHandler(service, runner, nil)

	resp := handler.Handle(context.Background(), events.APIGatewayProxyRequest{Body: webhookBody(t)})
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] != "Recipe modification in progress" {
		t.Errorf("message = %q", body["message"])
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("background work: %v", err)
	}
	if notionFake.commentFetches != 1 {
		t.Errorf("comment fetches = %d, want 1", notionFake.commentFetches)
	}
}

func TestModifyHandlerSkipsDuplicateDeliveries(t *testing.T) {
	t.Setenv("NOTION_RECIPES_DATABASE_ID", "db-recipes")
	notionFake := &modifyNotion{comment: "#modify make it vegan"}
	ledger := &fakeLedger{first: false}
	runner := services.NewTaskRunner()
	service := services.NewModificationService(notionFake, &fakeRecipeGen{}, "db-recipes")
	handler := NewModifyHandler(service, runner, ledger)

	resp := handler.Handle(context.Background(), events.APIGatewayProxyRequest{Body: webhookBody(t)})
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["message"] != "Event already processed" {
		t.Errorf("message = %q", body["message"])
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if notionFake.commentFetches != 0 {
		t.Errorf("workflow ran despite duplicate delivery")
	}
	if len(ledger.seen) != 1 || ledger.seen[0] != "cmt-1" {
		t.Errorf("ledger saw %v", ledger.seen)
	}
}

type fakeQuerier struct {
	pages []notion.Page
	sorts []notion.QuerySort
}

func (f *fakeQuerier) QueryPages(ctx context.Context, databaseID string, filter interface{}, sorts []notion.QuerySort) ([]notion.Page, error) {
	f.sorts = sorts
	return f.pages, nil
}

func TestCalendarHandler(t *testing.T) {
	confirmed := true
	querier := &fakeQuerier{pages: []notion.Page{
		{ID: "evt-1", Properties: notion.PropertyBag{
			"Name":   notion.NewTitle("Boat tour"),
			"Status": {Type: notion.TypeStatus, Status: &notion.SelectOption{Name: "Scheduled"}},
			"AllDay": {Type: notion.TypeCheckbox, Checkbox: &confirmed},
			"Date":   notion.NewDate("2025-06-01", ""),
		}},
	}}
	handler := NewCalendarHandler(querier, nil)

	resp := handler.Handle(context.Background(), request(map[string]string{"db": "db-cal"}))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Headers["Content-Type"]; !strings.HasPrefix(got, "text/calendar") {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(resp.Body, "BEGIN:VEVENT") {
		t.Errorf("body missing events:\n%s", resp.Body)
	}

	resp = handler.Handle(context.Background(), request(nil))
	if resp.StatusCode != 400 {
		t.Errorf("missing db: status = %d", resp.StatusCode)
	}
}

func TestGeoJSONHandler(t *testing.T) {
	querier := &fakeQuerier{pages: []notion.Page{
		{ID: "p1", Properties: notion.PropertyBag{
			"Name": notion.NewTitle("Pike Place"),
			"Where": {Type: notion.TypePlace, Place: &notion.PlaceValue{
				Latitude: 47.609, Longitude: -122.342,
			}},
		}},
	}}
	handler := NewGeoJSONHandler(querier, nil)

	resp := handler.Handle(context.Background(), request(map[string]string{
		"db":         "db-places",
		"coordsProp": "Where",
		"startProp":  "When",
	}))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Headers["Content-Type"]; got != "application/geo+json" {
		t.Errorf("content type = %q", got)
	}
	if len(querier.sorts) != 1 || querier.sorts[0].Property != "When" || querier.sorts[0].Direction != "ascending" {
		t.Errorf("sorts = %+v", querier.sorts)
	}

	var collection struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &collection); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(collection.Features) != 1 {
		t.Fatalf("features = %d", len(collection.Features))
	}
	coords := collection.Features[0].Geometry.Coordinates
	if len(coords) != 2 || coords[0] != -122.342 || coords[1] != 47.609 {
		t.Errorf("coordinates = %v", coords)
	}
	if name := collection.Features[0].Properties["name"]; name != "Pike Place" {
		t.Errorf("name = %v", name)
	}
}
