package handlers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

// tipInstructions steers tip generation.
const tipInstructions = "You are a positive and cheerful spanish language tutor that provides tips to help people learn Spanish. Each tip should be clear, and practical with enough information for me to learn the concept that is being discussed."

// tipCreationComment confirms a created tip page.
const tipCreationComment = "your Spanish tip has been created!"

// TipCreator is the page surface the tip create path needs.
type TipCreator interface {
	CreatePage(ctx context.Context, databaseID string, properties notion.PropertyBag, children []notion.Block, cover *notion.Cover) (string, error)
	CreateMentionComment(ctx context.Context, pageID, message string) error
}

// TipGenerator is the generation surface the tip create path needs.
type TipGenerator interface {
	GenerateTip(ctx context.Context, input, instructions string) (*models.Tip, error)
}

// TipHandler serves the Spanish tip create endpoint.
type TipHandler struct {
	notion    TipCreator
	generator TipGenerator
	runner    *services.TaskRunner
}

// NewTipHandler wires the tip create endpoint.
func NewTipHandler(creator TipCreator, generator TipGenerator, runner *services.TaskRunner) *TipHandler {
	return &TipHandler{notion: creator, generator: generator, runner: runner}
}

// Handle validates the request and dispatches the creation workflow.
func (h *TipHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	databaseID := req.QueryStringParameters["db"]
	if databaseID == "" {
		return badRequest("Missing required query param: db")
	}
	prompt := req.QueryStringParameters["prompt"]
	if prompt == "" {
		return badRequest("Missing required query param: prompt")
	}

	background := context.WithoutCancel(ctx)
	h.runner.Go("create-tip", func() error {
		return h.createTip(background, databaseID, prompt)
	})

	return jsonResponse(200, map[string]string{"message": "Tip creation in progress"})
}

func (h *TipHandler) createTip(ctx context.Context, databaseID, prompt string) error {
	tip, err := h.generator.GenerateTip(ctx, prompt, tipInstructions)
	if err != nil {
		return fmt.Errorf("failed to generate tip: %w", err)
	}

	pageID, err := h.notion.CreatePage(ctx, databaseID, tipProperties(tip), tipBodyBlocks(tip), nil)
	if err != nil {
		return fmt.Errorf("failed to create tip page: %w: %w", services.ErrPersistence, err)
	}

	if err := h.notion.CreateMentionComment(ctx, pageID, tipCreationComment); err != nil {
		return fmt.Errorf("failed to post creation comment: %w: %w", services.ErrPersistence, err)
	}
	return nil
}

// tipProperties encodes the tip's select columns and review date.
func tipProperties(tip *models.Tip) notion.PropertyBag {
	return notion.PropertyBag{
		"Name":          notion.NewTitle(tip.Title),
		"Category":      notion.NewSelect(tip.Category),
		"Subcategory":   notion.NewSelect(tip.Subcategory),
		"CEFR Level":    notion.NewSelect(tip.Level),
		"Last Reviewed": notion.NewDate(time.Now().UTC().Format(time.RFC3339), ""),
	}
}

// tipBodyBlocks renders the tip page body, including a prefilled ChatGPT
// practice link.
func tipBodyBlocks(tip *models.Tip) []notion.Block {
	chatQuery := url.QueryEscape(fmt.Sprintf(
		"You are a Spanish language tutor that provides tips to help people learn Spanish. I am currently studying the topic %q, and I want to practice it. Please provide me with practice prompts that I can use to improve my understanding of this topic.",
		tip.Title,
	))

	markdown := fmt.Sprintf(`[Practice with ChatGPT](https://chat.openai.com/?q=%s)
# Explanation
%s
# Examples
%s
# Practice Prompt
%s`, chatQuery, tip.Explanation, tip.Uses, tip.PracticePrompt)

	return notion.MarkdownToBlocks(markdown)
}
