package handlers

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"notion-recipe-assistant/internal/notion"
	"notion-recipe-assistant/internal/services"
)

// recipeInstructions steers recipe generation on the create path.
const recipeInstructions = "You are a helpful assistant that provides detailed cooking recipes based on user prompts. All the instructions and details should be clear, concise, and easy to follow."

// creationComment is posted on the new page, addressed to the workspace user.
const creationComment = "your recipe has been created!"

// RecipeCreator is the page surface the create path needs.
type RecipeCreator interface {
	CreatePage(ctx context.Context, databaseID string, properties notion.PropertyBag, children []notion.Block, cover *notion.Cover) (string, error)
	CreateMentionComment(ctx context.Context, pageID, message string) error
	UploadImage(ctx context.Context, data []byte, filename string) (string, error)
}

// RecipeHandler serves the recipe create endpoint. The caller gets an
// immediate acknowledgement; generation and persistence run on the task
// runner.
type RecipeHandler struct {
	notion    RecipeCreator
	generator services.RecipeGenerator
	runner    *services.TaskRunner
}

// NewRecipeHandler wires the create endpoint.
func NewRecipeHandler(creator RecipeCreator, generator services.RecipeGenerator, runner *services.TaskRunner) *RecipeHandler {
	return &RecipeHandler{notion: creator, generator: generator, runner: runner}
}

// Handle validates the request and dispatches the creation workflow.
func (h *RecipeHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	databaseID := req.QueryStringParameters["db"]
	if databaseID == "" {
		return badRequest("Missing required query param: db")
	}
	prompt := req.QueryStringParameters["prompt"]
	if prompt == "" {
		return badRequest("Missing required query param: prompt")
	}

	background := context.WithoutCancel(ctx)
	h.runner.Go("create-recipe", func() error {
		return h.createRecipe(background, databaseID, prompt)
	})

	return jsonResponse(200, map[string]string{"message": "Recipe creation in progress"})
}

// createRecipe runs the full create workflow: generate the recipe and its
// cover image, create the page with properties and body, and confirm with a
// mention comment.
func (h *RecipeHandler) createRecipe(ctx context.Context, databaseID, prompt string) error {
	recipe, err := h.generator.GenerateRecipe(ctx, prompt, recipeInstructions)
	if err != nil {
		return fmt.Errorf("failed to generate recipe: %w", err)
	}

	imageData, err := h.generator.GenerateImage(ctx, services.BuildImagePrompt(recipe))
	if err != nil {
		return fmt.Errorf("failed to generate cover image: %w", err)
	}
	fileUploadID, err := h.notion.UploadImage(ctx, imageData, services.CoverFilename(recipe.Title))
	if err != nil {
		return fmt.Errorf("failed to upload cover image: %w", err)
	}

	pageID, err := h.notion.CreatePage(
		ctx,
		databaseID,
		services.RecipeProperties(recipe),
		services.BuildBodyBlocks(recipe),
		notion.NewFileUploadCover(fileUploadID),
	)
	if err != nil {
		return fmt.Errorf("failed to create recipe page: %w: %w", services.ErrPersistence, err)
	}

	if err := h.notion.CreateMentionComment(ctx, pageID, creationComment); err != nil {
		return fmt.Errorf("failed to post creation comment: %w: %w", services.ErrPersistence, err)
	}
	return nil
}
