package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
)

// ModifyTag is the literal marker that opts a comment into the modification
// workflow. Detection is case-sensitive substring containment.
const ModifyTag = "#modify"

// HasModifyTag reports whether the comment text requests a modification.
func HasModifyTag(text string) bool {
	return strings.Contains(text, ModifyTag)
}

// ExtractModificationRequest returns the instruction after the first tag
// occurrence, trimmed. An empty instruction is still a valid request and is
// passed to the generator unchanged.
func ExtractModificationRequest(text string) string {
	idx := strings.Index(text, ModifyTag)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+len(ModifyTag):])
}

// NotionAPI is the page/comment surface the modification workflow needs.
// *notion.Client implements it; tests substitute fakes.
type NotionAPI interface {
	FetchComment(ctx context.Context, commentID string) (string, error)
	VerifyDatabaseAccess(ctx context.Context, pageID, databaseID string) (*notion.Page, bool, error)
	FetchPageBody(ctx context.Context, pageID string) (string, error)
	UpdatePageProperties(ctx context.Context, pageID string, properties notion.PropertyBag, cover *notion.Cover) error
	ReplacePageBody(ctx context.Context, pageID string, blocks []notion.Block) error
	CreateComment(ctx context.Context, pageID, message string) error
	UploadImage(ctx context.Context, data []byte, filename string) (string, error)
}

// RecipeGenerator is the generation surface the workflow needs.
// *OpenAIClient implements it.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, input, instructions string) (*models.Recipe, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// ModificationService runs the comment-triggered modify workflow: fetch the
// comment, authorize the page, regenerate the recipe with the user's
// instruction merged in, write everything back, and confirm with a comment.
// Single attempt per step, no rollback; a partially applied update is a
// surfaced failure mode.
type ModificationService struct {
	notion     NotionAPI
	generator  RecipeGenerator
	databaseID string
}

// NewModificationService wires the workflow's collaborators.
func NewModificationService(notionAPI NotionAPI, generator RecipeGenerator, databaseID string) *ModificationService {
	return &ModificationService{
		notion:     notionAPI,
		generator:  generator,
		databaseID: databaseID,
	}
}

// FallbackSummary is posted when the regenerated recipe carries no change
// description.
const FallbackSummary = "Recipe has been updated based on your suggestion"

// Process handles one modification request end to end.
func (m *ModificationService) Process(ctx context.Context, pageID, commentID string) error {
	commentText, err := m.notion.FetchComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to fetch triggering comment: %w", err)
	}

	if !HasModifyTag(commentText) {
		log.Printf("Comment %s has no %s tag, nothing to do", commentID, ModifyTag)
		return nil
	}

	page, ok, err := m.notion.VerifyDatabaseAccess(ctx, pageID, m.databaseID)
	if err != nil {
		return fmt.Errorf("failed to verify page %s: %w", pageID, err)
	}
	if !ok {
		return fmt.Errorf("page %s is not in the recipes database: %w", pageID, ErrAuthorization)
	}

	body, err := m.notion.FetchPageBody(ctx, pageID)
	if err != nil {
		return fmt.Errorf("failed to fetch page body: %w", err)
	}

	current := RecipeFromPage(page.Properties, body)
	instruction := ExtractModificationRequest(commentText)
	log.Printf("Modifying recipe %q on page %s: %q", current.Title, pageID, instruction)

	updated, err := m.generator.GenerateRecipe(ctx, instruction, BuildModificationPrompt(current, instruction))
	if err != nil {
		return fmt.Errorf("failed to regenerate recipe: %w", err)
	}

	cover, err := m.renderCover(ctx, updated)
	if err != nil {
		return err
	}

	if err := m.notion.UpdatePageProperties(ctx, pageID, RecipeProperties(updated), cover); err != nil {
		return fmt.Errorf("failed to write recipe properties: %w: %w", ErrPersistence, err)
	}
	if err := m.notion.ReplacePageBody(ctx, pageID, BuildBodyBlocks(updated)); err != nil {
		return fmt.Errorf("failed to replace page body: %w: %w", ErrPersistence, err)
	}

	summary := updated.ChangeDescription
	if summary == "" {
		summary = FallbackSummary
	}
	if err := m.notion.CreateComment(ctx, pageID, summary); err != nil {
		return fmt.Errorf("failed to post summary comment: %w: %w", ErrPersistence, err)
	}

	log.Printf("Recipe %q updated on page %s", updated.Title, pageID)
	return nil
}

// renderCover generates and uploads a fresh cover image for the regenerated
// recipe.
func (m *ModificationService) renderCover(ctx context.Context, recipe *models.Recipe) (*notion.Cover, error) {
	imageData, err := m.generator.GenerateImage(ctx, BuildImagePrompt(recipe))
	if err != nil {
		return nil, fmt.Errorf("failed to generate cover image: %w", err)
	}

	filename := CoverFilename(recipe.Title)
	fileUploadID, err := m.notion.UploadImage(ctx, imageData, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover image: %w", err)
	}
	return notion.NewFileUploadCover(fileUploadID), nil
}

// CoverFilename builds a unique PNG filename from a recipe title.
func CoverFilename(title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "recipe"
	}
	return fmt.Sprintf("%d-%s.png", time.Now().UnixMilli(), slug)
}

// BuildModificationPrompt serializes the current recipe and the user's
// instruction into the regeneration instructions. The generator must return
// a complete record of the same shape as a fresh creation.
func BuildModificationPrompt(current *models.Recipe, instruction string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant that provides detailed cooking recipes.\n")
	b.WriteString("The user wants to modify an existing recipe based on their request.\n\n")

	b.WriteString("Current recipe:\n")
	fmt.Fprintf(&b, "Title: %s\n", current.Title)
	fmt.Fprintf(&b, "Description: %s\n", current.Description)
	fmt.Fprintf(&b, "Difficulty: %s\n", current.Difficulty)
	fmt.Fprintf(&b, "Country of Origin: %s\n", current.Country)
	fmt.Fprintf(&b, "Prep Time: %d minutes\n", current.PrepTime)
	fmt.Fprintf(&b, "Cook Time: %d minutes\n", current.CookTime)
	fmt.Fprintf(&b, "Servings: %s\n", current.ServingSize)
	fmt.Fprintf(&b, "Meal Type: %s\n", joinOrDefault(current.MealType, "N/A"))
	fmt.Fprintf(&b, "Diet: %s\n", joinOrDefault(current.Diet, "N/A"))
	fmt.Fprintf(&b, "Protein Type: %s\n", joinOrDefault(current.ProteinType, "N/A"))
	fmt.Fprintf(&b, "Allergies: %s\n", joinOrDefault(current.Allergies, "None"))

	b.WriteString("\nIngredients:\n")
	for _, ing := range current.Ingredients {
		fmt.Fprintf(&b, "- %s: %s\n", ing.Ingredient, ing.Quantity)
	}

	b.WriteString("\nNutrition Facts (per serving):\n")
	fmt.Fprintf(&b, "- Calories: %g cal\n", current.Calories)
	fmt.Fprintf(&b, "- Protein: %g g\n", current.Protein)
	fmt.Fprintf(&b, "- Carbs: %g g\n", current.Carbs)
	fmt.Fprintf(&b, "- Fat: %g g\n", current.Fat)
	fmt.Fprintf(&b, "- Fiber: %g g\n", current.Fiber)
	if len(current.OtherNutrition) > 0 {
		b.WriteString("\nOther Nutrition:\n")
		for _, item := range current.OtherNutrition {
			fmt.Fprintf(&b, "- %s: %s\n", item.Item, item.Quantity)
		}
	}

	b.WriteString(formatSteps(current.Preparation, headingPreparation))
	b.WriteString(formatSteps(current.Instructions, headingInstructions))

	fmt.Fprintf(&b, "\nModification request from the user:\n%q\n\n", instruction)
	b.WriteString("Please update the recipe according to this request and return the complete updated recipe details.\n")
	b.WriteString("Also include a 'changeDescription' field that explains what you changed in the recipe.")

	return b.String()
}

func formatSteps(steps []string, label string) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", label)
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

func joinOrDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
