package services

import (
	"fmt"
	"regexp"
	"strings"

	"notion-recipe-assistant/internal/models"
	"notion-recipe-assistant/internal/notion"
)

// Recipe database column names. The property mapping is hand-built for this
// document type; a schema change is a one-line edit here.
const (
	ColName           = "Name"
	ColDescription    = "Description"
	ColCountry        = "Country of Origin"
	ColDifficulty     = "Difficulty"
	ColPrepTime       = "Prep Time (min)"
	ColCookTime       = "Cook Time (min)"
	ColServingSize    = "Serving Size"
	ColCalories       = "Calories (cal)"
	ColProtein        = "Protein (g)"
	ColCarbs          = "Carbs (g)"
	ColFat            = "Fat (g)"
	ColFiber          = "Fiber (g)"
	ColAllergies      = "Allergies"
	ColDiet           = "Diet"
	ColMealType       = "Meal Type"
	ColProteinType    = "Protein Type"
	ColIngredients    = "Ingredients"
	ColNutritionFacts = "Nutrition Facts"
)

// Body section headings written by the create path and parsed back by the
// assembler.
const (
	headingPreparation  = "Preparation"
	headingInstructions = "Instructions"
)

// ListItem is one key/value entry of a structured list field.
type ListItem struct {
	Key   string
	Value string
}

const listSeparator = " - "

// SerializeList encodes the items one per line as "**key** - value". The
// result is markdown; callers render it through MarkdownToRichText before
// writing. Round-trips through ParseList for any key containing neither
// " - " nor a newline; keys containing " - " are a documented limitation of
// the convention, not handled.
func SerializeList(items []ListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("**%s**%s%s", item.Key, listSeparator, item.Value))
	}
	return strings.Join(lines, "\n")
}

// ParseList decodes a list field from its flattened rich text. Lines that
// do not produce a non-empty key are dropped silently.
func ParseList(text string) []ListItem {
	var items []ListItem
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, listSeparator)
		if len(parts) < 2 {
			continue
		}
		key := strings.TrimSpace(strings.ReplaceAll(parts[0], "**", ""))
		if key == "" {
			continue
		}
		value := strings.TrimSpace(strings.Join(parts[1:], listSeparator))
		items = append(items, ListItem{Key: key, Value: value})
	}
	return items
}

// IngredientsRichText renders the ingredients list field.
func IngredientsRichText(recipe *models.Recipe) []notion.RichTextItem {
	items := make([]ListItem, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		items = append(items, ListItem{Key: ing.Ingredient, Value: ing.Quantity})
	}
	return notion.MarkdownToRichText(SerializeList(items))
}

// NutritionRichText renders the other-nutrition list field.
func NutritionRichText(recipe *models.Recipe) []notion.RichTextItem {
	items := make([]ListItem, 0, len(recipe.OtherNutrition))
	for _, nut := range recipe.OtherNutrition {
		items = append(items, ListItem{Key: nut.Item, Value: nut.Quantity})
	}
	return notion.MarkdownToRichText(SerializeList(items))
}

// RecipeProperties encodes the full recipe into the page property bag,
// list fields included. Step sequences go to the page body, not here.
func RecipeProperties(recipe *models.Recipe) notion.PropertyBag {
	return notion.PropertyBag{
		ColName:           notion.NewTitle(recipe.Title),
		ColDescription:    notion.NewRichText(notion.MarkdownToRichText(recipe.Description)),
		ColCountry:        notion.NewText(recipe.Country),
		ColDifficulty:     notion.NewSelect(recipe.Difficulty),
		ColPrepTime:       notion.NewNumber(float64(recipe.PrepTime)),
		ColCookTime:       notion.NewNumber(float64(recipe.CookTime)),
		ColServingSize:    notion.NewText(recipe.ServingSize),
		ColCalories:       notion.NewNumber(recipe.Calories),
		ColProtein:        notion.NewNumber(recipe.Protein),
		ColCarbs:          notion.NewNumber(recipe.Carbs),
		ColFat:            notion.NewNumber(recipe.Fat),
		ColFiber:          notion.NewNumber(recipe.Fiber),
		ColAllergies:      notion.NewMultiSelect(recipe.Allergies),
		ColDiet:           notion.NewMultiSelect(recipe.Diet),
		ColMealType:       notion.NewMultiSelect(recipe.MealType),
		ColProteinType:    notion.NewMultiSelect(recipe.ProteinType),
		ColIngredients:    notion.NewRichText(IngredientsRichText(recipe)),
		ColNutritionFacts: notion.NewRichText(NutritionRichText(recipe)),
	}
}

// RecipeFromPage reconstructs a recipe from the page property bag plus the
// optional body text. Every field is populated, at its zero value when the
// page lacks it; there is no partial result.
func RecipeFromPage(bag notion.PropertyBag, body string) *models.Recipe {
	ingredients := make([]models.Ingredient, 0)
	for _, item := range ParseList(bag.TextValue(ColIngredients)) {
		ingredients = append(ingredients, models.Ingredient{Ingredient: item.Key, Quantity: item.Value})
	}

	otherNutrition := make([]models.NutritionItem, 0)
	for _, item := range ParseList(bag.TextValue(ColNutritionFacts)) {
		otherNutrition = append(otherNutrition, models.NutritionItem{Item: item.Key, Quantity: item.Value})
	}

	preparation, instructions := parseBodySteps(body)

	return &models.Recipe{
		Title:          bag.TitleValue(ColName),
		Description:    bag.TextValue(ColDescription),
		Country:        bag.TextValue(ColCountry),
		Difficulty:     bag.SelectValue(ColDifficulty),
		PrepTime:       int(bag.NumberValue(ColPrepTime)),
		CookTime:       int(bag.NumberValue(ColCookTime)),
		ServingSize:    bag.TextValue(ColServingSize),
		Calories:       bag.NumberValue(ColCalories),
		Protein:        bag.NumberValue(ColProtein),
		Carbs:          bag.NumberValue(ColCarbs),
		Fat:            bag.NumberValue(ColFat),
		Fiber:          bag.NumberValue(ColFiber),
		Allergies:      bag.MultiSelectValue(ColAllergies),
		Diet:           bag.MultiSelectValue(ColDiet),
		MealType:       bag.MultiSelectValue(ColMealType),
		ProteinType:    bag.MultiSelectValue(ColProteinType),
		Ingredients:    ingredients,
		OtherNutrition: otherNutrition,
		Preparation:    preparation,
		Instructions:   instructions,
	}
}

var stepNumberPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// parseBodySteps recovers the preparation and instruction step sequences
// from the flattened page body. The body was written by BuildBodyBlocks, so
// section headings arrive as bare "Preparation"/"Instructions" lines once
// block formatting is stripped; leading step numbers are removed.
func parseBodySteps(body string) (preparation, instructions []string) {
	preparation = []string{}
	instructions = []string{}
	if body == "" {
		return preparation, instructions
	}

	section := ""
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			continue
		}
		switch line {
		case headingPreparation:
			section = headingPreparation
			continue
		case headingInstructions:
			section = headingInstructions
			continue
		}

		step := stepNumberPrefix.ReplaceAllString(line, "")
		switch section {
		case headingPreparation:
			preparation = append(preparation, step)
		case headingInstructions:
			instructions = append(instructions, step)
		}
	}
	return preparation, instructions
}

// BuildBodyBlocks renders the page body: numbered step lists under
// Preparation and Instructions headings.
func BuildBodyBlocks(recipe *models.Recipe) []notion.Block {
	var b strings.Builder
	b.WriteString("# " + headingPreparation + "\n")
	for i, step := range recipe.Preparation {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteString("# " + headingInstructions + "\n")
	for i, step := range recipe.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return notion.MarkdownToBlocks(b.String())
}

// BuildImagePrompt derives the cover image prompt from a recipe.
func BuildImagePrompt(recipe *models.Recipe) string {
	return fmt.Sprintf(
		"Professional food photography of %s, plated and ready to serve, natural lighting, appetizing presentation. %s",
		recipe.Title, recipe.Description,
	)
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify lowercases and collapses a title into a hyphenated file name
// fragment.
func Slugify(s string) string {
	slug := strings.ToLower(nonAlphanumeric.ReplaceAllString(s, "-"))
	return strings.Trim(slug, "-")
}
