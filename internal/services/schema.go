package services

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"notion-recipe-assistant/internal/models"
)

// RecipeSchema is the structured-output schema for recipe generation. The
// generator must return the same shape on create and modify so the modify
// path can write back a complete record.
func RecipeSchema() jsonschema.Definition {
	stringList := func(description, itemDescription string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:        jsonschema.Array,
			Description: description,
			Items:       &jsonschema.Definition{Type: jsonschema.String, Description: itemDescription},
		}
	}
	number := func(description string) jsonschema.Definition {
		return jsonschema.Definition{Type: jsonschema.Number, Description: description}
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {Type: jsonschema.String, Description: "Title of the recipe"},
			"tldr": {
				Type:        jsonschema.String,
				Description: "A brief summary and explanation of the recipe in 1-2 sentences for a general response to the prompt.",
			},
			"description": {
				Type:        jsonschema.String,
				Description: "Short description of the recipe, such as it's origins, flavor profile, cooking techniques used, common pairings, and any other interesting details.",
			},
			"country": {Type: jsonschema.String, Description: "Country or region where the recipe originates."},
			"difficulty": {
				Type:        jsonschema.String,
				Enum:        models.Difficulties(),
				Description: "Difficulty level of the recipe in terms of time and technical skill.",
			},
			"prepTime":    number("Preparation time in minutes."),
			"cookTime":    number("Cooking time in minutes."),
			"servingSize": {Type: jsonschema.String, Description: "Number of servings that the recipe makes and portion description."},
			"calories":    number("Calories (cal)."),
			"protein":     number("Protein in grams (g)."),
			"carbs":       number("Carbohydrates in grams (g)."),
			"fat":         number("Fat in grams (g)."),
			"fiber":       number("Fiber in grams (g)."),
			"allergies":   stringList("Allergens such as Shellfish, Peanuts, etc. It should be brief, and do not use special characters.", ""),
			"diet":        stringList("Diet types such as Keto, Vegan, Vegetarian, etc. It should be brief, and do not use special characters.", ""),
			"mealType": {
				Type:        jsonschema.Array,
				Description: "The type of meal this recipe is suitable for.",
				Items:       &jsonschema.Definition{Type: jsonschema.String, Enum: models.MealTypes()},
			},
			"proteinType": {
				Type:        jsonschema.Array,
				Description: "Types of protein used in the recipe.",
				Items:       &jsonschema.Definition{Type: jsonschema.String, Enum: models.ProteinTypes()},
			},
			"ingredients": {
				Type:        jsonschema.Array,
				Description: "List of ingredients with quantities.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"ingredient": {Type: jsonschema.String, Description: "Ingredient name."},
						"quantity":   {Type: jsonschema.String, Description: "Amount and unit, e.g., '2 cups'."},
					},
					Required: []string{"ingredient", "quantity"},
				},
			},
			"otherNutrition": {
				Type:        jsonschema.Array,
				Description: "Other nutritional details such as cholesterol, sodium, iron, zinc, potassium, vitamins, and minerals.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"item":     {Type: jsonschema.String, Description: "Nutrition item."},
						"quantity": {Type: jsonschema.String, Description: "Amount and unit, e.g., '2mg'."},
					},
					Required: []string{"item", "quantity"},
				},
			},
			"preparation": stringList(
				"Step-by-step preparation instructions as an array of steps.",
				"A single preparation step. Do not include step numbers, just the instruction.",
			),
			"instructions": stringList(
				"Step-by-step cooking instructions as an array of steps.",
				"A single instruction step. Do not include step numbers, just the instruction.",
			),
			"changeDescription": {
				Type:        jsonschema.String,
				Description: "Summary of changes made to the recipe in the most recent update.",
			},
		},
		Required: []string{
			"title", "tldr", "description", "country", "difficulty",
			"prepTime", "cookTime", "servingSize",
			"calories", "protein", "carbs", "fat", "fiber",
			"allergies", "diet", "mealType", "proteinType",
			"ingredients", "otherNutrition", "preparation", "instructions",
		},
	}
}

// TipSchema is the structured-output schema for Spanish tip generation.
func TipSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title":       {Type: jsonschema.String, Description: "Title of the tip."},
			"category":    {Type: jsonschema.String, Enum: models.TipCategories()},
			"subcategory": {Type: jsonschema.String, Enum: models.TipSubcategories()},
			"level":       {Type: jsonschema.String, Enum: models.TipLevels()},
			"explanation": {Type: jsonschema.String, Description: "A clear explanation of the tip in a markdown format."},
			"uses":        {Type: jsonschema.String, Description: "Example uses of the concept, in markdown."},
			"practicePrompt": {
				Type:        jsonschema.String,
				Description: "Give a homework prompt for the user so that they can practice the tip. You can use markdown formatting for emphasis.",
			},
		},
		Required: []string{"title", "category", "subcategory", "level", "explanation", "uses", "practicePrompt"},
	}
}
