package models

// Recipe is the flat, backend-agnostic representation of a generated recipe.
// The Notion page is the only store of truth; a Recipe is either fresh
// generator output or a reconstruction from page properties and body.
type Recipe struct {
	Title       string `json:"title"`
	TLDR        string `json:"tldr"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Difficulty  string `json:"difficulty"` // Easy|Medium|Hard

	PrepTime    int    `json:"prepTime"` // minutes
	CookTime    int    `json:"cookTime"` // minutes
	ServingSize string `json:"servingSize"`

	// Nutrition facts per serving
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`

	Allergies   []string `json:"allergies"`
	Diet        []string `json:"diet"`
	MealType    []string `json:"mealType"`
	ProteinType []string `json:"proteinType"`

	Ingredients    []Ingredient    `json:"ingredients"`
	OtherNutrition []NutritionItem `json:"otherNutrition"`

	// Step sequences live in the page body, not the property bag
	Preparation  []string `json:"preparation"`
	Instructions []string `json:"instructions"`

	// Only populated by the modify path
	ChangeDescription string `json:"changeDescription,omitempty"`
}

// Ingredient is one entry of the ingredients list field.
type Ingredient struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"` // amount and unit, e.g. "2 cups"
}

// NutritionItem is one entry of the other-nutrition list field.
type NutritionItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"` // amount and unit, e.g. "2mg"
}

// Difficulty levels
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Meal types
const (
	MealTypeBreakfast = "Breakfast"
	MealTypeLunch     = "Lunch"
	MealTypeDinner    = "Dinner"
	MealTypeSnack     = "Snack"
	MealTypeDessert   = "Dessert"
)

// Protein types
const (
	ProteinTypeNone    = "None"
	ProteinTypeChicken = "Chicken"
	ProteinTypeBeef    = "Beef"
	ProteinTypePork    = "Pork"
	ProteinTypeTofu    = "Tofu"
	ProteinTypeFish    = "Fish"
	ProteinTypeSeafood = "Seafood"
	ProteinTypeOther   = "Other"
)

// Difficulties lists the closed difficulty enum.
func Difficulties() []string {
	return []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// MealTypes lists the closed meal type enum.
func MealTypes() []string {
	return []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeDessert}
}

// ProteinTypes lists the closed protein type enum.
func ProteinTypes() []string {
	return []string{
		ProteinTypeNone, ProteinTypeChicken, ProteinTypeBeef, ProteinTypePork,
		ProteinTypeTofu, ProteinTypeFish, ProteinTypeSeafood, ProteinTypeOther,
	}
}

// ValidateDifficulty checks if the difficulty level is valid.
func ValidateDifficulty(difficulty string) bool {
	for _, valid := range Difficulties() {
		if difficulty == valid {
			return true
		}
	}
	return false
}

// ValidateMealType checks if the meal type is valid.
func ValidateMealType(mealType string) bool {
	for _, valid := range MealTypes() {
		if mealType == valid {
			return true
		}
	}
	return false
}

// ValidateProteinType checks if the protein type is valid.
func ValidateProteinType(proteinType string) bool {
	for _, valid := range ProteinTypes() {
		if proteinType == valid {
			return true
		}
	}
	return false
}
