package models

// Tip is a generated Spanish-learning tip.
type Tip struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory"`
	Level          string `json:"level"` // CEFR level label
	Explanation    string `json:"explanation"`    // markdown
	Uses           string `json:"uses"`           // markdown examples
	PracticePrompt string `json:"practicePrompt"` // markdown homework prompt
}

// TipCategories lists the closed category enum, emoji labels included.
func TipCategories() []string {
	return []string{
		"🔷 Core Grammar & Verb Use",
		"🟨 Vocabulary & Word Use",
		"🟩 Conversation & Usage",
		"🟫 Pronunciation & Listening",
		"🟪 Cultural / Regional Variation",
	}
}

// TipLevels lists the closed CEFR level enum.
func TipLevels() []string {
	return []string{
		"🟢 A1: Beginner",
		"🟡 A2:Elementary",
		"🔵 B1: Intermediate",
		"🟣 B2: Upper Intermediate",
		"🔴 C1: Advanced",
		"⚫ C2: Proficient",
	}
}

// TipSubcategories lists the closed subcategory enum.
func TipSubcategories() []string {
	return []string{
		"Verb Conjugation",
		"Verb Usage / Meaning Differences",
		"Tense & Mood",
		"Grammar Structures",
		"Vocabulary",
		"Common Mistakes / False Friends",
		"Synonyms & Word Nuances",
		"Phrase Patterns / Sentence Starters",
		"Questions & Interrogatives",
		"Idiomatic Expressions",
		"Pronunciation",
		"Listening Comprehension",
		"Regional Usage",
		"Formality & Register",
	}
}
