package models

// Question is one cached quiz question. The cache is cleared and repopulated
// wholesale by the refresh scheduler; readers may see a category mid-refill.
type Question struct {
	ID               string   `json:"id"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Text             string   `json:"text"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// CategoryDescriptor names a category and how many questions the refresh
// cycle should hold for it.
type CategoryDescriptor struct {
	Category    string `json:"category" koanf:"category"`
	TargetCount int    `json:"target_count" koanf:"target_count"`
}
