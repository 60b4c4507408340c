package model

// Question is one questionnaire item with five ordinal answer choices.
// The bank is static and loaded once at process start.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
}
