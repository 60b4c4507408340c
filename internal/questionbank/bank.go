package questionbank

import "soulcare/internal/model"

// Count is the fixed number of questions in an assessment.
const Count = 10

var likertChoices = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

var questions = []model.Question{
	{ID: 1, Prompt: "How often have you felt overwhelmed by your academic workload?"},
	{ID: 2, Prompt: "How often have you had trouble falling or staying asleep because of worries?"},
	{ID: 3, Prompt: "How often have you felt unable to control the important things in your life?"},
	{ID: 4, Prompt: "How often have you felt nervous or stressed before exams or deadlines?"},
	{ID: 5, Prompt: "How often have you felt that difficulties were piling up so high you could not overcome them?"},
	{ID: 6, Prompt: "How often have you lost interest in activities you usually enjoy?"},
	{ID: 7, Prompt: "How often have you felt irritable or short-tempered with people around you?"},
	{ID: 8, Prompt: "How often have you found it hard to concentrate on your studies?"},
	{ID: 9, Prompt: "How often have you felt lonely or isolated from friends and family?"},
	{ID: 10, Prompt: "How often have you experienced headaches, tension, or fatigue without a clear physical cause?"},
}

func init() {
	for i := range questions {
		questions[i].Choices = likertChoices
	}
}

// All returns the ordered question list. Callers must not mutate it.
func All() []model.Question {
	return questions
}

// Get returns the question with the given 1-based id, or nil if out of range.
func Get(id int) *model.Question {
	if id < 1 || id > len(questions) {
		return nil
	}
	return &questions[id-1]
}
