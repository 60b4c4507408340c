package scoring

import (
	"testing"

	"soulcare/internal/model"
)

func TestScoreSumsAnswers(t *testing.T) {
	answers := []int{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}
	got := Score(answers)
	if got.Total != 30 {
		t.Fatalf("Score(...).Total = %d, want 30", got.Total)
	}
}

func TestScoreBands(t *testing.T) {
	cases := []struct {
		total int
		want  model.StressLevel
	}{
		{10, model.StressLow},
		{19, model.StressLow},    // 38%
		{20, model.StressMedium}, // 40%, lower bound belongs to medium
		{34, model.StressMedium}, // 68%
		{35, model.StressHigh},   // 70%, lower bound belongs to high
		{50, model.StressHigh},
	}
	for _, c := range cases {
		answers := splitTotal(c.total)
		got := Score(answers)
		if got.Total != c.total {
			t.Fatalf("splitTotal(%d) summed to %d", c.total, got.Total)
		}
		if got.Level != c.want {
			t.Fatalf("Score(total=%d).Level = %q, want %q", c.total, got.Level, c.want)
		}
	}
}

func TestScoreFullRange(t *testing.T) {
	for v := 1; v <= 5; v++ {
		answers := make([]int, AnswerCount)
		for i := range answers {
			answers[i] = v
		}
		got := Score(answers)
		if got.Total != v*AnswerCount {
			t.Fatalf("uniform %d: Total = %d, want %d", v, got.Total, v*AnswerCount)
		}
		if got.Total < 10 || got.Total > 50 {
			t.Fatalf("total %d out of [10,50]", got.Total)
		}
	}
}

func TestScorePartialSet(t *testing.T) {
	// Unanswered slots contribute nothing; the engine does not reject them.
	answers := []int{5, 5, 0, 0, 0, 0, 0, 0, 0, 0}
	got := Score(answers)
	if got.Total != 10 {
		t.Fatalf("partial Total = %d, want 10", got.Total)
	}
	if got.Level != model.StressLow {
		t.Fatalf("partial Level = %q, want low", got.Level)
	}
}

// splitTotal builds a ten-slot answer set summing to total, keeping each
// slot within [1,5].
func splitTotal(total int) []int {
	answers := make([]int, AnswerCount)
	remaining := total
	for i := range answers {
		v := remaining - (AnswerCount - i - 1) // leave room for 1s behind us
		if v > 5 {
			v = 5
		}
		if v < 1 {
			v = 1
		}
		answers[i] = v
		remaining -= v
	}
	return answers
}
