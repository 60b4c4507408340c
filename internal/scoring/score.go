package scoring

import "soulcare/internal/model"

// AnswerCount is the number of slots in an answer set.
const AnswerCount = 10

// MaxTotal is the highest possible total (ten answers at ordinal five).
const MaxTotal = AnswerCount * 5

// Result is the outcome of scoring one answer set.
type Result struct {
	Total int               `json:"total"`
	Level model.StressLevel `json:"level"`
}

// Score sums an answer set and classifies it into one of three bands.
// Band boundaries are percentages of MaxTotal: below 40 is low, 40 up to
// but excluding 70 is medium, 70 and above is high. The lower bound of
// each band belongs to the higher band.
//
// Score does not validate shape; callers are responsible for passing a
// ten-slot set. Unanswered slots (zero) simply contribute nothing, which
// means a partial set scores low rather than erroring.
func Score(answers []int) Result {
	total := 0
	for _, v := range answers {
		total += v
	}

	pct := float64(total) / float64(MaxTotal) * 100

	level := model.StressLow
	switch {
	case pct >= 70:
		level = model.StressHigh
	case pct >= 40:
		level = model.StressMedium
	}

	return Result{Total: total, Level: level}
}
