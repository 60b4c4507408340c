package session

import (
	"context"

	"github.com/google/uuid"

	"soulcare/internal/model"
	"soulcare/internal/scoring"
)

// AssessmentState names the states of an assessment session.
type AssessmentState string

const (
	AssessmentInProgress AssessmentState = "in_progress"
	AssessmentCompleted  AssessmentState = "completed"
	AssessmentBlocked    AssessmentState = "blocked"
)

// AssessmentGateway is the persistence surface an assessment session needs
// at completion time.
type AssessmentGateway interface {
	CreateAssessment(ctx context.Context, userID string, score int, level model.StressLevel) (*model.AssessmentRecord, error)
}

// AssessmentSession walks one user through the questionnaire. The whole
// struct serializes to JSON so it can round-trip through the session cache
// between requests. One transition runs at a time per session; the caller
// is responsible for that serialization.
type AssessmentSession struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"userId"`
	State         AssessmentState          `json:"state"`
	QuestionIndex int                      `json:"questionIndex"`
	Answers       [scoring.AnswerCount]int `json:"answers"`
	Result        *scoring.Result          `json:"result,omitempty"`
}

// NewAssessmentSession starts a session for the user. A session whose quota
// is already spent starts Blocked instead of InProgress.
func NewAssessmentSession(userID string, quota model.QuotaStatus) *AssessmentSession {
	s := &AssessmentSession{
		ID:            "as_" + uuid.New().String()[:8],
		UserID:        userID,
		State:         AssessmentInProgress,
		QuestionIndex: 1,
	}
	if !quota.CanTakeMore {
		s.State = AssessmentBlocked
		s.QuestionIndex = 0
	}
	return s
}

// Answer records the value for a question slot. It does not advance the
// session. Index is 1-based; value must be a choice ordinal in [1,5].
func (s *AssessmentSession) Answer(index, value int) error {
	if s.State == AssessmentBlocked {
		return ErrQuotaExceeded
	}
	if s.State != AssessmentInProgress {
		return ErrInvalidTransition
	}
	if index < 1 || index > scoring.AnswerCount {
		return &ValidationError{Field: "index", Reason: "question index out of range"}
	}
	if value < 1 || value > 5 {
		return &ValidationError{Field: "value", Reason: "answer value must be between 1 and 5"}
	}
	s.Answers[index-1] = value
	return nil
}

// Next advances past the current question. Advancing past question ten
// scores the answer set, moves the session to Completed, and issues exactly
// one create call on the gateway. A gateway failure at that point does not
// roll back Completed: the score stands and the error is returned as a
// non-fatal warning for the caller to surface.
func (s *AssessmentSession) Next(ctx context.Context, gw AssessmentGateway) (warn error, err error) {
	if s.State == AssessmentBlocked {
		return nil, ErrQuotaExceeded
	}
	if s.State != AssessmentInProgress {
		return nil, ErrInvalidTransition
	}
	if s.Answers[s.QuestionIndex-1] == 0 {
		return nil, &ValidationError{Field: "answer", Reason: "current question is unanswered"}
	}

	if s.QuestionIndex < scoring.AnswerCount {
		s.QuestionIndex++
		return nil, nil
	}

	res := scoring.Score(s.Answers[:])
	s.Result = &res
	s.State = AssessmentCompleted

	if _, gwErr := gw.CreateAssessment(ctx, s.UserID, res.Total, res.Level); gwErr != nil {
		return &GatewayError{Op: "createAssessment", Err: gwErr}, nil
	}
	return nil, nil
}

// Previous steps back one question. No validation is required to go back.
func (s *AssessmentSession) Previous() error {
	if s.State == AssessmentBlocked {
		return ErrQuotaExceeded
	}
	if s.State != AssessmentInProgress {
		return ErrInvalidTransition
	}
	if s.QuestionIndex <= 1 {
		return &ValidationError{Field: "index", Reason: "already at the first question"}
	}
	s.QuestionIndex--
	return nil
}

// Reset returns the session to a fresh InProgress(1) with a zeroed answer
// set, re-checking quota first. Resetting twice in a row lands in the same
// state as resetting once.
func (s *AssessmentSession) Reset(quota model.QuotaStatus) {
	s.Result = nil
	for i := range s.Answers {
		s.Answers[i] = 0
	}
	if !quota.CanTakeMore {
		s.State = AssessmentBlocked
		s.QuestionIndex = 0
		return
	}
	s.State = AssessmentInProgress
	s.QuestionIndex = 1
}
