package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soulcare/internal/model"
	"soulcare/internal/scoring"
)

type fakeGateway struct {
	calls int
	err   error
}

func (g *fakeGateway) CreateAssessment(ctx context.Context, userID string, score int, level model.StressLevel) (*model.AssessmentRecord, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &model.AssessmentRecord{UserID: userID, Score: score, StressLevel: level}, nil
}

func openQuota() model.QuotaStatus {
	return model.QuotaStatus{CountToday: 0, CanTakeMore: true}
}

func spentQuota() model.QuotaStatus {
	return model.QuotaStatus{CountToday: 3, CanTakeMore: false}
}

func TestNewSessionStartsAtFirstQuestion(t *testing.T) {
	s := NewAssessmentSession("u1", openQuota())
	assert.Equal(t, AssessmentInProgress, s.State)
	assert.Equal(t, 1, s.QuestionIndex)
	for i, v := range s.Answers {
		assert.Zerof(t, v, "slot %d not zeroed", i)
	}
}

func TestNewSessionBlockedWhenQuotaSpent(t *testing.T) {
	s := NewAssessmentSession("u1", spentQuota())
	assert.Equal(t, AssessmentBlocked, s.State)
}

func TestBlockedSessionRejectsTransitions(t *testing.T) {
	gw := &fakeGateway{}
	s := NewAssessmentSession("u1", spentQuota())

	assert.ErrorIs(t, s.Answer(1, 3), ErrQuotaExceeded)
	_, err := s.Next(context.Background(), gw)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.ErrorIs(t, s.Previous(), ErrQuotaExceeded)
	assert.Equal(t, 0, gw.calls)
}

func TestNextRejectsUnansweredQuestion(t *testing.T) {
	gw := &fakeGateway{}
	s := NewAssessmentSession("u1", openQuota())

	warn, err := s.Next(context.Background(), gw)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Nil(t, warn)
	assert.Equal(t, 1, s.QuestionIndex, "index must not move on rejection")
	assert.Equal(t, 0, gw.calls)
}

func TestAnswerDoesNotAdvance(t *testing.T) {
	s := NewAssessmentSession("u1", openQuota())
	require.NoError(t, s.Answer(1, 3))
	assert.Equal(t, 1, s.QuestionIndex)
	assert.Equal(t, 3, s.Answers[0])
}

func TestAnswerValidatesRange(t *testing.T) {
	s := NewAssessmentSession("u1", openQuota())
	assert.True(t, IsValidation(s.Answer(0, 3)))
	assert.True(t, IsValidation(s.Answer(11, 3)))
	assert.True(t, IsValidation(s.Answer(1, 0)))
	assert.True(t, IsValidation(s.Answer(1, 6)))
}

func TestCompletionScoresOnceAndPersistsOnce(t *testing.T) {
	gw := &fakeGateway{}
	s := NewAssessmentSession("u1", openQuota())

	for i := 1; i <= scoring.AnswerCount; i++ {
		require.NoError(t, s.Answer(i, 4))
		warn, err := s.Next(context.Background(), gw)
		require.NoError(t, err)
		require.Nil(t, warn)
	}

	assert.Equal(t, AssessmentCompleted, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, 40, s.Result.Total)
	assert.Equal(t, model.StressHigh, s.Result.Level)
	assert.Equal(t, 1, gw.calls)

	// Further Next calls are rejected and never persist again.
	warn, err := s.Next(context.Background(), gw)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, warn)
	assert.Equal(t, 1, gw.calls)
}

func TestCompletionKeepsResultOnPersistenceFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("mongo down")}
	s := NewAssessmentSession("u1", openQuota())

	for i := 1; i <= scoring.AnswerCount; i++ {
		require.NoError(t, s.Answer(i, 2))
	}
	for i := 1; i < scoring.AnswerCount; i++ {
		_, err := s.Next(context.Background(), gw)
		require.NoError(t, err)
	}

	warn, err := s.Next(context.Background(), gw)
	require.NoError(t, err, "persistence failure is a warning, not an error")
	require.NotNil(t, warn)
	assert.True(t, IsGateway(warn))
	assert.Equal(t, AssessmentCompleted, s.State)
	require.NotNil(t, s.Result)
	assert.Equal(t, 20, s.Result.Total)
}

func TestPreviousStepsBack(t *testing.T) {
	gw := &fakeGateway{}
	s := NewAssessmentSession("u1", openQuota())

	require.NoError(t, s.Answer(1, 3))
	_, err := s.Next(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, 2, s.QuestionIndex)

	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.QuestionIndex)

	assert.True(t, IsValidation(s.Previous()), "cannot go before the first question")
}

func TestResetIsIdempotent(t *testing.T) {
	s := NewAssessmentSession("u1", openQuota())
	require.NoError(t, s.Answer(1, 5))

	s.Reset(openQuota())
	first := *s
	s.Reset(openQuota())

	assert.Equal(t, first, *s)
	assert.Equal(t, AssessmentInProgress, s.State)
	assert.Equal(t, 1, s.QuestionIndex)
	for _, v := range s.Answers {
		assert.Zero(t, v)
	}
}

func TestResetBlocksWhenQuotaSpent(t *testing.T) {
	s := NewAssessmentSession("u1", openQuota())
	s.Reset(spentQuota())
	assert.Equal(t, AssessmentBlocked, s.State)
}
