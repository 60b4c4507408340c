package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"soulcare/internal/cache"
	"soulcare/internal/model"
	"soulcare/internal/questionbank"
	"soulcare/internal/repository"
	"soulcare/internal/scoring"
	"soulcare/internal/session"
)

var ErrNoSession = errors.New("no active assessment session")

// AssessmentService runs assessment sessions: it loads the state machine
// from the session cache, applies one transition at a time per user, and
// persists completed records. It implements session.AssessmentGateway.
type AssessmentService struct {
	repo     repository.AssessmentRepo
	sessions cache.AssessmentSessionCache
	log      *zap.SugaredLogger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	repo repository.AssessmentRepo,
	sessions cache.AssessmentSessionCache,
	log *zap.SugaredLogger,
) *AssessmentService {
	return &AssessmentService{
		repo:     repo,
		sessions: sessions,
		log:      log,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// AssessmentView is the client-facing shape of a session.
type AssessmentView struct {
	State         session.AssessmentState `json:"state"`
	QuestionIndex int                     `json:"questionIndex,omitempty"`
	Question      *model.Question         `json:"question,omitempty"`
	Answers       []int                   `json:"answers,omitempty"`
	Result        *scoring.Result         `json:"result,omitempty"`
	Quota         *model.QuotaStatus      `json:"quota,omitempty"`
	Warning       string                  `json:"warning,omitempty"`
}

// lock serializes transitions per user. Spec of the session machines is
// one outstanding transition at a time; Redis round-trips are not atomic
// so the guard lives here.
func (s *AssessmentService) lock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// CreateAssessment persists one completed record (session.AssessmentGateway).
func (s *AssessmentService) CreateAssessment(ctx context.Context, userID string, score int, level model.StressLevel) (*model.AssessmentRecord, error) {
	rec := &model.AssessmentRecord{
		UserID:      userID,
		Score:       score,
		StressLevel: level,
		CreatedAt:   s.now(),
	}
	if _, err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.log.Infow("assessment recorded", "userId", userID, "score", score, "level", level)
	return rec, nil
}

// Quota computes today's usage from the user's history.
func (s *AssessmentService) Quota(ctx context.Context, userID string) (model.QuotaStatus, error) {
	history, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return model.QuotaStatus{}, fmt.Errorf("failed to list assessments: %w", err)
	}
	return scoring.ComputeQuota(history, s.now()), nil
}

// History returns the user's assessment records, newest first.
func (s *AssessmentService) History(ctx context.Context, userID string) ([]model.AssessmentRecord, error) {
	return s.repo.ListByUser(ctx, userID)
}

// StartSession begins a session for the user, resuming one already in
// flight. A user whose quota is spent gets a Blocked session back rather
// than an error.
func (s *AssessmentService) StartSession(ctx context.Context, userID string) (*AssessmentView, error) {
	l := s.lock(userID)
	l.Lock()
	defer l.Unlock()

	existing, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if existing != nil && existing.State == session.AssessmentInProgress {
		return s.view(ctx, existing, nil), nil
	}

	quota, err := s.Quota(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := session.NewAssessmentSession(userID, quota)
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.view(ctx, sess, &quota), nil
}

// GetSession returns the live session, or ErrNoSession.
func (s *AssessmentService) GetSession(ctx context.Context, userID string) (*AssessmentView, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}
	return s.view(ctx, sess, nil), nil
}

// Answer records a choice for a question slot without advancing.
func (s *AssessmentService) Answer(ctx context.Context, userID string, index, value int) (*AssessmentView, error) {
	return s.transition(ctx, userID, func(sess *session.AssessmentSession) (error, error) {
		return nil, sess.Answer(index, value)
	})
}

// Next advances the session; on question ten it completes, scores, and
// persists. A persistence failure is surfaced as the view's Warning while
// the computed result stands.
func (s *AssessmentService) Next(ctx context.Context, userID string) (*AssessmentView, error) {
	return s.transition(ctx, userID, func(sess *session.AssessmentSession) (error, error) {
		return sess.Next(ctx, s)
	})
}

// Previous steps back one question.
func (s *AssessmentService) Previous(ctx context.Context, userID string) (*AssessmentView, error) {
	return s.transition(ctx, userID, func(sess *session.AssessmentSession) (error, error) {
		return nil, sess.Previous()
	})
}

// Reset returns the session to a fresh start, re-checking quota.
func (s *AssessmentService) Reset(ctx context.Context, userID string) (*AssessmentView, error) {
	l := s.lock(userID)
	l.Lock()
	defer l.Unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	quota, err := s.Quota(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = session.NewAssessmentSession(userID, quota)
	} else {
		sess.Reset(quota)
	}

	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.view(ctx, sess, &quota), nil
}

func (s *AssessmentService) transition(ctx context.Context, userID string, fn func(*session.AssessmentSession) (warn error, err error)) (*AssessmentView, error) {
	l := s.lock(userID)
	l.Lock()
	defer l.Unlock()

	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoSession
	}

	warn, err := fn(sess)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	v := s.view(ctx, sess, nil)
	if warn != nil {
		s.log.Warnw("assessment persisted state only locally", "userId", userID, "error", warn)
		v.Warning = "your result was computed but could not be saved; it will be missing from history until retried"
	}
	return v, nil
}

func (s *AssessmentService) view(ctx context.Context, sess *session.AssessmentSession, quota *model.QuotaStatus) *AssessmentView {
	v := &AssessmentView{
		State:   sess.State,
		Answers: sess.Answers[:],
		Result:  sess.Result,
		Quota:   quota,
	}
	if sess.State == session.AssessmentInProgress {
		v.QuestionIndex = sess.QuestionIndex
		v.Question = questionbank.Get(sess.QuestionIndex)
	}
	if sess.State == session.AssessmentBlocked && v.Quota == nil {
		if q, err := s.Quota(ctx, sess.UserID); err == nil {
			v.Quota = &q
		}
	}
	return v
}
