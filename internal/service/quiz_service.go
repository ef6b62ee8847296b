package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/retro-quiz/internal/model"
	"github.com/stemsi/retro-quiz/internal/repository"
)

// ErrNotFound is returned when a question or session does not exist.
var ErrNotFound = errors.New("resource not found")

// QuizService scores submissions and keeps the per-question statistics.
type QuizService struct {
	questionRepo *repository.QuestionRepository
	statsRepo    *repository.StatsRepository
	sessionRepo  *repository.SessionRepository
	publisher    ResultPublisher
	log          zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewQuizService creates a new QuizService. A nil publisher disables publishing.
func NewQuizService(
	questionRepo *repository.QuestionRepository,
	statsRepo *repository.StatsRepository,
	sessionRepo *repository.SessionRepository,
	publisher ResultPublisher,
	log zerolog.Logger,
) *QuizService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &QuizService{
		questionRepo: questionRepo,
		statsRepo:    statsRepo,
		sessionRepo:  sessionRepo,
		publisher:    publisher,
		log:          log.With().Str("component", "quiz_service").Logger(),
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// ListQuestions returns the catalog in presentation order.
func (s *QuizService) ListQuestions() []model.Question {
	return s.questionRepo.List()
}

// GetQuestion returns a single catalog question.
func (s *QuizService) GetQuestion(id int) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// Submit scores answers against every catalog question, updates the shared
// statistics and stores the session. Answers are keyed by question id
// string; nil values and missing keys count as skipped, and keys that do
// not match a catalog question are ignored. An empty sessionID gets a
// fresh UUID.
func (s *QuizService) Submit(ctx context.Context, answers map[string]*int, sessionID string) (*model.SessionResult, error) {
	if sessionID == "" {
		sessionID = s.newID()
	}

	questions := s.questionRepo.List()
	results := make([]model.QuestionResult, 0, len(questions))
	score := 0

	for _, q := range questions {
		userAnswer := answers[strconv.Itoa(q.ID)]
		isCorrect := userAnswer != nil && *userAnswer == q.Correct

		var (
			stats model.QuestionStats
			err   error
		)
		if userAnswer != nil {
			stats, err = s.statsRepo.Record(q.ID, isCorrect)
			if isCorrect {
				score++
			}
		} else {
			stats, err = s.statsRepo.Get(q.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("stats for question %d: %w", q.ID, err)
		}

		results = append(results, model.QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			UserAnswer:    copyAnswer(userAnswer),
			CorrectAnswer: q.Correct,
			CorrectOption: q.CorrectOption(),
			IsCorrect:     isCorrect,
			SuccessRate:   stats.SuccessRate(),
		})
	}

	total := len(questions)
	percentage := 0.0
	if total > 0 {
		percentage = model.RoundOneDecimal(float64(score) / float64(total) * 100)
	}

	session := &model.SessionResult{
		SessionID:   sessionID,
		Answers:     copyAnswers(answers),
		Results:     results,
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		CompletedAt: s.now(),
	}
	s.sessionRepo.Save(session)

	s.log.Info().
		Str("session_id", sessionID).
		Int("score", score).
		Int("total", total).
		Int("sessions_stored", s.sessionRepo.Count()).
		Msg("Session completed")

	if err := s.publisher.PublishResult(ctx, session); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to publish session result")
	}

	return session, nil
}

// Stats returns a snapshot of the statistics table keyed by question id string.
func (s *QuizService) Stats() map[string]model.QuestionStats {
	return s.statsRepo.Snapshot()
}

// StatsVersion returns a snapshot with its version, for change detection.
func (s *QuizService) StatsVersion() (map[string]model.QuestionStats, uint64) {
	return s.statsRepo.SnapshotVersion()
}

// StatsRevision returns the statistics version without copying the table.
func (s *QuizService) StatsRevision() uint64 {
	return s.statsRepo.Version()
}

// GetSession returns a previously stored session.
func (s *QuizService) GetSession(sessionID string) (*model.SessionResult, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func copyAnswer(a *int) *int {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func copyAnswers(answers map[string]*int) map[string]*int {
	out := make(map[string]*int, len(answers))
	for k, v := range answers {
		out[k] = copyAnswer(v)
	}
	return out
}
