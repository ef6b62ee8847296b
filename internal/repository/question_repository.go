package repository

import (
	"errors"

	"github.com/stemsi/retro-quiz/internal/catalog"
	"github.com/stemsi/retro-quiz/internal/model"
)

// ErrNotFound is returned when a lookup misses.
var ErrNotFound = errors.New("not found")

// QuestionRepository serves the immutable question catalog.
type QuestionRepository struct {
	questions []model.Question
	byID      map[int]int
}

// NewQuestionRepository validates the catalog and indexes it by id.
func NewQuestionRepository(questions []model.Question) (*QuestionRepository, error) {
	if err := catalog.Validate(questions); err != nil {
		return nil, err
	}

	r := &QuestionRepository{
		questions: make([]model.Question, len(questions)),
		byID:      make(map[int]int, len(questions)),
	}
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		r.questions[i] = q
		r.byID[q.ID] = i
	}
	return r, nil
}

// List returns all questions in catalog order.
func (r *QuestionRepository) List() []model.Question {
	out := make([]model.Question, len(r.questions))
	for i, q := range r.questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// GetByID returns the question with the given id.
func (r *QuestionRepository) GetByID(id int) (model.Question, error) {
	i, ok := r.byID[id]
	if !ok {
		return model.Question{}, ErrNotFound
	}
	q := r.questions[i]
	q.Options = append([]string(nil), q.Options...)
	return q, nil
}

// IDs returns the question ids in catalog order.
func (r *QuestionRepository) IDs() []int {
	ids := make([]int, len(r.questions))
	for i, q := range r.questions {
		ids[i] = q.ID
	}
	return ids
}

// Count returns the number of questions in the catalog.
func (r *QuestionRepository) Count() int {
	return len(r.questions)
}
