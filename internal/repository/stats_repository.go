package repository

import (
	"strconv"
	"sync"

	"github.com/stemsi/retro-quiz/internal/model"
)

// StatsRepository holds per-question attempt counters for the process lifetime.
// A single mutex guards the whole table: the table is small and fixed, and
// an increment plus its read-back must be one unit.
type StatsRepository struct {
	mu      sync.Mutex
	entries map[int]*model.QuestionStats
	version uint64
}

// NewStatsRepository creates a zeroed entry for every id.
func NewStatsRepository(questionIDs []int) *StatsRepository {
	entries := make(map[int]*model.QuestionStats, len(questionIDs))
	for _, id := range questionIDs {
		entries[id] = &model.QuestionStats{}
	}
	return &StatsRepository{entries: entries}
}

// Record counts one attempt on a question, and one correct answer when
// correct is true. It returns the entry as it stands after the increment.
func (r *StatsRepository) Record(questionID int, correct bool) (model.QuestionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[questionID]
	if !ok {
		return model.QuestionStats{}, ErrNotFound
	}
	e.TotalAttempts++
	if correct {
		e.CorrectAnswers++
	}
	r.version++
	return *e, nil
}

// Get returns the current entry for a question.
func (r *StatsRepository) Get(questionID int) (model.QuestionStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[questionID]
	if !ok {
		return model.QuestionStats{}, ErrNotFound
	}
	return *e, nil
}

// Snapshot copies the whole table keyed by question id string.
func (r *StatsRepository) Snapshot() map[string]model.QuestionStats {
	snap, _ := r.SnapshotVersion()
	return snap
}

// SnapshotVersion copies the table together with its version. The version
// changes on every Record, so callers can detect updates cheaply.
func (r *StatsRepository) SnapshotVersion() (map[string]model.QuestionStats, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]model.QuestionStats, len(r.entries))
	for id, e := range r.entries {
		out[strconv.Itoa(id)] = *e
	}
	return out, r.version
}

// Version returns the number of increments applied so far.
func (r *StatsRepository) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}
