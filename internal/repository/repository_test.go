package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stemsi/retro-quiz/internal/model"
)

func testQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Question: "First", Options: []string{"a", "b", "c", "d"}, Correct: 1, Year: 1995},
		{ID: 2, Question: "Second", Options: []string{"e", "f", "g", "h"}, Correct: 3, Year: 1996},
	}
}

func TestQuestionRepositoryListIsStable(t *testing.T) {
	repo, err := NewQuestionRepository(testQuestions())
	if err != nil {
		t.Fatalf("NewQuestionRepository: %v", err)
	}

	first := repo.List()
	first[0].Options[0] = "mutated"
	first[0].Question = "mutated"

	second := repo.List()
	if second[0].Question != "First" || second[0].Options[0] != "a" {
		t.Fatalf("catalog was mutated through List: %+v", second[0])
	}
	if len(second) != 2 || second[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", second)
	}
	if repo.Count() != 2 {
		t.Fatalf("Count = %d", repo.Count())
	}
	if ids := repo.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("IDs = %v", ids)
	}
}

func TestQuestionRepositoryGetByID(t *testing.T) {
	repo, err := NewQuestionRepository(testQuestions())
	if err != nil {
		t.Fatal(err)
	}

	q, err := repo.GetByID(2)
	if err != nil {
		t.Fatalf("GetByID(2): %v", err)
	}
	if q.CorrectOption() != "h" {
		t.Fatalf("correct option = %q", q.CorrectOption())
	}

	if _, err := repo.GetByID(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID(99) err = %v, want ErrNotFound", err)
	}
}

func TestQuestionRepositoryRejectsInvalidCatalog(t *testing.T) {
	qs := testQuestions()
	qs[1].ID = 1
	if _, err := NewQuestionRepository(qs); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestQuestionRepositoryEmpty(t *testing.T) {
	repo, err := NewQuestionRepository(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := repo.List(); len(got) != 0 {
		t.Fatalf("List = %v", got)
	}
}

func TestStatsRepositoryRecord(t *testing.T) {
	repo := NewStatsRepository([]int{1, 2})

	got, err := repo.Record(1, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != (model.QuestionStats{TotalAttempts: 1, CorrectAnswers: 1}) {
		t.Fatalf("after correct: %+v", got)
	}
	if got.SuccessRate() != 100.0 {
		t.Fatalf("rate = %v, want 100", got.SuccessRate())
	}

	got, _ = repo.Record(1, false)
	if got.SuccessRate() != 50.0 {
		t.Fatalf("rate = %v, want 50", got.SuccessRate())
	}

	if _, err := repo.Record(3, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Record(3) err = %v", err)
	}

	snap, version := repo.SnapshotVersion()
	if version != 2 {
		t.Fatalf("version = %d, want 2", version)
	}
	if snap["1"].TotalAttempts != 2 || snap["1"].CorrectAnswers != 1 {
		t.Fatalf("snapshot[1] = %+v", snap["1"])
	}
	if snap["2"] != (model.QuestionStats{}) {
		t.Fatalf("snapshot[2] = %+v", snap["2"])
	}
}

func TestStatsRepositoryConcurrentRecord(t *testing.T) {
	const n = 200
	repo := NewStatsRepository([]int{1})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := repo.Record(1, i%2 == 0)
			if err != nil {
				t.Error(err)
				return
			}
			if s.CorrectAnswers > s.TotalAttempts {
				t.Errorf("invariant broken: %+v", s)
			}
		}(i)
	}
	wg.Wait()

	got, _ := repo.Get(1)
	if got.TotalAttempts != n || got.CorrectAnswers != n/2 {
		t.Fatalf("got %+v, want {%d %d}", got, n, n/2)
	}
	if repo.Version() != n {
		t.Fatalf("version = %d", repo.Version())
	}
}

func TestSessionRepositoryOverwrites(t *testing.T) {
	repo := NewSessionRepository()

	if _, err := repo.GetByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}

	repo.Save(&model.SessionResult{SessionID: "abc", Score: 1, CompletedAt: time.Now()})
	repo.Save(&model.SessionResult{SessionID: "abc", Score: 2, CompletedAt: time.Now()})

	s, err := repo.GetByID("abc")
	if err != nil {
		t.Fatal(err)
	}
	if s.Score != 2 {
		t.Fatalf("score = %d, want 2", s.Score)
	}
	if repo.Count() != 1 {
		t.Fatalf("count = %d", repo.Count())
	}
}
