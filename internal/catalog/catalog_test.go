package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stemsi/retro-quiz/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	questions, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(questions) != 10 {
		t.Fatalf("got %d questions, want 10", len(questions))
	}
	for i, q := range questions {
		if q.ID != i+1 {
			t.Fatalf("question %d has id %d, want %d", i, q.ID, i+1)
		}
	}
	if questions[0].CorrectOption() != "PlayStation" {
		t.Fatalf("question 1 correct option = %q", questions[0].CorrectOption())
	}
	if questions[9].Correct != 0 || questions[9].Year != 1992 {
		t.Fatalf("question 10 = %+v", questions[9])
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
- id: 7
  question: Pick B
  options: [A, B, C, D]
  correct: 1
  year: 2001
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	questions, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != 7 || questions[0].CorrectOption() != "B" {
		t.Fatalf("unexpected catalog: %+v", questions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseEmptyCatalog(t *testing.T) {
	questions, err := Parse([]byte("[]"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if questions == nil || len(questions) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", questions)
	}
}

func TestValidateRejectsBadQuestions(t *testing.T) {
	valid := model.Question{ID: 1, Question: "Q", Options: []string{"a", "b", "c", "d"}, Correct: 0}

	tests := []struct {
		name  string
		input []model.Question
		want  string
	}{
		{
			name:  "zero id",
			input: []model.Question{{ID: 0, Question: "Q", Options: []string{"a", "b", "c", "d"}}},
			want:  "ID",
		},
		{
			name:  "three options",
			input: []model.Question{{ID: 1, Question: "Q", Options: []string{"a", "b", "c"}}},
			want:  "Options",
		},
		{
			name:  "correct out of range",
			input: []model.Question{{ID: 1, Question: "Q", Options: []string{"a", "b", "c", "d"}, Correct: 4}},
			want:  "Correct",
		},
		{
			name:  "empty option",
			input: []model.Question{{ID: 1, Question: "Q", Options: []string{"a", "", "c", "d"}}},
			want:  "Options[1]",
		},
		{
			name:  "duplicate id",
			input: []model.Question{valid, valid},
			want:  "duplicate id 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
