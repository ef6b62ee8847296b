// Package catalog loads and validates the fixed question catalog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stemsi/retro-quiz/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultCatalog []byte

var validate = govalidator.New(govalidator.WithRequiredStructEnabled())

// Default returns the embedded catalog.
func Default() ([]model.Question, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded catalog when path is empty.
func Load(path string) ([]model.Question, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	questions, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return questions, nil
}

// Parse decodes a YAML list of questions and validates it.
func Parse(data []byte) ([]model.Question, error) {
	var questions []model.Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Validate checks the construction-time invariants of a catalog: positive
// unique ids, non-empty text, four non-empty options and a correct index
// that points into the options.
func Validate(questions []model.Question) error {
	var problems []string
	seen := make(map[int]struct{}, len(questions))

	for i, q := range questions {
		if err := validate.Struct(q); err != nil {
			var ve govalidator.ValidationErrors
			if errors.As(err, &ve) {
				for _, fe := range ve {
					problems = append(problems, fmt.Sprintf("question #%d (id %d): %s failed %q", i+1, q.ID, fe.Namespace(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("question #%d: %v", i+1, err))
			}
			continue
		}
		if q.Correct >= len(q.Options) {
			problems = append(problems, fmt.Sprintf("question #%d (id %d): correct index %d out of range", i+1, q.ID, q.Correct))
		}
		if _, dup := seen[q.ID]; dup {
			problems = append(problems, fmt.Sprintf("question #%d: duplicate id %d", i+1, q.ID))
		}
		seen[q.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}
