package model

// Question represents a single multiple-choice quiz question.
type Question struct {
	ID       int      `json:"id" yaml:"id" validate:"gt=0"`
	Question string   `json:"question" yaml:"question" validate:"required,max=2000"`
	Options  []string `json:"options" yaml:"options" validate:"len=4,dive,required"`
	Correct  int      `json:"correct" yaml:"correct" validate:"min=0,max=3"`
	Year     int      `json:"year" yaml:"year"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// QuestionList is the response for the catalog dump.
type QuestionList struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}

// QuestionStats holds running totals for one question.
// CorrectAnswers never exceeds TotalAttempts.
type QuestionStats struct {
	TotalAttempts  int `json:"total_attempts"`
	CorrectAnswers int `json:"correct_answers"`
}

// SuccessRate returns the share of correct attempts as a percentage rounded
// to one decimal place, or 0 when the question has never been attempted.
func (s QuestionStats) SuccessRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return RoundOneDecimal(float64(s.CorrectAnswers) / float64(s.TotalAttempts) * 100)
}
