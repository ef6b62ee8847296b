package model

import (
	"math"
	"time"
)

// SubmitRequest is the payload for submitting a batch of answers.
// Answers maps a question ID string to the selected option index; a null
// value or a missing key means the question was skipped.
type SubmitRequest struct {
	Answers   map[string]*int `json:"answers"`
	SessionID string          `json:"session_id" binding:"omitempty,max=128"`
}

// QuestionResult is the scored outcome for one catalog question.
type QuestionResult struct {
	QuestionID    int     `json:"question_id"`
	Question      string  `json:"question"`
	UserAnswer    *int    `json:"user_answer"`
	CorrectAnswer int     `json:"correct_answer"`
	CorrectOption string  `json:"correct_option"`
	IsCorrect     bool    `json:"is_correct"`
	SuccessRate   float64 `json:"success_rate"`
}

// SessionResult is the stored record of one scored submission.
type SessionResult struct {
	SessionID   string           `json:"session_id"`
	Answers     map[string]*int  `json:"answers"`
	Results     []QuestionResult `json:"results"`
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Percentage  float64          `json:"percentage"`
	CompletedAt time.Time        `json:"completed_at"`
}

// SubmitResponse is the subset of a SessionResult returned to the submitter.
type SubmitResponse struct {
	SessionID  string           `json:"session_id"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// ToSubmitResponse projects the session onto the submit response shape.
func (s *SessionResult) ToSubmitResponse() SubmitResponse {
	return SubmitResponse{
		SessionID:  s.SessionID,
		Score:      s.Score,
		Total:      s.Total,
		Percentage: s.Percentage,
		Results:    s.Results,
	}
}

// RoundOneDecimal rounds v half away from zero to one decimal place.
func RoundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
