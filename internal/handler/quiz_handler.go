package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/retro-quiz/internal/model"
	"github.com/stemsi/retro-quiz/internal/response"
	"github.com/stemsi/retro-quiz/internal/service"
	"github.com/stemsi/retro-quiz/internal/validator"
)

// QuizHandler handles the public quiz endpoints.
type QuizHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// ListQuestions godoc
// GET /api/questions
// Returns the full catalog in presentation order.
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	questions := h.quizService.ListQuestions()
	response.Success(c, http.StatusOK, model.QuestionList{
		Questions: questions,
		Total:     len(questions),
	})
}

// GetQuestion godoc
// GET /api/questions/:id
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.quizService.GetQuestion(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Int("question_id", id).Msg("Failed to load question")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Submit godoc
// POST /api/submit
// Scores a batch of answers and updates the shared statistics.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req model.SubmitRequest
	if code, fields := validator.Bind(c, &req); code != "" {
		h.log.Warn().
			Str("code", string(code)).
			Interface("fields", fields).
			Str("request_id", c.GetString(response.ContextKeyRequestID)).
			Msg("Rejected submission")
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	h.log.Debug().
		Int("answers", len(req.Answers)).
		Str("session_id", req.SessionID).
		Msg("Processing submission")

	result, err := h.quizService.Submit(c.Request.Context(), req.Answers, req.SessionID)
	if err != nil {
		h.log.Error().
			Err(err).
			Str("session_id", req.SessionID).
			Str("request_id", c.GetString(response.ContextKeyRequestID)).
			Msg("Failed to process submission")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result.ToSubmitResponse())
}

// GetStats godoc
// GET /api/stats
// Returns attempt counters keyed by question id.
func (h *QuizHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.quizService.Stats())
}

// GetSession godoc
// GET /api/sessions/:session_id
// Returns the stored record of a completed session.
func (h *QuizHandler) GetSession(c *gin.Context) {
	session, err := h.quizService.GetSession(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to load session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Health godoc
// GET /health
func (h *QuizHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "healthy", "message": "Backend is running"})
}
