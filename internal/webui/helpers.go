package webui

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"flashcards/internal/pack"
	"flashcards/internal/quiz"
)

func writeError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(errorResponse{Error: message})
}

func writeCoreError(c *fiber.Ctx, err error) error {
	var parseErr *pack.ParseError
	switch {
	case errors.Is(err, quiz.ErrUnknownCategory):
		return writeError(c, fiber.StatusNotFound, "unknown category")
	case errors.Is(err, quiz.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "quiz is not in progress")
	case errors.As(err, &parseErr):
		return writeError(c, fiber.StatusBadRequest, parseErr.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "request failed")
	}
}

// toQuizState renders session state for the dashboard. The question is
// only read while the session is in progress; a completed session
// reports the completed status with full progress instead.
func toQuizState(session *quiz.Session) quizStateResponse {
	answered, total := session.Progress()
	response := quizStateResponse{
		Category:      session.Category(),
		Status:        session.LastFeedback(),
		AnsweredCount: answered,
		TotalCount:    total,
	}
	if question, err := session.CurrentQuestion(); err == nil {
		response.Question = question
	}
	return response
}
