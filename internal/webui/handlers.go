package webui

import (
	"bytes"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"flashcards/internal/quiz"
)

func (a *API) HandleCategories(c *fiber.Ctx) error {
	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	table := state.store.Snapshot()
	items := make([]categoryResponse, 0, len(table))
	for _, name := range state.store.CategoryNames() {
		items = append(items, categoryResponse{
			Name:          name,
			QuestionCount: len(table[name]),
		})
	}

	return c.JSON(categoriesResponse{Categories: items})
}

// HandleImportPack ingests one uploaded pack document per request. The
// dashboard must call this once per user action, never per render; the
// merge is an overwrite and reports a fresh count every time.
func (a *API) HandleImportPack(c *fiber.Ctx) error {
	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}

	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return writeError(c, fiber.StatusBadRequest, "request body must be a JSON pack")
	}

	source := "upload-" + uuid.NewString() + ".json"

	state.mu.Lock()
	defer state.mu.Unlock()

	count, err := state.store.LoadFromSource(source, body)
	if err != nil {
		return writeCoreError(c, err)
	}

	if a.uploads != nil {
		// Best effort: a failed blob write only costs restore-on-restart,
		// the session keeps the merged categories either way.
		if err := a.uploads.Scope(state.scope).Write(source, body); err != nil {
			log.Printf("persisting upload %s failed: %v", source, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(importResponse{
		Source:           source,
		CategoriesMerged: count,
	})
}

func (a *API) HandleStartQuiz(c *fiber.Ctx) error {
	var request startQuizRequest
	if err := c.BodyParser(&request); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	category := strings.TrimSpace(request.Category)
	if category == "" {
		return writeError(c, fiber.StatusBadRequest, "category is required")
	}

	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	session, err := quiz.Start(category, state.store.Snapshot())
	if err != nil {
		return writeCoreError(c, err)
	}

	state.active = session
	return c.JSON(toQuizState(session))
}

func (a *API) HandleCurrentQuestion(c *fiber.Ctx) error {
	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.active == nil {
		return writeError(c, fiber.StatusConflict, "no quiz started")
	}
	if _, err := state.active.CurrentQuestion(); err != nil {
		return writeCoreError(c, err)
	}

	return c.JSON(toQuizState(state.active))
}

func (a *API) HandleSubmitAnswer(c *fiber.Ctx) error {
	var request answerRequest
	if err := c.BodyParser(&request); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	if state.active == nil {
		return writeError(c, fiber.StatusConflict, "no quiz started")
	}

	if _, err := state.active.SubmitAnswer(request.Answer); err != nil {
		return writeCoreError(c, err)
	}

	return c.JSON(toQuizState(state.active))
}

// HandleResetQuiz abandons the active quiz and returns the caller to
// category selection. Pack content is untouched; restarting the same
// category later begins at question zero.
func (a *API) HandleResetQuiz(c *fiber.Ctx) error {
	state, err := a.stateFor(c)
	if err != nil {
		return writeCoreError(c, err)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	state.active = nil
	return c.JSON(fiber.Map{"status": "reset"})
}
