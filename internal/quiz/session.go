package quiz

import (
	"errors"
	"strings"

	"flashcards/internal/pack"
)

// Feedback/outcome statuses for answer submissions and renderers.
const (
	StatusNone      = "none"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
	StatusCompleted = "completed"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidState    = errors.New("invalid session state")
)

// Session drives one user through one category, one question at a time.
// It holds a read-only reference to the category's question set and
// never mutates pack content. The zero value is a not-started session;
// use Start to obtain a usable one.
type Session struct {
	category     string
	entries      pack.QuestionSet
	cursor       int
	started      bool
	completed    bool
	lastFeedback string
}

// Start begins a session for categoryName. A name absent from the
// table is ErrUnknownCategory; the table is left untouched either way.
// An empty question set completes immediately, there is no question
// index to read.
func Start(categoryName string, table pack.CategoryTable) (*Session, error) {
	set, ok := table[categoryName]
	if !ok {
		return nil, ErrUnknownCategory
	}

	session := &Session{
		category:     categoryName,
		entries:      set,
		started:      true,
		lastFeedback: StatusNone,
	}
	if len(set) == 0 {
		session.completed = true
		session.lastFeedback = StatusCompleted
	}
	return session, nil
}

func (s *Session) Category() string {
	return s.category
}

func (s *Session) Completed() bool {
	return s.completed
}

func (s *Session) InProgress() bool {
	return s.started && !s.completed
}

// CurrentQuestion is only valid while the session is in progress.
// Calling it before Start or after completion is a front-end defect,
// reported as ErrInvalidState.
func (s *Session) CurrentQuestion() (string, error) {
	if !s.InProgress() {
		return "", ErrInvalidState
	}
	return s.entries[s.cursor].Question, nil
}

// SubmitAnswer checks text against the current question's expected
// answer, comparing case- and surrounding-whitespace-insensitively.
// A correct answer advances the cursor; the answer that reaches the
// question count completes the session. A wrong answer leaves the
// cursor where it is, retries are unlimited.
func (s *Session) SubmitAnswer(text string) (string, error) {
	if !s.InProgress() {
		return "", ErrInvalidState
	}

	expected := s.entries[s.cursor].Answer
	if normalizeAnswer(text) != normalizeAnswer(expected) {
		s.lastFeedback = StatusIncorrect
		return StatusIncorrect, nil
	}

	s.cursor++
	if s.cursor == len(s.entries) {
		s.completed = true
		s.lastFeedback = StatusCompleted
		return StatusCompleted, nil
	}

	s.lastFeedback = StatusCorrect
	return StatusCorrect, nil
}

// Progress reports answered and total question counts for display.
func (s *Session) Progress() (int, int) {
	return s.cursor, len(s.entries)
}

// LastFeedback is what a renderer should show for the most recent
// submission, StatusNone before any.
func (s *Session) LastFeedback() string {
	return s.lastFeedback
}

// Reset rewinds the session to question index zero, regardless of how
// far it had advanced. Safe at any time after Start; pack content is
// untouched.
func (s *Session) Reset() {
	if !s.started {
		return
	}
	s.cursor = 0
	s.completed = len(s.entries) == 0
	s.lastFeedback = StatusNone
	if s.completed {
		s.lastFeedback = StatusCompleted
	}
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
