package pack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Entry is a single flash card: a question and the answer it expects.
type Entry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionSet holds one category's cards in the order the pack file
// declared them. Presentation order is source order, never re-sorted.
type QuestionSet []Entry

// CategoryTable maps category names (case-sensitive, as authored) to
// their question sets.
type CategoryTable map[string]QuestionSet

// ParseError reports a pack document that could not be ingested. The
// whole source is rejected; a table is never left half-merged.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return "invalid pack: " + e.Reason
	}
	return "invalid pack " + e.Source + ": " + e.Reason
}

// ParsePack decodes a pack document: a JSON object mapping category
// names to objects of question -> answer strings.
//
// encoding/json maps would lose the authored question order, so the
// document is walked token by token instead.
func ParsePack(data []byte) (CategoryTable, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	if err := expectObjectStart(decoder, "top level must be a JSON object"); err != nil {
		return nil, err
	}

	table := make(CategoryTable)
	for decoder.More() {
		nameToken, err := decoder.Token()
		if err != nil {
			return nil, &ParseError{Reason: "malformed JSON: " + err.Error()}
		}
		name, ok := nameToken.(string)
		if !ok {
			return nil, &ParseError{Reason: "malformed JSON: category name is not a string"}
		}

		set, err := parseQuestionSet(decoder, name)
		if err != nil {
			return nil, err
		}
		table[name] = set
	}

	if _, err := decoder.Token(); err != nil {
		return nil, &ParseError{Reason: "malformed JSON: " + err.Error()}
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, &ParseError{Reason: "trailing data after pack object"}
	}

	return table, nil
}

func parseQuestionSet(decoder *json.Decoder, category string) (QuestionSet, error) {
	reason := fmt.Sprintf("category %q must be a JSON object", category)
	if err := expectObjectStart(decoder, reason); err != nil {
		return nil, err
	}

	set := make(QuestionSet, 0)
	position := make(map[string]int)

	for decoder.More() {
		questionToken, err := decoder.Token()
		if err != nil {
			return nil, &ParseError{Reason: "malformed JSON: " + err.Error()}
		}
		question, ok := questionToken.(string)
		if !ok {
			return nil, &ParseError{Reason: "malformed JSON: question is not a string"}
		}

		answerToken, err := decoder.Token()
		if err != nil {
			return nil, &ParseError{Reason: "malformed JSON: " + err.Error()}
		}
		answer, ok := answerToken.(string)
		if !ok {
			return nil, &ParseError{
				Reason: fmt.Sprintf("answer for %q in category %q is not a string", question, category),
			}
		}

		// Duplicate question keys keep their first position and take
		// the last value, matching how the pack format's authoring
		// tools (plain JSON object editors) resolve them.
		if idx, seen := position[question]; seen {
			set[idx].Answer = answer
			continue
		}
		position[question] = len(set)
		set = append(set, Entry{Question: question, Answer: answer})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, &ParseError{Reason: "malformed JSON: " + err.Error()}
	}

	return set, nil
}

func expectObjectStart(decoder *json.Decoder, reason string) error {
	token, err := decoder.Token()
	if err != nil {
		return &ParseError{Reason: "malformed JSON: " + err.Error()}
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != '{' {
		return &ParseError{Reason: reason}
	}
	return nil
}

// Answer looks up the expected answer for a question. Mostly useful to
// front-ends rendering a review of a set; quiz flow walks the slice.
func (s QuestionSet) Answer(question string) (string, bool) {
	for _, entry := range s {
		if entry.Question == question {
			return entry.Answer, true
		}
	}
	return "", false
}
