package pack

import (
	"errors"
	"testing"
)

func TestParsePackPreservesQuestionOrder(t *testing.T) {
	data := []byte(`{
		"math": {
			"z last in alphabet?": "yes",
			"a first in alphabet?": "yes",
			"2+2?": "4"
		}
	}`)

	table, err := ParsePack(data)
	if err != nil {
		t.Fatalf("ParsePack failed: %v", err)
	}

	set, ok := table["math"]
	if !ok {
		t.Fatalf("category math missing: %v", table)
	}

	wantOrder := []string{"z last in alphabet?", "a first in alphabet?", "2+2?"}
	if len(set) != len(wantOrder) {
		t.Fatalf("expected %d questions, got %d", len(wantOrder), len(set))
	}
	for idx, want := range wantOrder {
		if set[idx].Question != want {
			t.Fatalf("question %d = %q, want %q", idx, set[idx].Question, want)
		}
	}
}

func TestParsePackDuplicateQuestionKeepsPositionTakesLastValue(t *testing.T) {
	data := []byte(`{"c": {"q1": "first", "q2": "other", "q1": "second"}}`)

	table, err := ParsePack(data)
	if err != nil {
		t.Fatalf("ParsePack failed: %v", err)
	}

	set := table["c"]
	if len(set) != 2 {
		t.Fatalf("expected 2 questions after duplicate merge, got %d", len(set))
	}
	if set[0].Question != "q1" || set[0].Answer != "second" {
		t.Fatalf("duplicate key not merged in place: %+v", set[0])
	}
	if set[1].Question != "q2" {
		t.Fatalf("unexpected second question: %+v", set[1])
	}
}

func TestParsePackRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "top-level array", data: `[{"math": {}}]`},
		{name: "top-level string", data: `"math"`},
		{name: "category not object", data: `{"math": ["2+2?", "4"]}`},
		{name: "non-string answer", data: `{"math": {"2+2?": 4}}`},
		{name: "object answer", data: `{"math": {"2+2?": {"value": "4"}}}`},
		{name: "truncated", data: `{"math": {"2+2?": "4"`},
		{name: "trailing data", data: `{"math": {}} {"more": {}}`},
		{name: "empty input", data: ``},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePack([]byte(tc.data))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
		})
	}
}

func TestParsePackAllowsEmptyCategory(t *testing.T) {
	table, err := ParsePack([]byte(`{"empty": {}}`))
	if err != nil {
		t.Fatalf("ParsePack failed: %v", err)
	}
	if set, ok := table["empty"]; !ok || len(set) != 0 {
		t.Fatalf("expected empty question set, got %v", table)
	}
}

func TestQuestionSetAnswerLookup(t *testing.T) {
	set := QuestionSet{
		{Question: "2+2?", Answer: "4"},
		{Question: "3+3?", Answer: "6"},
	}

	if answer, ok := set.Answer("3+3?"); !ok || answer != "6" {
		t.Fatalf("Answer(3+3?) = (%q, %v), want (6, true)", answer, ok)
	}
	if _, ok := set.Answer("missing"); ok {
		t.Fatalf("expected miss for unknown question")
	}
}
