package grading_test

import (
	"testing"

	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/question"
)

func mustQuestion(t *testing.T, r question.Record) question.Question {
	t.Helper()
	q, err := question.FromRecord(0, r)
	if err != nil {
		t.Fatalf("FromRecord: %v", err)
	}
	return q
}

func TestSingleLetterChoice(t *testing.T) {
	options := []string{"red", "green", "blue", "yellow"}
	for correct := range options {
		q := mustQuestion(t, question.Record{
			Question: "pick one",
			Answers:  options,
			Correct:  string(question.Letter(correct)),
		})
		for picked, option := range options {
			want := picked == correct
			if got := grading.IsCorrect(grading.Multiple(option), q); got != want {
				t.Errorf("correct=%c picked=%s: expected %v, got %v", question.Letter(correct), option, want, got)
			}
			if got := grading.IsCorrect(grading.Single(option), q); got != want {
				t.Errorf("single probe correct=%c picked=%s: expected %v, got %v", question.Letter(correct), option, want, got)
			}
		}
	}
}

func TestMultiLetterOrderIndependent(t *testing.T) {
	q := mustQuestion(t, question.Record{Question: "pick two", Answers: []string{"A", "B", "C", "D"}, Correct: "ac"})

	testCases := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"in order", []string{"A", "C"}, true},
		{"reversed", []string{"C", "A"}, true},
		{"subset", []string{"A"}, false},
		{"superset", []string{"A", "B", "C"}, false},
		{"wrong pair", []string{"B", "D"}, false},
		{"empty", nil, false},
		{"unknown option", []string{"A", "Z"}, false},
		{"duplicate pick", []string{"A", "A", "C"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := grading.IsCorrect(grading.Multiple(tc.selected...), q); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestFreeText(t *testing.T) {
	q := mustQuestion(t, question.Record{Question: "2+2?", Answers: []string{}, Correct: "4"})

	testCases := []struct {
		answer string
		want   bool
	}{
		{"4", true},
		{" 4", false},
		{"4 ", false},
		{"Four", false},
		{"", false},
	}
	for _, tc := range testCases {
		if got := grading.IsCorrect(grading.Single(tc.answer), q); got != tc.want {
			t.Errorf("answer %q: expected %v, got %v", tc.answer, tc.want, got)
		}
	}

	capital := mustQuestion(t, question.Record{Question: "capital?", Answers: []string{}, Correct: "Paris"})
	for _, answer := range []string{"Paris", "paris", "PARIS", "pArIs"} {
		if !grading.IsCorrect(grading.Single(answer), capital) {
			t.Errorf("answer %q should be accepted case-insensitively", answer)
		}
	}
	if grading.IsCorrect(grading.Multiple("Paris"), capital) {
		t.Error("a list answer must never grade a free-text question correct")
	}
}

func TestMembershipVersusFullSet(t *testing.T) {
	q := mustQuestion(t, question.Record{Question: "q", Answers: []string{"x", "y", "z"}, Correct: "bc"})

	if !grading.IsCorrect(grading.Multiple("y", "z"), q) {
		t.Error(`["y","z"] should be correct`)
	}
	if grading.IsCorrect(grading.Multiple("y"), q) {
		t.Error(`["y"] alone should be incorrect for the full-set check`)
	}
	if !grading.IsCorrect(grading.Single("y"), q) {
		t.Error(`single probe "y" should report correct by membership`)
	}
	if grading.IsCorrect(grading.Single("x"), q) {
		t.Error(`single probe "x" should be incorrect`)
	}
	if grading.IsCorrect(grading.Single("w"), q) {
		t.Error("an unknown option must grade incorrect")
	}
}

func TestDuplicateOptionTextUsesFirstOccurrence(t *testing.T) {
	q := mustQuestion(t, question.Record{Question: "q", Answers: []string{"same", "same", "other"}, Correct: "b"})
	if grading.IsCorrect(grading.Single("same"), q) {
		t.Error("lookup should resolve to the first occurrence (letter a)")
	}
}

func TestOptionVerdicts(t *testing.T) {
	q := mustQuestion(t, question.Record{Question: "q", Answers: []string{"x", "y", "z"}, Correct: "bc"})

	got := grading.OptionVerdicts(q, []string{"x", "y"})
	want := []grading.Verdict{grading.Wrong, grading.Correct, grading.Correct}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestAnswerHelpers(t *testing.T) {
	if !grading.Single("").Empty() {
		t.Error("empty single answer should be Empty")
	}
	if !grading.Multiple().Empty() {
		t.Error("empty list should be Empty")
	}
	if grading.Multiple("a", "b").String() != "a, b" {
		t.Errorf("unexpected String: %q", grading.Multiple("a", "b").String())
	}
}
