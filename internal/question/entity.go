package question

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidCorrect = errors.New("correct letters do not index the answer list")
	ErrEmptyQuestion  = errors.New("question text is empty")
	ErrOutOfRange     = errors.New("question index out of range")
)

// Record is the on-disk shape of a question. Correct holds option letters
// when Answers is non-empty and the literal expected text otherwise.
type Record struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Correct  string   `json:"correct"`
}

type Kind int

const (
	KindChoice Kind = iota
	KindFreeText
)

func (k Kind) String() string {
	if k == KindFreeText {
		return "free_text"
	}
	return "choice"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Question struct {
	Index   int      `json:"index"`
	Text    string   `json:"question"`
	Kind    Kind     `json:"kind"`
	Options []string `json:"answers,omitempty"`

	// Expected is set for free-text questions only.
	Expected string `json:"expected,omitempty"`
	// CorrectLetters is set for choice questions only, sorted, duplicates kept.
	CorrectLetters string `json:"correctLetters,omitempty"`
}

func Letter(i int) rune {
	return rune('a' + i)
}

// LetterIndex is the inverse of Letter; it returns -1 for anything outside a..z.
func LetterIndex(r rune) int {
	if r < 'a' || r > 'z' {
		return -1
	}
	return int(r - 'a')
}

// SortLetters sorts the runes of s without removing duplicates.
func SortLetters(s string) string {
	rs := []rune(s)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return string(rs)
}

// FromRecord validates r and converts it into the tagged form.
func FromRecord(index int, r Record) (Question, error) {
	if strings.TrimSpace(r.Question) == "" {
		return Question{}, fmt.Errorf("question %d: %w", index+1, ErrEmptyQuestion)
	}

	if len(r.Answers) == 0 {
		return Question{
			Index:    index,
			Text:     r.Question,
			Kind:     KindFreeText,
			Expected: r.Correct,
		}, nil
	}

	if r.Correct == "" {
		return Question{}, fmt.Errorf("question %d: %w", index+1, ErrInvalidCorrect)
	}
	for _, l := range r.Correct {
		i := LetterIndex(l)
		if i < 0 || i >= len(r.Answers) {
			return Question{}, fmt.Errorf("question %d: letter %q: %w", index+1, l, ErrInvalidCorrect)
		}
	}

	options := make([]string, len(r.Answers))
	copy(options, r.Answers)

	return Question{
		Index:          index,
		Text:           r.Question,
		Kind:           KindChoice,
		Options:        options,
		CorrectLetters: SortLetters(r.Correct),
	}, nil
}

func FromRecords(records []Record) ([]Question, error) {
	out := make([]Question, 0, len(records))
	for i, r := range records {
		q, err := FromRecord(i, r)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (q Question) Record() Record {
	if q.Kind == KindFreeText {
		return Record{Question: q.Text, Answers: []string{}, Correct: q.Expected}
	}
	answers := make([]string, len(q.Options))
	copy(answers, q.Options)
	return Record{Question: q.Text, Answers: answers, Correct: q.CorrectLetters}
}

// Number is the 1-based ordinal shown to the user.
func (q Question) Number() int {
	return q.Index + 1
}

func (q Question) HasCorrectLetter(l rune) bool {
	return q.Kind == KindChoice && strings.ContainsRune(q.CorrectLetters, l)
}

// OptionIndex returns the first option equal to text, or -1.
func (q Question) OptionIndex(text string) int {
	for i, o := range q.Options {
		if o == text {
			return i
		}
	}
	return -1
}

// CorrectAnswer renders the expected answer for display, e.g. "b) Paris".
func (q Question) CorrectAnswer() string {
	if q.Kind == KindFreeText {
		return q.Expected
	}
	parts := make([]string, 0, len(q.CorrectLetters))
	for _, l := range q.CorrectLetters {
		parts = append(parts, fmt.Sprintf("%c) %s", l, q.Options[LetterIndex(l)]))
	}
	return strings.Join(parts, ", ")
}
