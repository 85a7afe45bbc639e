// Package grading decides whether a submitted answer is correct.
//
// Two predicates exist on purpose. A single value is checked by membership in
// the correct letter set, which is what option highlighting uses; a list of
// values must match the correct set exactly, which is what scoring uses.
package grading

import (
	"strings"

	"github.com/saulo-duarte/quizdeck/internal/question"
)

type shape int

const (
	shapeSingle shape = iota
	shapeMultiple
)

// Answer is a candidate answer: one text value or a list of option texts.
type Answer struct {
	shape  shape
	values []string
}

func Single(v string) Answer {
	return Answer{shape: shapeSingle, values: []string{v}}
}

func Multiple(vs ...string) Answer {
	values := make([]string, len(vs))
	copy(values, vs)
	return Answer{shape: shapeMultiple, values: values}
}

func (a Answer) IsMultiple() bool {
	return a.shape == shapeMultiple
}

func (a Answer) Values() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

func (a Answer) Empty() bool {
	if a.shape == shapeSingle {
		return len(a.values) == 0 || a.values[0] == ""
	}
	return len(a.values) == 0
}

// String renders the answer the way the review screen shows it.
func (a Answer) String() string {
	return strings.Join(a.values, ", ")
}

// IsCorrect never fails; unknown option texts simply grade as incorrect.
func IsCorrect(candidate Answer, q question.Question) bool {
	if q.Kind == question.KindFreeText {
		if candidate.shape != shapeSingle || len(candidate.values) != 1 {
			return false
		}
		return strings.EqualFold(candidate.values[0], q.Expected)
	}

	if candidate.shape == shapeSingle {
		if len(candidate.values) != 1 {
			return false
		}
		return IsOptionCorrect(q, candidate.values[0])
	}

	letters, ok := Letters(q, candidate.values)
	if !ok {
		return false
	}
	return question.SortLetters(letters) == q.CorrectLetters
}

// IsOptionCorrect reports whether option's letter appears anywhere in the
// correct set.
func IsOptionCorrect(q question.Question, option string) bool {
	i := q.OptionIndex(option)
	if i < 0 {
		return false
	}
	return q.HasCorrectLetter(question.Letter(i))
}

// Letters maps option texts to their letters in the given order. ok is false
// when any text is not an option of q.
func Letters(q question.Question, options []string) (string, bool) {
	var b strings.Builder
	for _, o := range options {
		i := q.OptionIndex(o)
		if i < 0 {
			return "", false
		}
		b.WriteRune(question.Letter(i))
	}
	return b.String(), true
}
