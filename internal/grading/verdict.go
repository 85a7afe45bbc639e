package grading

import "github.com/saulo-duarte/quizdeck/internal/question"

// Verdict is the highlight class of one option after submission.
type Verdict int

const (
	Neutral Verdict = iota
	Correct
	Wrong
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "neutral"
	}
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// OptionVerdict highlights correct options distinctly from a wrong pick.
func OptionVerdict(q question.Question, option string, selected bool) Verdict {
	if IsOptionCorrect(q, option) {
		return Correct
	}
	if selected {
		return Wrong
	}
	return Neutral
}

func OptionVerdicts(q question.Question, selected []string) []Verdict {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	out := make([]Verdict, len(q.Options))
	for i, o := range q.Options {
		out[i] = OptionVerdict(q, o, picked[o])
	}
	return out
}
