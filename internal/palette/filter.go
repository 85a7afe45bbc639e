package palette

import (
	"strconv"
	"strings"

	"github.com/saulo-duarte/quizdeck/internal/question"
)

// Filter returns the questions matching query in the order given. A query
// naming the number of one of them ("12" or "q12") puts that question first.
// An empty query matches everything.
func Filter(questions []question.Question, query string) []question.Question {
	q := strings.TrimSpace(query)
	if q == "" {
		return append([]question.Question{}, questions...)
	}

	exact := -1
	if n, ok := parseNumber(q); ok {
		for i, item := range questions {
			if item.Number() == n {
				exact = i
				break
			}
		}
	}

	lower := strings.ToLower(q)
	out := make([]question.Question, 0, len(questions))
	if exact >= 0 {
		out = append(out, questions[exact])
	}
	for i, item := range questions {
		if i == exact {
			continue
		}
		if strings.Contains(strconv.Itoa(item.Number()), q) ||
			strings.Contains(strings.ToLower(item.Text), lower) {
			out = append(out, item)
		}
	}
	return out
}

func parseNumber(q string) (int, bool) {
	q = strings.TrimPrefix(strings.ToLower(q), "q")
	n, err := strconv.Atoi(q)
	if err != nil {
		return 0, false
	}
	return n, true
}
