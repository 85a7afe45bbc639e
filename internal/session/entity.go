package session

import "fmt"

type Mode string

const (
	ModePractice Mode = "practice"
	ModeTest     Mode = "test"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePractice, ModeTest:
		return Mode(s), nil
	case "":
		return ModePractice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Session is one resumable run through a subset of the question store.
// QuestionIDs index the store; CurrentQuestionIndex and AnsweredQuestions
// are positions within QuestionIDs.
type Session struct {
	ID                   string `json:"id"`
	Timestamp            int64  `json:"timestamp"`
	TotalQuestions       int    `json:"totalQuestions"`
	CurrentQuestionIndex int    `json:"currentQuestionIndex"`
	Score                int    `json:"score"`
	IsTest               bool   `json:"isTest"`
	QuestionIDs          []int  `json:"questionIds"`
	AnsweredQuestions    []int  `json:"answeredQuestions"`
	Completed            bool   `json:"completed"`
}

func (s Session) Mode() Mode {
	if s.IsTest {
		return ModeTest
	}
	return ModePractice
}

func (s Session) Clone() Session {
	c := s
	c.QuestionIDs = append([]int{}, s.QuestionIDs...)
	c.AnsweredQuestions = append([]int{}, s.AnsweredQuestions...)
	return c
}

func (s Session) IsAnswered(position int) bool {
	for _, p := range s.AnsweredQuestions {
		if p == position {
			return true
		}
	}
	return false
}

// Snapshot is the persisted blob: every session plus the active id.
type Snapshot struct {
	Sessions         []Session `json:"sessions"`
	CurrentSessionID *string   `json:"currentSessionId"`
	LastUpdated      string    `json:"lastUpdated,omitempty"`
}

func (s Snapshot) clone() Snapshot {
	c := Snapshot{LastUpdated: s.LastUpdated, Sessions: make([]Session, len(s.Sessions))}
	for i, sess := range s.Sessions {
		c.Sessions[i] = sess.Clone()
	}
	if s.CurrentSessionID != nil {
		id := *s.CurrentSessionID
		c.CurrentSessionID = &id
	}
	return c
}
