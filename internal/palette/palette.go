package palette

import "github.com/saulo-duarte/quizdeck/internal/question"

// Palette is the open/closed search overlay used to jump between questions.
// It is not safe for concurrent use.
type Palette struct {
	all       []question.Question
	open      bool
	query     string
	results   []question.Question
	highlight int
}

func New(questions []question.Question) *Palette {
	return &Palette{all: append([]question.Question{}, questions...)}
}

func (p *Palette) Open() {
	p.open = true
	p.SetQuery("")
}

func (p *Palette) IsOpen() bool { return p.open }

func (p *Palette) Query() string { return p.query }

func (p *Palette) Results() []question.Question {
	return append([]question.Question{}, p.results...)
}

// Highlight is the index into Results of the highlighted row.
func (p *Palette) Highlight() int { return p.highlight }

func (p *Palette) SetQuery(q string) {
	p.query = q
	p.results = Filter(p.all, q)
	p.highlight = 0
}

func (p *Palette) Down() {
	if len(p.results) == 0 {
		return
	}
	p.highlight = (p.highlight + 1) % len(p.results)
}

func (p *Palette) Up() {
	if len(p.results) == 0 {
		return
	}
	p.highlight = (p.highlight - 1 + len(p.results)) % len(p.results)
}

// Confirm closes the palette and returns the store index of the highlighted
// question. ok is false when nothing matches.
func (p *Palette) Confirm() (int, bool) {
	if !p.open || len(p.results) == 0 {
		return 0, false
	}
	idx := p.results[p.highlight].Index
	p.Cancel()
	return idx, true
}

func (p *Palette) Cancel() {
	p.open = false
	p.query = ""
	p.results = nil
	p.highlight = 0
}
