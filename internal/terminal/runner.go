package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saulo-duarte/quizdeck/internal/config"
	"github.com/saulo-duarte/quizdeck/internal/grading"
	"github.com/saulo-duarte/quizdeck/internal/palette"
	"github.com/saulo-duarte/quizdeck/internal/question"
	"github.com/saulo-duarte/quizdeck/internal/quiz"
	"github.com/saulo-duarte/quizdeck/internal/report"
	"github.com/saulo-duarte/quizdeck/internal/session"
)

const paletteRows = 10

var (
	errQuit      = errors.New("quit")
	errPlayAgain = errors.New("play again")
)

type Options struct {
	Theme   string
	PDFPath string
}

// Runner plays a run line by line over in/out.
type Runner struct {
	ctl     quiz.Controller
	in      *bufio.Scanner
	out     io.Writer
	theme   Theme
	pdfPath string
	now     func() time.Time
}

func NewRunner(ctl quiz.Controller, in io.Reader, out io.Writer, opts Options) *Runner {
	return &Runner{
		ctl:     ctl,
		in:      bufio.NewScanner(in),
		out:     out,
		theme:   ThemeByName(opts.Theme),
		pdfPath: opts.PDFPath,
		now:     time.Now,
	}
}

// Play drives the active run until it ends, the user quits or input runs
// out. again reports whether the user asked for another run.
func (r *Runner) Play(ctx context.Context) (again bool, err error) {
	for {
		st := r.ctl.State()

		switch st.Phase() {
		case quiz.PhaseNotStarted:
			return false, nil
		case quiz.PhaseAnswering:
			err = r.answer(ctx, st)
		case quiz.PhaseSubmitted:
			err = r.afterSubmit(ctx, st)
		case quiz.PhaseComplete:
			err = r.complete(ctx, st)
		case quiz.PhaseReviewing:
			return r.finish(ctx)
		}

		if errors.Is(err, errPlayAgain) {
			return true, nil
		}
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			r.theme.Muted.Fprintln(r.out, "Progress saved. Resume later with: quizdeck play --resume")
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func (r *Runner) answer(ctx context.Context, st quiz.State) error {
	q, _ := st.Question()
	r.renderQuestion(st, q)

	line, err := r.read("> ")
	if err != nil {
		return err
	}
	if handled, err := r.command(ctx, st, line); handled || err != nil {
		return err
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if q.Kind == question.KindFreeText {
		if _, err := r.ctl.Dispatch(ctx, quiz.SetText{Text: line}); err != nil {
			return r.warn(err)
		}
	} else if err := r.selectLetters(ctx, st, q, line); err != nil {
		return r.warn(err)
	}

	next, err := r.ctl.Dispatch(ctx, quiz.Submit{})
	if err != nil {
		return r.warn(err)
	}
	if next.Mode() == session.ModeTest {
		_, err = r.ctl.Dispatch(ctx, quiz.Next{})
		return r.warn(err)
	}
	r.renderFeedback(next, q)
	return nil
}

func (r *Runner) afterSubmit(ctx context.Context, st quiz.State) error {
	hint := "Enter for next"
	if _, wrong := st.WrongAnswerAt(st.Position()); wrong {
		hint += ", :e to explain"
	}
	line, err := r.read(hint + " > ")
	if err != nil {
		return err
	}
	if handled, err := r.command(ctx, st, line); handled || err != nil {
		return err
	}
	_, err = r.ctl.Dispatch(ctx, quiz.Next{})
	return r.warn(err)
}

// command handles the ':' and '/' inputs shared by every prompt.
func (r *Runner) command(ctx context.Context, st quiz.State, line string) (bool, error) {
	cmd := strings.TrimSpace(line)
	switch {
	case cmd == ":q":
		return true, errQuit
	case cmd == ":n":
		_, err := r.ctl.Dispatch(ctx, quiz.Next{})
		return true, r.warn(err)
	case cmd == ":p":
		_, err := r.ctl.Dispatch(ctx, quiz.Previous{})
		return true, r.warn(err)
	case cmd == ":e":
		r.explain(ctx, st.Position())
		return true, nil
	case cmd == ":theme":
		r.theme = r.theme.Toggle()
		r.theme.Muted.Fprintf(r.out, "Theme: %s\n", r.theme.Name)
		return true, nil
	case strings.HasPrefix(cmd, "/"):
		return true, r.openPalette(ctx, st, strings.TrimPrefix(cmd, "/"))
	}
	return false, nil
}

// selectLetters makes the selection equal to the letters typed, e.g. "bc" or "b, c".
func (r *Runner) selectLetters(ctx context.Context, st quiz.State, q question.Question, line string) error {
	want := map[int]bool{}
	for _, l := range strings.ToLower(line) {
		if l == ' ' || l == ',' {
			continue
		}
		i := question.LetterIndex(l)
		if i < 0 || i >= len(q.Options) {
			return fmt.Errorf("%w: %q", quiz.ErrInvalidOption, l)
		}
		want[i] = true
	}

	for i := range q.Options {
		if st.IsSelected(i) == want[i] {
			continue
		}
		if _, err := r.ctl.Dispatch(ctx, quiz.Toggle{Option: i}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) openPalette(ctx context.Context, st quiz.State, query string) error {
	p := palette.New(st.Questions())
	p.Open()
	p.SetQuery(query)

	for p.IsOpen() {
		r.renderPalette(p)
		line, err := r.read("palette (j/k move, Enter jump, esc close) > ")
		if err != nil {
			return err
		}
		switch cmd := strings.TrimSpace(line); cmd {
		case "j":
			p.Down()
		case "k":
			p.Up()
		case "esc", ":q":
			p.Cancel()
		case "":
			idx, ok := p.Confirm()
			if !ok {
				p.Cancel()
				continue
			}
			_, err := r.ctl.Dispatch(ctx, quiz.Jump{QuestionIndex: idx})
			return r.warn(err)
		default:
			p.SetQuery(cmd)
		}
	}
	return nil
}

func (r *Runner) explain(ctx context.Context, position int) {
	r.theme.Muted.Fprintln(r.out, "Asking for an explanation...")
	text, err := r.ctl.Explain(ctx, position)
	if err != nil {
		r.warn(err)
		return
	}
	r.theme.Text.Fprintln(r.out, text)
}

func (r *Runner) complete(ctx context.Context, st quiz.State) error {
	sum := st.Summary()
	fmt.Fprintln(r.out)
	r.theme.Title.Fprintf(r.out, "Quiz complete! Score: %d/%d (%.1f%%)\n", sum.Score, sum.Total, sum.Percentage)

	if r.pdfPath != "" {
		r.writePDF(ctx, st)
	}

	if len(st.WrongAnswers()) > 0 {
		ok, err := r.confirm("Review wrong answers? [y/N] ")
		if err != nil {
			return err
		}
		if ok {
			_, err := r.ctl.Dispatch(ctx, quiz.Review{})
			return err
		}
	}

	again, err := r.confirm("Play again? [y/N] ")
	if err != nil {
		return err
	}
	if _, err := r.ctl.Dispatch(ctx, quiz.Restart{}); err != nil {
		return err
	}
	if again {
		return errPlayAgain
	}
	return nil
}

// finish shows the review, then asks whether to play again.
func (r *Runner) finish(ctx context.Context) (bool, error) {
	st := r.ctl.State()
	entries := st.ReviewEntries()
	for _, e := range entries {
		r.renderReviewEntry(e)
	}

	for {
		line, err := r.read("Question number to explain, Enter to continue > ")
		if err != nil {
			return false, nil
		}
		line = strings.TrimPrefix(strings.TrimSpace(line), "q")
		if line == "" {
			break
		}
		n, convErr := strconv.Atoi(line)
		found := false
		for _, e := range entries {
			if convErr == nil && e.Number == n {
				r.explain(ctx, e.Position)
				found = true
			}
		}
		if !found {
			r.theme.Wrong.Fprintf(r.out, "No wrong answer for question %q\n", line)
		}
	}

	again, err := r.confirm("Play again? [y/N] ")
	if err != nil {
		again = false
	}
	if _, err := r.ctl.Dispatch(ctx, quiz.Restart{}); err != nil {
		return false, err
	}
	return again, nil
}

func (r *Runner) writePDF(ctx context.Context, st quiz.State) {
	log := config.WithContext(ctx).WithField("path", r.pdfPath)

	data, err := report.GeneratePDF(report.FromState(st, r.now()))
	if err == nil {
		err = os.WriteFile(r.pdfPath, data, 0o644)
	}
	if err != nil {
		log.WithError(err).Error("Failed to write review PDF")
		r.theme.Wrong.Fprintf(r.out, "Could not write %s: %v\n", r.pdfPath, err)
		return
	}
	r.theme.Muted.Fprintf(r.out, "Review written to %s\n", r.pdfPath)
}

func (r *Runner) renderQuestion(st quiz.State, q question.Question) {
	fmt.Fprintln(r.out)
	r.theme.Muted.Fprintf(r.out, "[%s] %d/%d  score %d\n", st.Mode(), st.Position()+1, st.Total(), st.Score())
	r.theme.Title.Fprintf(r.out, "Q%d: %s\n", q.Number(), q.Text)

	if q.Kind == question.KindFreeText {
		r.theme.Muted.Fprintln(r.out, "Type your answer.")
		return
	}
	for i, o := range q.Options {
		mark := " "
		if st.IsSelected(i) {
			mark = "*"
		}
		r.theme.Text.Fprintf(r.out, " %s %c) %s\n", mark, question.Letter(i), o)
	}
	r.theme.Muted.Fprintln(r.out, "Type the letters of every correct option (e.g. b or bc).")
}

func (r *Runner) renderFeedback(st quiz.State, q question.Question) {
	if st.LastCorrect() {
		r.theme.Correct.Fprintln(r.out, "Correct!")
	} else {
		r.theme.Wrong.Fprintln(r.out, "Incorrect.")
	}

	if q.Kind == question.KindChoice {
		verdicts := grading.OptionVerdicts(q, st.SelectedTexts())
		for i, o := range q.Options {
			r.theme.Verdict(verdicts[i]).Fprintf(r.out, "   %c) %s\n", question.Letter(i), o)
		}
	}
	if !st.LastCorrect() {
		r.theme.Correct.Fprintf(r.out, "Correct answer: %s\n", q.CorrectAnswer())
	}
}

func (r *Runner) renderReviewEntry(e quiz.ReviewEntry) {
	fmt.Fprintln(r.out)
	r.theme.Title.Fprintf(r.out, "Q%d: %s\n", e.Number, e.Question)
	for _, o := range e.Options {
		r.theme.Verdict(o.Verdict).Fprintf(r.out, "   %s) %s\n", o.Letter, o.Text)
	}
	r.theme.Wrong.Fprintf(r.out, "Your answer: %s\n", e.UserAnswer)
	r.theme.Correct.Fprintf(r.out, "Correct answer: %s\n", e.Correct)
}

func (r *Runner) renderPalette(p *palette.Palette) {
	results := p.Results()
	r.theme.Muted.Fprintf(r.out, "Search: %q (%d matches)\n", p.Query(), len(results))
	for i, q := range results {
		if i >= paletteRows {
			r.theme.Muted.Fprintf(r.out, "   ... %d more\n", len(results)-paletteRows)
			break
		}
		if i == p.Highlight() {
			r.theme.Highlight.Fprintf(r.out, " > Q%d: %s\n", q.Number(), q.Text)
			continue
		}
		r.theme.Text.Fprintf(r.out, "   Q%d: %s\n", q.Number(), q.Text)
	}
}

func (r *Runner) read(prompt string) (string, error) {
	r.theme.Highlight.Fprint(r.out, prompt)
	if !r.in.Scan() {
		fmt.Fprintln(r.out)
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.in.Text(), "\r"), nil
}

func (r *Runner) confirm(prompt string) (bool, error) {
	line, err := r.read(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// warn prints user-facing errors and swallows them.
func (r *Runner) warn(err error) error {
	if err == nil {
		return nil
	}
	r.theme.Wrong.Fprintf(r.out, "%s\n", err)
	return nil
}
