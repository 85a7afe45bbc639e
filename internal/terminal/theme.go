package terminal

import (
	"strings"

	"github.com/fatih/color"
	"github.com/saulo-duarte/quizdeck/internal/grading"
)

// Theme groups the colours used by the runner.
type Theme struct {
	Name      string
	Title     *color.Color
	Text      *color.Color
	Muted     *color.Color
	Highlight *color.Color
	Correct   *color.Color
	Wrong     *color.Color
}

func DarkTheme() Theme {
	return Theme{
		Name:      "dark",
		Title:     color.New(color.FgHiCyan, color.Bold),
		Text:      color.New(color.FgHiWhite),
		Muted:     color.New(color.FgHiBlack),
		Highlight: color.New(color.FgHiYellow, color.Bold),
		Correct:   color.New(color.FgHiGreen, color.Bold),
		Wrong:     color.New(color.FgHiRed, color.Bold),
	}
}

func LightTheme() Theme {
	return Theme{
		Name:      "light",
		Title:     color.New(color.FgBlue, color.Bold),
		Text:      color.New(color.FgBlack),
		Muted:     color.New(color.FgWhite),
		Highlight: color.New(color.FgMagenta, color.Bold),
		Correct:   color.New(color.FgGreen, color.Bold),
		Wrong:     color.New(color.FgRed, color.Bold),
	}
}

// ThemeByName falls back to the light theme for unknown names.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, "dark") {
		return DarkTheme()
	}
	return LightTheme()
}

func (t Theme) Toggle() Theme {
	if t.Name == "dark" {
		return LightTheme()
	}
	return DarkTheme()
}

func (t Theme) Verdict(v grading.Verdict) *color.Color {
	switch v {
	case grading.Correct:
		return t.Correct
	case grading.Wrong:
		return t.Wrong
	default:
		return t.Text
	}
}
