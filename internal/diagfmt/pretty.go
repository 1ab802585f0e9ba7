package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"spvdecomp/internal/diag"
)

type palette struct {
	err, warn, info, note, code, dim lipgloss.Style
	on                               bool
}

func newPalette(color bool) palette {
	return palette{
		err:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		warn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		info: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		note: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		code: lipgloss.NewStyle().Bold(true),
		dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		on:   color,
	}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if !p.on {
		return text
	}
	return s.Render(text)
}

func (p palette) severity(sev diag.Severity) string {
	label := strings.ToLower(sev.String())
	switch sev {
	case diag.SevError:
		return p.render(p.err, label)
	case diag.SevWarning:
		return p.render(p.warn, label)
	default:
		return p.render(p.info, label)
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<sev>[<CODE>]: <Message>
//	  --> <title>, inst N @word W (%id)
//	   | <instruction text>
//	   = note: <msg> (inst N)
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if w == nil || bag.Len() == 0 {
		return
	}
	p := newPalette(opts.Color)
	var b strings.Builder
	for _, d := range bag.Items() {
		head := fmt.Sprintf("%s[%s]: %s", p.severity(d.Severity), p.render(p.code, d.Code.ID()), d.Message)
		b.WriteString(clip(head, opts.Width, opts.Color))
		b.WriteByte('\n')

		where := d.Primary.String()
		if opts.Title != "" {
			where = opts.Title + ", " + where
		}
		b.WriteString(p.render(p.dim, "  --> "))
		b.WriteString(where)
		b.WriteByte('\n')

		if opts.Describe != nil {
			if text, ok := opts.Describe(d.Primary.Inst); ok {
				b.WriteString(p.render(p.dim, "   | "))
				b.WriteString(clip(text, opts.Width, false))
				b.WriteByte('\n')
			}
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				line := fmt.Sprintf("   = %s: %s (%s)", p.render(p.note, "note"), n.Msg, n.Span)
				b.WriteString(clip(line, opts.Width, opts.Color))
				b.WriteByte('\n')
			}
		}
	}
	io.WriteString(w, b.String())
}

// clip truncates plain text to width display cells. Styled text is left
// alone since escape sequences have no width.
func clip(text string, width uint8, styled bool) string {
	if width == 0 || styled {
		return text
	}
	if runewidth.StringWidth(text) <= int(width) {
		return text
	}
	if width <= 3 {
		return runewidth.Truncate(text, int(width), "")
	}
	return runewidth.Truncate(text, int(width), "...")
}

// Summary renders "N errors, M warnings" for a set of bags, or "" when all
// are empty.
func Summary(bags ...*diag.Bag) string {
	var errs, warns int
	for _, bag := range bags {
		for _, d := range bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	if errs == 0 && warns == 0 {
		return ""
	}
	return fmt.Sprintf("%s, %s", plural(errs, "error"), plural(warns, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
