// Package display shows the progress of a song on a terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/vsariola/jamband/band"
)

type (
	// Terminal redraws the frame in place on every tick.
	Terminal struct {
		w    *uilive.Writer
		tmpl *template.Template
	}

	// Plain appends every frame to a writer, e.g. a log file.
	Plain struct {
		out  io.Writer
		tmpl *template.Template
	}

	view struct {
		band.Frame
		BarRuler  string
		BeatRuler string
		Accents   string
		Done      int
		Left      int
	}
)

const frameTemplate = `  {{ header (printf ".:[ %v ]:." .Section.Kind) }}{{ with .Title }} {{ . }}{{ end }}
  Now: {{ .Transport }}
{{ range .Statuses }}  {{ .Name }}: {{ .Status }}
{{ end }}  {{ .BarRuler }}
  {{ .BeatRuler }}
  {{ .Accents }}
  {{ repeat .Done "-" }}{{ cursor "*" }}{{ repeat .Left " " }}
`

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
)

func NewTerminal(out io.Writer) (*Terminal, error) {
	tmpl, err := newTemplate(true)
	if err != nil {
		return nil, err
	}
	w := uilive.New()
	w.Out = out
	return &Terminal{w: w, tmpl: tmpl}, nil
}

func (t *Terminal) Render(f band.Frame) error {
	if err := t.tmpl.Execute(t.w, newView(f)); err != nil {
		return err
	}
	return t.w.Flush()
}

func NewPlain(out io.Writer) (*Plain, error) {
	tmpl, err := newTemplate(false)
	if err != nil {
		return nil, err
	}
	return &Plain{out: out, tmpl: tmpl}, nil
}

func (p *Plain) Render(f band.Frame) error {
	return p.tmpl.Execute(p.out, newView(f))
}

func newTemplate(styled bool) (*template.Template, error) {
	funcs := sprig.TxtFuncMap()
	if styled {
		funcs["header"] = headerStyle.Render
		funcs["cursor"] = cursorStyle.Render
	} else {
		funcs["header"] = plain
		funcs["cursor"] = plain
	}
	tmpl, err := template.New("frame").Funcs(funcs).Parse(frameTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse the display template")
	}
	return tmpl, nil
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func newView(f band.Frame) view {
	t := f.Transport
	v := view{Frame: f}
	width := t.BeatsPerBar * 4
	var bars, beats, accents strings.Builder
	for b := 1; b <= t.BarsInSection(); b++ {
		fmt.Fprintf(&bars, "%-*s", width, fmt.Sprintf("%dth bar", b))
		for q := 1; q <= t.BeatsPerBar; q++ {
			fmt.Fprintf(&beats, "%-2d. ", q)
			switch {
			case q == 1:
				accents.WriteString("V   ")
			case q%2 == 1:
				accents.WriteString("v   ")
			default:
				accents.WriteString(".   ")
			}
		}
	}
	v.BarRuler = strings.TrimRight(bars.String(), " ")
	v.BeatRuler = beats.String()
	v.Accents = accents.String()
	if v.Done = t.SixteenthInSection() - 1; v.Done < 0 {
		v.Done = 0
	}
	if v.Left = t.SixteenthsInSection() - v.Done - 1; v.Left < 0 {
		v.Left = 0
	}
	return v
}
