package display_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band"
	"github.com/vsariola/jamband/band/display"
)

func frame() band.Frame {
	tr := jamband.NewTransport(4)
	tr.StartSection(2)
	for i := 0; i < 18; i++ {
		tr.Advance()
	}
	return band.Frame{
		Title:        "Rock practice",
		SectionIndex: 1,
		Section:      jamband.Section{Kind: jamband.Chorus, Bars: 2},
		Transport:    tr,
		Drum:         &jamband.DrumPattern{Key: "ROCK"},
		Chord:        &jamband.Chord{Name: "Am"},
		Statuses: []band.Status{
			{Name: "Drummer", Status: `part "ROCK"`},
			{Name: "Keyboard", Status: "Am chord"},
		},
	}
}

func TestPlainRender(t *testing.T) {
	var buf bytes.Buffer
	d, err := display.NewPlain(&buf)
	if err != nil {
		t.Fatalf("NewPlain failed: %v", err)
	}
	if err := d.Render(frame()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := []string{
		"  .:[ Chorus ]:. Rock practice",
		"  Now: 2th of 2 bars in section / 1.3 / 2th global bar",
		`  Drummer: part "ROCK"`,
		"  Keyboard: Am chord",
		"  1th bar         2th bar",
		"  1 . 2 . 3 . 4 . 1 . 2 . 3 . 4 . ",
		"  V   .   v   .   V   .   v   .   ",
		"  ------------------*             ",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(got) != len(expected) {
		t.Fatalf("got %v lines, expected %v:\n%s", len(got), len(expected), buf.String())
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("line %v: got %q, expected %q", i, got[i], expected[i])
		}
	}
}

func TestPlainRenderResting(t *testing.T) {
	var buf bytes.Buffer
	d, _ := display.NewPlain(&buf)
	f := frame()
	f.Drum, f.Chord = nil, nil
	f.Statuses = []band.Status{{Name: "Drummer", Status: "no drums"}}
	if err := d.Render(f); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  Drummer: no drums\n  1th bar") {
		t.Fatalf("resting drummer not shown:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Keyboard") {
		t.Fatalf("only the reported instruments should be shown:\n%s", buf.String())
	}
}

func TestTerminalRender(t *testing.T) {
	var buf bytes.Buffer
	d, err := display.NewTerminal(&buf)
	if err != nil {
		t.Fatalf("NewTerminal failed: %v", err)
	}
	if err := d.Render(frame()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Now: 2th of 2 bars in section") {
		t.Fatalf("frame not written:\n%q", buf.String())
	}
}
