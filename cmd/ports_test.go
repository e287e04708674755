package cmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/cmd"
)

type countingPorts struct {
	opened, closed int
}

type countingOutput struct {
	jamband.NullOutput
	ports *countingPorts
}

func (c *countingOutput) Close() error {
	c.ports.closed++
	return nil
}

func (p *countingPorts) OutputNames() ([]string, error) { return []string{"a"}, nil }
func (p *countingPorts) Close() error                   { return nil }

func (p *countingPorts) Open(name string) (jamband.Output, error) {
	p.opened++
	return &countingOutput{ports: p}, nil
}

func keys(s string) cmd.KeyReader {
	r := strings.NewReader(s)
	return func() (rune, error) {
		c, _, err := r.ReadRune()
		return c, err
	}
}

func TestChoosePreferred(t *testing.T) {
	names := []string{"VOLCA DRUM", "VOLCA KEYS"}
	for preferred, want := range map[string]string{"1": "VOLCA KEYS", "keys": "keys", "0": "VOLCA DRUM"} {
		got, err := cmd.Choose(names, preferred, &bytes.Buffer{}, keys(""))
		if err != nil || got != want {
			t.Fatalf("Choose(%q) = %q, %v, expected %q", preferred, got, err, want)
		}
	}
}

func TestChooseOnlyPort(t *testing.T) {
	var w bytes.Buffer
	got, err := cmd.Choose([]string{"USB MIDI"}, "5", &w, keys(""))
	if err != nil || got != "USB MIDI" {
		t.Fatalf("got %q, %v", got, err)
	}
	if !strings.Contains(w.String(), "only available") {
		t.Fatalf("unexpected output %q", w.String())
	}
}

func TestChooseAsks(t *testing.T) {
	var w bytes.Buffer
	got, err := cmd.Choose([]string{"a", "b", "c"}, "", &w, keys("x92"))
	if err != nil || got != "c" {
		t.Fatalf("got %q, %v, expected c", got, err)
	}
	if strings.Count(w.String(), "Please select") != 3 {
		t.Fatalf("expected three prompts, got %q", w.String())
	}
}

func TestChooseNothing(t *testing.T) {
	if _, err := cmd.Choose(nil, "", &bytes.Buffer{}, keys("")); !errors.Is(err, cmd.ErrNoPorts) {
		t.Fatalf("expected ErrNoPorts, got %v", err)
	}
	if _, err := cmd.Choose([]string{"a", "b"}, "", &bytes.Buffer{}, keys("")); err == nil {
		t.Fatalf("expected an error when input ends")
	}
}

func TestNullPorts(t *testing.T) {
	var p cmd.NullPorts
	names, _ := p.OutputNames()
	out, err := p.Open(names[0])
	if err != nil || out.Send(0x90, 1, 1) != nil {
		t.Fatalf("null port failed: %v", err)
	}
}

func TestSharedPorts(t *testing.T) {
	inner := &countingPorts{}
	p := cmd.Share(inner)
	a, _ := p.Open("a")
	b, _ := p.Open("a")
	if inner.opened != 1 {
		t.Fatalf("port opened %v times, expected once", inner.opened)
	}
	a.Close()
	a.Close()
	if inner.closed != 0 {
		t.Fatalf("port closed while still in use")
	}
	b.Close()
	if inner.closed != 1 {
		t.Fatalf("port closed %v times, expected once", inner.closed)
	}
	p.Open("a")
	if inner.opened != 2 {
		t.Fatalf("port should be reopened after closing")
	}
}
