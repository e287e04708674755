package main

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/cmd"
)

type closingPorts struct {
	cmd.NullPorts
	closed bool
}

func (p *closingPorts) Open(name string) (jamband.Output, error) {
	return nil, errors.Errorf("cannot open %q", name)
}

func (p *closingPorts) Close() error {
	p.closed = true
	return nil
}

func usePorts(t *testing.T, p cmd.Ports) {
	t.Helper()
	old := openPorts
	openPorts = func(string, int) (cmd.Ports, error) { return p, nil }
	t.Cleanup(func() { openPorts = old })
}

func composed() options {
	return options{bpm: 500, bars: 1, click: true, tonic: "A", mode: "minor", outKind: "null", display: "off"}
}

func TestRunReleasesPortsOnError(t *testing.T) {
	p := &closingPorts{}
	usePorts(t, p)
	if err := run(composed()); err == nil {
		t.Fatalf("expected an error when no output opens")
	}
	if !p.closed {
		t.Fatalf("ports were not closed after the error")
	}
}

func TestRunPlaysComposedSong(t *testing.T) {
	usePorts(t, cmd.NullPorts{})
	if err := run(composed()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	for name, o := range map[string]options{
		"tonic":  {bpm: 100, bars: 1, tonic: "H", outKind: "null", display: "off"},
		"voices": {bpm: 100, bars: 1, tonic: "C", voices: "missing.yml", outKind: "null", display: "off"},
		"song":   {song: "missing.yml", outKind: "null", display: "off"},
	} {
		if err := run(o); err == nil {
			t.Fatalf("%v: expected an error", name)
		}
	}
}
