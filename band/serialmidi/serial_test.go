package serialmidi_test

import (
	"bytes"
	"testing"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band/serialmidi"
)

type fakePort struct {
	bytes.Buffer
	closed bool
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestOutputWritesMessages(t *testing.T) {
	port := &fakePort{}
	out := serialmidi.NewOutput(port, "fake", nil)
	out.Send(jamband.Channel(jamband.NoteOn, 1), 60, 100)
	out.Send(jamband.Channel(jamband.ProgramChange, 0), 3, 0)
	if err := out.Close(); err != nil || !port.closed {
		t.Fatalf("Close failed: %v", err)
	}
	want := []byte{0x91, 60, 100, 0xC0, 3}
	if !bytes.Equal(port.Bytes(), want) {
		t.Fatalf("got %v, expected %v", port.Bytes(), want)
	}
	if err := out.Send(0x90, 1, 1); err == nil {
		t.Fatalf("Send after Close should fail")
	}
	if err := out.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
