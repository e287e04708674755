package jamband_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vsariola/jamband"
)

type countingOutput struct {
	sent   int
	closed bool
}

func (c *countingOutput) Send(status, data1, data2 byte) error { c.sent++; return nil }
func (c *countingOutput) Close() error                         { c.closed = true; return nil }

func TestLogOutput(t *testing.T) {
	var buf bytes.Buffer
	inner := &countingOutput{}
	out := &jamband.LogOutput{
		Output: inner,
		Name:   "volca",
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	if err := out.Send(jamband.Channel(jamband.NoteOn, 2), 60, 100); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := out.Close(); err != nil || !inner.closed || inner.sent != 1 {
		t.Fatalf("LogOutput did not forward to the wrapped output")
	}
	line := buf.String()
	for _, want := range []string{"output=volca", "0x92", "0b10010010", "146"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q does not contain %q", line, want)
		}
	}
}

func TestChannel(t *testing.T) {
	if got := jamband.Channel(jamband.ControlChange, 0x1A); got != 0xBA {
		t.Fatalf("Channel = %#x, expected 0xba", got)
	}
}

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		status, data1, data2 byte
		want                 []byte
	}{
		{0x90, 60, 100, []byte{0x90, 60, 100}},
		{0xC3, 5, 0, []byte{0xC3, 5}},
		{0xB0, 0xFF, 0x80, []byte{0xB0, 0x7F, 0x00}},
	} {
		if got := jamband.Encode(tc.status, tc.data1, tc.data2); !bytes.Equal(got, tc.want) {
			t.Fatalf("Encode(%#x, %v, %v) = %v, expected %v", tc.status, tc.data1, tc.data2, got, tc.want)
		}
	}
}
