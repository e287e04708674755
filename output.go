package jamband

import (
	"fmt"
	"log/slog"
)

type (
	// Output is the lowest level hardware capability an instrument worker
	// needs: a best-effort three byte MIDI style message (status byte and two
	// data bytes) and a way to release the underlying port. There is no
	// acknowledgement; Send returning nil only means the bytes were handed over
	// to the driver.
	Output interface {
		Send(status, data1, data2 byte) error
		Close() error
	}

	// NullOutput discards everything. It is used when no hardware is
	// available, e.g. for dry runs.
	NullOutput struct{}

	// LogOutput wraps another Output and logs every message it sends at the
	// debug level, in decimal, hexadecimal and binary.
	LogOutput struct {
		Output Output
		Name   string
		Logger *slog.Logger
	}
)

// MIDI status nibbles used by the instruments.
const (
	NoteOff       byte = 0x80
	NoteOn        byte = 0x90
	ControlChange byte = 0xB0
	ProgramChange byte = 0xC0
)

// AllNotesOff is the channel mode controller that silences a channel.
const AllNotesOff byte = 123

func (NullOutput) Send(status, data1, data2 byte) error { return nil }
func (NullOutput) Close() error                         { return nil }

func (o *LogOutput) Send(status, data1, data2 byte) error {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Debug("send",
		"output", o.Name,
		"dec", []int{int(status), int(data1), int(data2)},
		"hex", []string{hex(status), hex(data1), hex(data2)},
		"bin", []string{bin(status), bin(data1), bin(data2)},
	)
	if o.Output == nil {
		return nil
	}
	return o.Output.Send(status, data1, data2)
}

func (o *LogOutput) Close() error {
	if o.Output == nil {
		return nil
	}
	return o.Output.Close()
}

// Channel returns the status byte for the given message kind on channel ch
// (0-15).
func Channel(kind, ch byte) byte {
	return kind&0xF0 | ch&0x0F
}

// Encode returns the bytes of a message as they go on the wire. Program
// change and channel pressure carry only one data byte; data bytes are
// masked to seven bits.
func Encode(status, data1, data2 byte) []byte {
	switch status & 0xF0 {
	case ProgramChange, 0xD0:
		return []byte{status, data1 & 0x7F}
	}
	return []byte{status, data1 & 0x7F, data2 & 0x7F}
}

func hex(b byte) string { return fmt.Sprintf("%#04x", b) }
func bin(b byte) string { return fmt.Sprintf("%#010b", b) }
