//go:build !cgo

package cmd

import (
	"log/slog"

	"github.com/pkg/errors"
)

func NewMidiPorts(logger *slog.Logger) (Ports, error) {
	// rtmidi needs cgo; only the serial and null outputs are left
	return nil, errors.New("MIDI ports are not available in builds without cgo")
}
