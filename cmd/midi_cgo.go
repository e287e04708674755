//go:build cgo

package cmd

import (
	"log/slog"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band/gomidi"
)

type midiPorts struct {
	*gomidi.Driver
}

func NewMidiPorts(logger *slog.Logger) (Ports, error) {
	drv, err := gomidi.NewDriver(logger)
	if err != nil {
		return nil, err
	}
	return midiPorts{drv}, nil
}

func (m midiPorts) Open(name string) (jamband.Output, error) {
	return m.Driver.Open(name)
}
