// Package serialmidi sends the messages of the instruments over a serial
// line, e.g. to a microcontroller driving a MIDI DIN socket.
package serialmidi

import (
	"io"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"go.bug.st/serial"
)

// BaudRate is the MIDI DIN baud rate.
const BaudRate = 31250

// Output writes the bytes of every message to a serial port.
type Output struct {
	mu     sync.Mutex
	port   io.WriteCloser
	name   string
	logger *slog.Logger
}

// Ports lists the serial ports of the system.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "could not list serial ports")
	}
	return ports, nil
}

// Open opens the named serial device at the given baud rate; 0 means
// BaudRate.
func Open(device string, baud int, logger *slog.Logger) (*Output, error) {
	if baud == 0 {
		baud = BaudRate
	}
	p, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Wrapf(err, "serial: could not open %s at %d baud", device, baud)
	}
	o := NewOutput(p, device, logger)
	o.logger.Info("serial: port opened", "device", device, "baud", baud)
	return o, nil
}

// NewOutput makes an Output of any writer.
func NewOutput(port io.WriteCloser, name string, logger *slog.Logger) *Output {
	if logger == nil {
		logger = slog.Default()
	}
	return &Output{port: port, name: name, logger: logger}
}

func (o *Output) Send(status, data1, data2 byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.port == nil {
		return errors.Errorf("serial: %s is closed", o.name)
	}
	if _, err := o.port.Write(jamband.Encode(status, data1, data2)); err != nil {
		return errors.Wrapf(err, "serial: write to %s", o.name)
	}
	return nil
}

func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.port == nil {
		return nil
	}
	o.logger.Info("serial: closing port", "device", o.name)
	err := o.port.Close()
	o.port = nil
	return err
}
