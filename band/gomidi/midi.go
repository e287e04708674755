//go:build cgo

// Package gomidi sends the messages of the instruments to MIDI output ports
// through rtmidi.
package gomidi

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	// Driver opens rtmidi output ports by name. Several instruments may use
	// the same port; the port is opened once and its sends are serialized.
	Driver struct {
		mu     sync.Mutex
		drv    *rtmididrv.Driver
		ports  map[string]*port
		logger *slog.Logger
	}

	// Output is a jamband.Output on an rtmidi port.
	Output struct {
		driver *Driver
		port   *port
		closed bool
	}

	port struct {
		mu   sync.Mutex
		out  drivers.Out
		send func(midi.Message) error
		refs int
	}
)

// ExcludedPatterns are the virtual and system ports that are never listed
// nor opened.
var ExcludedPatterns = []string{"Midi Through", "Through Port", "Dummy"}

func NewDriver(logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, errors.Wrap(err, "rtmididrv")
	}
	return &Driver{drv: drv, ports: map[string]*port{}, logger: logger}, nil
}

// OutputNames lists the names of the output ports, excluding the ones
// matching ExcludedPatterns.
func (d *Driver) OutputNames() ([]string, error) {
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, errors.Wrap(err, "could not list MIDI outputs")
	}
	var names []string
	for _, out := range outs {
		name := out.String()
		if excluded(name) {
			d.logger.Debug("midi: output excluded", "device", name)
			continue
		}
		names = append(names, name)
	}
	d.logger.Debug("midi: outputs found", "count", len(names), "devices", strings.Join(names, ", "))
	return names, nil
}

// Open opens the first output port whose name contains pattern, ignoring
// case.
func (d *Driver) Open(pattern string) (*Output, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	outs, err := d.drv.Outs()
	if err != nil {
		return nil, errors.Wrap(err, "could not list MIDI outputs")
	}
	var found drivers.Out
	for _, out := range outs {
		if !excluded(out.String()) && containsCI(out.String(), pattern) {
			found = out
			break
		}
	}
	if found == nil {
		return nil, errors.Errorf("no MIDI output matches %q", pattern)
	}
	name := found.String()
	p, ok := d.ports[name]
	if !ok {
		if err := found.Open(); err != nil {
			return nil, errors.Wrapf(err, "open %q", name)
		}
		send, err := midi.SendTo(found)
		if err != nil {
			found.Close()
			return nil, errors.Wrapf(err, "send to %q", name)
		}
		p = &port{out: found, send: send}
		d.ports[name] = p
		d.logger.Info("midi: output opened", "device", name)
	}
	p.refs++
	return &Output{driver: d, port: p}, nil
}

// Close closes all the ports still open and the driver.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for name, p := range d.ports {
		p.out.Close()
		delete(d.ports, name)
	}
	return d.drv.Close()
}

func (o *Output) Send(status, data1, data2 byte) error {
	o.port.mu.Lock()
	defer o.port.mu.Unlock()
	if o.closed {
		return errors.New("MIDI output is closed")
	}
	return o.port.send(midi.Message(jamband.Encode(status, data1, data2)))
}

// Close releases the port; the port itself is closed when its last Output
// is.
func (o *Output) Close() error {
	o.driver.mu.Lock()
	defer o.driver.mu.Unlock()
	o.port.mu.Lock()
	defer o.port.mu.Unlock()
	if o.closed {
		return nil
	}
	o.closed = true
	o.port.refs--
	if o.port.refs > 0 {
		return nil
	}
	name := o.port.out.String()
	delete(o.driver.ports, name)
	o.driver.logger.Info("midi: output closed", "device", name)
	return o.port.out.Close()
}

func (o *Output) String() string {
	return o.port.out.String()
}

func excluded(name string) bool {
	for _, pat := range ExcludedPatterns {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
