// Package cmd has the helpers shared by the command line tools: opening the
// output ports and choosing between them.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band/serialmidi"
)

type (
	// Ports lists and opens the outputs of one kind.
	Ports interface {
		OutputNames() ([]string, error)
		Open(name string) (jamband.Output, error)
		Close() error
	}

	// NullPorts has a single port that discards everything.
	NullPorts struct{}

	serialPorts struct {
		baud   int
		logger *slog.Logger
	}

	sharedPorts struct {
		Ports
		mu   sync.Mutex
		outs map[string]*sharedOutput
	}

	sharedOutput struct {
		jamband.Output
		ports *sharedPorts
		name  string
		refs  int
	}

	sharedRef struct {
		*sharedOutput
		once sync.Once
	}

	// KeyReader reads a single key press.
	KeyReader func() (rune, error)
)

// NullPortName is the only port of NullPorts.
const NullPortName = "null"

// ErrNoPorts is returned by Choose when there is nothing to choose from.
var ErrNoPorts = errors.New("no output port found")

func (NullPorts) OutputNames() ([]string, error)           { return []string{NullPortName}, nil }
func (NullPorts) Open(name string) (jamband.Output, error) { return jamband.NullOutput{}, nil }
func (NullPorts) Close() error                             { return nil }

// NewSerialPorts returns the serial ports of the system at the given baud
// rate. A device opened twice is shared.
func NewSerialPorts(baud int, logger *slog.Logger) Ports {
	return Share(serialPorts{baud: baud, logger: logger})
}

// Share opens every port of p at most once; the port is closed when all
// the outputs opened on it are.
func Share(p Ports) Ports {
	return &sharedPorts{Ports: p, outs: map[string]*sharedOutput{}}
}

func (s *sharedPorts) Open(name string) (jamband.Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.outs[name]
	if !ok {
		out, err := s.Ports.Open(name)
		if err != nil {
			return nil, err
		}
		o = &sharedOutput{Output: out, ports: s, name: name}
		s.outs[name] = o
	}
	o.refs++
	return &sharedRef{sharedOutput: o}, nil
}

func (r *sharedRef) Close() error {
	var err error
	r.once.Do(func() {
		s := r.ports
		s.mu.Lock()
		defer s.mu.Unlock()
		r.refs--
		if r.refs > 0 {
			return
		}
		delete(s.outs, r.name)
		err = r.Output.Close()
	})
	return err
}

func (s serialPorts) OutputNames() ([]string, error) { return serialmidi.Ports() }
func (s serialPorts) Close() error                   { return nil }

func (s serialPorts) Open(name string) (jamband.Output, error) {
	return serialmidi.Open(name, s.baud, s.logger)
}

// Choose picks one of the port names. A non-empty preferred name is used
// as is. A preferred index within range picks that port. Otherwise the only
// port is picked, or the ports are listed on w and the user picks one by
// pressing its number.
func Choose(names []string, preferred string, w io.Writer, readKey KeyReader) (string, error) {
	if preferred != "" {
		if i, err := strconv.Atoi(preferred); err == nil {
			if i >= 0 && i < len(names) {
				return names[i], nil
			}
		} else {
			return preferred, nil
		}
	}
	switch len(names) {
	case 0:
		return "", ErrNoPorts
	case 1:
		fmt.Fprintf(w, "Choosing the only available output port: %s\n", names[0])
		return names[0], nil
	}
	fmt.Fprintln(w, "Available output ports:")
	for i, n := range names {
		fmt.Fprintf(w, "%d: %s\n", i, n)
	}
	for {
		fmt.Fprint(w, "Please select output port: ")
		r, err := readKey()
		if err != nil {
			return "", errors.Wrap(err, "could not read the port")
		}
		fmt.Fprintf(w, "%c\n", r)
		if i := int(r - '0'); i >= 0 && i < len(names) && i < 10 {
			return names[i], nil
		}
		fmt.Fprintf(w, "%q is not a port\n", r)
	}
}
