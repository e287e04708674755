package band

import (
	"log/slog"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"golang.org/x/sync/errgroup"
)

type (
	// Instrument turns ticks of a song into messages on its own output.
	// Instruments are driven by a Musician and are never called from more
	// than one goroutine.
	Instrument interface {
		Name() string
		// Teach prepares the instrument to play the song from its first
		// section.
		Teach(song *jamband.Song) error
		// RenderTick plays one tick of the taught song.
		RenderTick(t jamband.Transport) error
		// Describe returns a short status, e.g. the current pattern.
		Describe() string
		// Close silences the instrument and releases its output.
		Close() error
	}

	// Musician runs an Instrument on its own goroutine, feeding it the
	// commands of its mailbox in order. The musician knows a fixed
	// repertoire of songs, each its own copy, and can only be taught those.
	//
	// A musician starts untaught. TeachSong binds it to a song of its
	// repertoire; PlayTick is only accepted for the bound song. Shutdown ends
	// the musician in any state.
	Musician struct {
		instrument Instrument
		mailbox    *Mailbox
		repertoire map[string]*jamband.Song
		logger     *slog.Logger
		name       string

		taught   *jamband.Song
		played   atomic.Int64
		failures atomic.Int64
		status   atomic.Value // string
	}

	// Status is what an instrument last reported about itself.
	Status struct {
		Name   string
		Status string
	}

	// Band is a group of musicians, each with its mailbox in a shared Broker.
	Band struct {
		broker    *Broker
		musicians []*Musician
		group     errgroup.Group
		started   bool
		finished  bool
		logger    *slog.Logger
	}
)

var (
	// ErrUnknownSong is returned by a musician asked to learn a song that is
	// not in its repertoire.
	ErrUnknownSong = errors.New("unknown song")
	// ErrSongMismatch is returned by a musician asked to play a tick of a
	// song it was not taught.
	ErrSongMismatch = errors.New("song mismatch")
	// ErrBandFinished is returned when a band that has already played is
	// asked to play again.
	ErrBandFinished = errors.New("band has already played")
)

// NewMusician creates a musician for the instrument. The musician keeps a
// copy of every song of the repertoire.
func NewMusician(instrument Instrument, mailbox *Mailbox, repertoire []*jamband.Song, logger *slog.Logger) *Musician {
	if logger == nil {
		logger = slog.Default()
	}
	songs := make(map[string]*jamband.Song, len(repertoire))
	for _, s := range repertoire {
		songs[s.ID] = s.Copy()
	}
	m := &Musician{
		instrument: instrument,
		mailbox:    mailbox,
		repertoire: songs,
		logger:     logger.With("instrument", instrument.Name()),
		name:       instrument.Name(),
	}
	m.status.Store("")
	return m
}

// Run consumes the mailbox until Shutdown or a fatal error. Failing to learn
// or being asked to play a wrong song is fatal; failing to send a message to
// the output is only logged. Before returning, Run closes the mailbox and the
// instrument.
func (m *Musician) Run() (err error) {
	defer func() {
		m.mailbox.Close()
		if cerr := m.instrument.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "%s: could not close the output", m.instrument.Name())
		}
		if err != nil {
			m.logger.Error("musician quit", "err", err)
			return
		}
		attrs := []any{"ticks", m.played.Load(), "failures", m.failures.Load()}
		if c, ok := m.instrument.(interface{ Misses() int }); ok {
			attrs = append(attrs, "misses", c.Misses())
		}
		m.logger.Info("musician done", attrs...)
	}()
	for {
		switch c := m.mailbox.Receive().(type) {
		case TeachSong:
			song, ok := m.repertoire[c.SongID]
			if !ok {
				return errors.Wrapf(ErrUnknownSong, "%s does not know the song %q", m.instrument.Name(), c.SongID)
			}
			if err := m.instrument.Teach(song); err != nil {
				return errors.WithMessagef(err, "%s could not learn the song %q", m.instrument.Name(), c.SongID)
			}
			m.taught = song
			m.status.Store(m.instrument.Describe())
			m.logger.Debug("learned song", "song", song.ID, "title", song.Title)
		case PlayTick:
			if m.taught == nil {
				return errors.Wrapf(ErrSongMismatch, "%s was asked to play %q before learning any song", m.instrument.Name(), c.SongID)
			}
			if c.SongID != m.taught.ID {
				return errors.Wrapf(ErrSongMismatch, "%s was asked to play %q but knows %q", m.instrument.Name(), c.SongID, m.taught.ID)
			}
			if err := m.instrument.RenderTick(c.Transport); err != nil {
				m.failures.Add(1)
				m.logger.Warn("could not play tick", "transport", c.Transport.String(), "err", err)
			}
			m.status.Store(m.instrument.Describe())
			m.played.Add(1)
		case Shutdown:
			return nil
		}
	}
}

// Played returns the number of ticks the musician has played.
func (m *Musician) Played() int {
	return int(m.played.Load())
}

// Failures returns the number of ticks that could not be sent completely.
func (m *Musician) Failures() int {
	return int(m.failures.Load())
}

func (m *Musician) Instrument() Instrument {
	return m.instrument
}

// Status returns what the instrument reported after the last command it
// handled. It is safe to call from any goroutine.
func (m *Musician) Status() Status {
	return Status{Name: m.name, Status: m.status.Load().(string)}
}

// NewBand creates a musician for every instrument, each knowing the songs of
// the repertoire.
func NewBand(cfg Config, repertoire []*jamband.Song, instruments ...Instrument) *Band {
	b := &Band{broker: NewBroker(), logger: cfg.logger()}
	for _, inst := range instruments {
		b.musicians = append(b.musicians, NewMusician(inst, b.broker.Add(), repertoire, b.logger))
	}
	return b
}

// Start launches the goroutines of the musicians. Calling Start twice does
// nothing. Starting a band that has been shut down returns ErrBandFinished.
func (b *Band) Start() error {
	if b.finished {
		return ErrBandFinished
	}
	if b.started {
		return nil
	}
	b.started = true
	for _, m := range b.musicians {
		b.group.Go(m.Run)
	}
	return nil
}

// Shutdown asks every musician to stop. The band cannot be started again.
func (b *Band) Shutdown() {
	b.finished = true
	b.broker.Shutdown()
}

// Wait blocks until every musician has returned, and returns the first fatal
// error of them. All the errors are logged by the musicians themselves.
func (b *Band) Wait() error {
	return b.group.Wait()
}

func (b *Band) Broker() *Broker {
	return b.broker
}

func (b *Band) Musicians() []*Musician {
	return b.musicians
}

// Statuses returns the last status of every musician, in band order.
func (b *Band) Statuses() []Status {
	ret := make([]Status, len(b.musicians))
	for i, m := range b.musicians {
		ret[i] = m.Status()
	}
	return ret
}
