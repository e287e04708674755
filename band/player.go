package band

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
)

type (
	// Player is the conductor of a Band. It owns the transport clock, paces
	// the ticks of the song and broadcasts them to the musicians.
	Player struct {
		cfg     Config
		band    *Band
		clock   Clock
		display Display
		logger  *slog.Logger

		ticks int
		stats PacerStats
	}

	// PlayerOption configures a Player.
	PlayerOption func(*Player)

	// Display shows the progress of a song. It is called on the player's
	// goroutine after a tick has been sent; it only reads the frame and
	// errors are logged, so a display never changes what is played or when.
	Display interface {
		Render(f Frame) error
	}

	// Frame is what a Display shows on one tick: the section being played,
	// the clock and the patterns of the section, computed from the song the
	// same way the instruments do. Statuses are the latest reports of the
	// musicians, which may lag the tick by one.
	Frame struct {
		Title        string
		SectionIndex int
		Section      jamband.Section
		Transport    jamband.Transport
		Drum         *jamband.DrumPattern // nil when the drums rest
		Chord        *jamband.Chord       // nil when the keyboard rests
		Statuses     []Status
	}
)

// WithClock makes the player use another clock than the system clock.
func WithClock(c Clock) PlayerOption {
	return func(p *Player) { p.clock = c }
}

// WithDisplay makes the player render every tick on d.
func WithDisplay(d Display) PlayerOption {
	return func(p *Player) { p.display = d }
}

func NewPlayer(cfg Config, band *Band, opts ...PlayerOption) *Player {
	p := &Player{cfg: cfg, band: band, clock: SystemClock{}, logger: cfg.logger()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Play plays the whole song and returns when every musician has finished.
//
// The song is validated first; an invalid song is not played at all and the
// band is not started. A band that has already played returns
// ErrBandFinished. Otherwise the song is taught to every musician
// before the first tick is sent, all the ticks of the sections with at least
// one bar are played on schedule, and the band is shut down. The returned
// error is the first fatal error of the musicians, if any.
func (p *Player) Play(song *jamband.Song) error {
	if err := song.Validate(); err != nil {
		return errors.WithMessage(err, "cannot play song")
	}
	if err := p.band.Start(); err != nil {
		return err
	}
	broker := p.band.Broker()
	broker.TeachSong(song.ID)

	schedule := NewSchedule(song, p.clock.Now(), p.cfg.TickDuration(song.Tempo.BPM))
	pacer := NewPacer(schedule, p.clock, p.logger)
	p.logger.Info("playing song", "id", song.ID, "title", song.Title, "ticks", schedule.Len(), "tick", schedule.Tick())

	t := jamband.NewTransport(song.Tempo.BeatsPerBar)
	for i, sec := range song.Sections {
		if sec.Bars < 1 {
			p.logger.Debug("skipping empty section", "section", i+1, "kind", sec.Kind)
			continue
		}
		t.StartSection(sec.Bars)
		for k := 0; k < sec.Bars*song.Tempo.SixteenthsPerBar(); k++ {
			pacer.Wait()
			broker.PlayTick(song.ID, t)
			p.ticks++
			if p.display != nil {
				f := NewFrame(song, i, t)
				f.Statuses = p.band.Statuses()
				if err := p.display.Render(f); err != nil {
					p.logger.Warn("display failed", "err", err)
				}
			}
			t.Advance()
		}
	}

	p.band.Shutdown()
	p.stats = pacer.Stats()
	p.logger.Info("song finished", "ticks", p.ticks, "late", p.stats.Late, "max_late", p.stats.MaxLateness)
	if err := p.band.Wait(); err != nil {
		return errors.WithMessagef(err, "band failed playing %q", song.ID)
	}
	return nil
}

// Ticks returns the number of PlayTick commands broadcast so far.
func (p *Player) Ticks() int {
	return p.ticks
}

// Stats returns the timing statistics of the last song played.
func (p *Player) Stats() PacerStats {
	return p.stats
}

// NewFrame projects the song and a transport snapshot on a Frame.
func NewFrame(song *jamband.Song, sectionIndex int, t jamband.Transport) Frame {
	f := Frame{Title: song.Title, SectionIndex: sectionIndex, Transport: t}
	if sectionIndex < 0 || sectionIndex >= len(song.Sections) {
		return f
	}
	f.Section = song.Sections[sectionIndex]
	if key := f.Section.DrumPattern; key != "" {
		if d, err := song.Drums(key); err == nil {
			f.Drum = d
		}
	}
	if key := f.Section.KeyboardPattern; key != "" {
		if k, err := song.Keys(key); err == nil {
			if c, ok := k.ChordAt(t.SixteenthInSection(), t.BeatsPerBar); ok {
				f.Chord = c
			}
		}
	}
	return f
}
