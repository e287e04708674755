package band

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
)

// Keyboardist plays the chords of the keyboard patterns of a song. Like the
// Drummer, it looks up the pattern when a section starts. On every tick it
// finds the chord sounding on that sixteenth of the section, wrapping
// around patterns shorter than the section, and pulses all its notes.
type Keyboardist struct {
	out    jamband.Output
	voice  KeysVoice
	logger *slog.Logger

	cursor  sectionCursor
	pattern *jamband.KeyboardPattern
	chord   *jamband.Chord
	misses  int
}

func NewKeyboardist(out jamband.Output, cfg Config) *Keyboardist {
	return &Keyboardist{out: out, voice: cfg.Keys, logger: cfg.logger().With("instrument", "Keyboard")}
}

func (k *Keyboardist) Name() string { return "Keyboard" }

// Teach selects the program of the keyboard and the pattern of the first
// section.
func (k *Keyboardist) Teach(song *jamband.Song) error {
	k.cursor.reset(song)
	if err := k.out.Send(jamband.Channel(jamband.ProgramChange, k.voice.Channel), k.voice.Program, 0); err != nil {
		k.logger.Warn("could not change program", "program", k.voice.Program, "err", err)
	}
	return k.resolve()
}

func (k *Keyboardist) resolve() error {
	k.pattern, k.chord = nil, nil
	_, sec, ok := k.cursor.section()
	if !ok || sec.KeyboardPattern == "" {
		return nil
	}
	p, err := k.cursor.song.Keys(sec.KeyboardPattern)
	if err != nil {
		return err
	}
	k.pattern = p
	return nil
}

func (k *Keyboardist) RenderTick(t jamband.Transport) error {
	var err error
	if k.pattern != nil {
		chord, ok := k.pattern.ChordAt(t.SixteenthInSection(), t.BeatsPerBar)
		if ok {
			k.chord = chord
			err = k.pulse(chord)
		} else {
			k.misses++
			k.logger.Debug("no chord in keyboard pattern", "pattern", k.pattern.Key, "sixteenth", t.SixteenthInSection())
		}
	}
	if k.cursor.step(t) {
		if rerr := k.resolve(); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (k *Keyboardist) pulse(c *jamband.Chord) error {
	pitches, err := c.Pitches()
	if err != nil {
		return errors.WithMessagef(err, "chord %s", c.Name)
	}
	var first error
	for _, p := range pitches {
		if err := k.out.Send(jamband.Channel(jamband.NoteOn, k.voice.Channel), p, k.voice.Velocity); err != nil && first == nil {
			first = errors.Wrap(err, "note on")
		}
		if err := k.out.Send(jamband.Channel(jamband.NoteOff, k.voice.Channel), p, k.voice.Velocity); err != nil && first == nil {
			first = errors.Wrap(err, "note off")
		}
	}
	return first
}

func (k *Keyboardist) Describe() string {
	if k.chord == nil {
		return ""
	}
	return k.chord.Name + " chord"
}

// Misses returns the number of ticks on which no chord was found.
func (k *Keyboardist) Misses() int { return k.misses }

func (k *Keyboardist) Close() error {
	silence(k.out, k.voice.Channel)
	return k.out.Close()
}
