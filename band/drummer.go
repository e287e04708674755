package band

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
)

// Drummer plays the drum patterns of a song. The pattern of a section is
// looked up once, when the section starts; on every tick the drummer hits
// the hi-hat, the kick and the snare according to the steps of the pattern.
type Drummer struct {
	out    jamband.Output
	voices DrumVoices
	logger *slog.Logger

	cursor  sectionCursor
	pattern *jamband.DrumPattern
	misses  int
	hits    int
}

func NewDrummer(out jamband.Output, cfg Config) *Drummer {
	return &Drummer{out: out, voices: cfg.Drums, logger: cfg.logger().With("instrument", "Drummer")}
}

func (d *Drummer) Name() string { return "Drummer" }

func (d *Drummer) Teach(song *jamband.Song) error {
	d.cursor.reset(song)
	return d.resolve()
}

func (d *Drummer) resolve() error {
	d.pattern = nil
	_, sec, ok := d.cursor.section()
	if !ok || sec.DrumPattern == "" {
		return nil
	}
	p, err := d.cursor.song.Drums(sec.DrumPattern)
	if err != nil {
		return err
	}
	d.pattern = p
	return nil
}

func (d *Drummer) RenderTick(t jamband.Transport) error {
	var err error
	if d.pattern != nil {
		hits, ok := d.pattern.HitsAt(t.SixteenthInBar())
		if ok {
			err = d.hit(hits)
		} else {
			d.misses++
			d.logger.Debug("no step in drum pattern", "pattern", d.pattern.Key, "sixteenth", t.SixteenthInBar())
		}
	}
	if d.cursor.step(t) {
		if rerr := d.resolve(); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (d *Drummer) hit(h jamband.DrumHits) error {
	var first error
	for _, s := range []struct {
		on    bool
		voice Voice
	}{{h.HiHat, d.voices.HiHat}, {h.Kick, d.voices.Kick}, {h.Snare, d.voices.Snare}} {
		if !s.on {
			continue
		}
		d.hits++
		if err := d.out.Send(jamband.Channel(jamband.NoteOn, s.voice.Channel), s.voice.Note, s.voice.Velocity); err != nil && first == nil {
			first = errors.Wrap(err, "drum hit")
		}
	}
	return first
}

func (d *Drummer) Describe() string {
	if d.pattern == nil {
		return "no drums"
	}
	return fmt.Sprintf("part %q", d.pattern.Key)
}

// Misses returns the number of ticks on which the pattern had no step.
func (d *Drummer) Misses() int { return d.misses }

// Hits returns the number of drum hits sent.
func (d *Drummer) Hits() int { return d.hits }

func (d *Drummer) Close() error {
	silence(d.out, d.voices.HiHat.Channel, d.voices.Snare.Channel, d.voices.Kick.Channel)
	return d.out.Close()
}

// silence sends all notes off once on every distinct channel. Errors are
// ignored as the output is closed right after.
func silence(out jamband.Output, channels ...byte) {
	var sent [16]bool
	for _, ch := range channels {
		ch &= 0x0F
		if sent[ch] {
			continue
		}
		sent[ch] = true
		out.Send(jamband.Channel(jamband.ControlChange, ch), jamband.AllNotesOff, 0)
	}
}
