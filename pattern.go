package jamband

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

type (
	// DrumPattern is a one bar drum groove written as three step strings, one
	// character per sixteenth: any non-space character is a hit, a space is
	// silence. For example:
	//
	//	hh: "x x x x x x x x "
	//	sn: "    x       x   "
	//	kk: "x       x       "
	//
	// All three strings have the same length, 4 * Quarters.
	DrumPattern struct {
		Key      string `yaml:"key,omitempty" json:"key,omitempty"`
		Quarters int    `yaml:"num_1_4" json:"num_1_4"`
		HiHat    string `yaml:"hh" json:"hh"`
		Snare    string `yaml:"sn" json:"sn"`
		Kick     string `yaml:"kk" json:"kk"`
	}

	// DrumHits tells which drums are hit on one tick.
	DrumHits struct {
		HiHat, Snare, Kick bool
	}

	// KeyboardPattern is a chord progression. The chords cover the sixteenths
	// 1..Span() of the pattern without gaps or overlaps; when a section is
	// longer than the pattern, the pattern starts over from its first bar.
	KeyboardPattern struct {
		Key    string  `yaml:"key,omitempty" json:"key,omitempty"`
		Chords []Chord `yaml:"chords" json:"chords"`
	}

	// Chord is held from sixteenth From to sixteenth To, both inclusive and
	// counted from 1 at the start of the pattern. Notes are note names such
	// as "C#3"; see ParseNote.
	Chord struct {
		Name  string   `yaml:"name" json:"name"`
		From  int      `yaml:"from_1_16th_incl" json:"from_1_16th_incl"`
		To    int      `yaml:"to_1_16th_incl" json:"to_1_16th_incl"`
		Notes []string `yaml:"notes,flow" json:"notes"`
	}
)

// Validate checks that the step strings all have the length implied by
// Quarters.
func (p *DrumPattern) Validate() error {
	if p.Quarters < 1 {
		return errors.Wrapf(ErrMalformedPattern, "num_1_4 should be > 0, got %d", p.Quarters)
	}
	want := p.Quarters * SixteenthsPerQuarter
	for _, s := range []struct{ name, steps string }{{"hh", p.HiHat}, {"sn", p.Snare}, {"kk", p.Kick}} {
		if n := utf8.RuneCountInString(s.steps); n != want {
			return errors.Wrapf(ErrMalformedPattern, "%s has %d steps, expected %d", s.name, n, want)
		}
	}
	return nil
}

// Steps returns the number of sixteenths in the pattern.
func (p *DrumPattern) Steps() int {
	return utf8.RuneCountInString(p.HiHat)
}

// HitsAt returns the hits on the given sixteenth of the bar, counted from 1.
// ok is false if the sixteenth is outside the step strings; then nothing
// should be played.
func (p *DrumPattern) HitsAt(sixteenthInBar int) (hits DrumHits, ok bool) {
	i := sixteenthInBar - 1
	hh, ok1 := step(p.HiHat, i)
	sn, ok2 := step(p.Snare, i)
	kk, ok3 := step(p.Kick, i)
	if !ok1 || !ok2 || !ok3 {
		return DrumHits{}, false
	}
	return DrumHits{HiHat: hh, Snare: sn, Kick: kk}, true
}

// Any is true if at least one drum is hit.
func (h DrumHits) Any() bool {
	return h.HiHat || h.Snare || h.Kick
}

func step(steps string, index int) (hit bool, ok bool) {
	if index < 0 {
		return false, false
	}
	i := 0
	for _, r := range steps {
		if i == index {
			return r != ' ', true
		}
		i++
	}
	return false, false
}

// Validate checks that the chords are not empty, start from sixteenth 1 and
// follow each other without gaps or overlaps, and that all note names are
// valid.
func (p *KeyboardPattern) Validate() error {
	if len(p.Chords) == 0 {
		return errors.Wrap(ErrMalformedPattern, "no chords")
	}
	next := 1
	for i, c := range p.Chords {
		if c.From != next {
			return errors.Wrapf(ErrMalformedPattern, "chord %d (%s) starts at %d, expected %d", i+1, c.Name, c.From, next)
		}
		if c.To < c.From {
			return errors.Wrapf(ErrMalformedPattern, "chord %d (%s) ends at %d before it starts at %d", i+1, c.Name, c.To, c.From)
		}
		if _, err := c.Pitches(); err != nil {
			return errors.Wrapf(ErrMalformedPattern, "chord %d (%s): %v", i+1, c.Name, err)
		}
		next = c.To + 1
	}
	return nil
}

// Span returns the number of sixteenths covered by the chords.
func (p *KeyboardPattern) Span() int {
	if len(p.Chords) == 0 {
		return 0
	}
	return p.Chords[len(p.Chords)-1].To
}

// BarCoverage returns how many bars the pattern lasts before it repeats,
// rounding a partial last bar up.
func (p *KeyboardPattern) BarCoverage(beatsPerBar int) int {
	perBar := beatsPerBar * SixteenthsPerQuarter
	if perBar <= 0 {
		return 0
	}
	return (p.Span() + perBar - 1) / perBar
}

// ChordAt returns the chord sounding on the given sixteenth of a section,
// counted from 1. A pattern shorter than the section wraps around every
// BarCoverage bars, so with a two bar pattern in 4/4 the sixteenths 1 and 33
// give the same chord. ok is false if no chord covers the sixteenth.
func (p *KeyboardPattern) ChordAt(sixteenthInSection, beatsPerBar int) (chord *Chord, ok bool) {
	span := p.BarCoverage(beatsPerBar) * beatsPerBar * SixteenthsPerQuarter
	if span <= 0 || sixteenthInSection < 1 {
		return nil, false
	}
	index := (sixteenthInSection-1)%span + 1
	for i := range p.Chords {
		if c := &p.Chords[i]; c.From <= index && index <= c.To {
			return c, true
		}
	}
	return nil, false
}

// Copy makes a deep copy of a KeyboardPattern.
func (p *KeyboardPattern) Copy() KeyboardPattern {
	chords := make([]Chord, len(p.Chords))
	for i, c := range p.Chords {
		notes := make([]string, len(c.Notes))
		copy(notes, c.Notes)
		chords[i] = Chord{Name: c.Name, From: c.From, To: c.To, Notes: notes}
	}
	return KeyboardPattern{Key: p.Key, Chords: chords}
}

// Pitches decodes the note names of the chord to MIDI note numbers.
func (c *Chord) Pitches() ([]byte, error) {
	ret := make([]byte, 0, len(c.Notes))
	for _, n := range c.Notes {
		p, err := ParseNote(n)
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	return ret, nil
}
