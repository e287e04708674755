package jamband

import (
	"strings"

	"github.com/pkg/errors"
)

type (
	// Composer writes a simple practice song: one verse of the given number of
	// bars in 4/4, the tonic chord held by the keyboard and, if Click is set,
	// the kick drum on every eighth note as a click track.
	Composer struct {
		BPM   int
		Bars  int
		Click bool
		Tonic Tonic
		Mode  Mode
	}

	// Tonic is the key note of the song, counted in semitones from C.
	Tonic int

	// Mode is the tonality mode, major or minor.
	Mode int
)

const (
	Major Mode = iota
	Minor
)

// ClickPattern and TonicPattern are the keys of the patterns generated by
// the Composer.
const (
	ClickPattern = "CLICK"
	TonicPattern = "A"
)

const composerBars = 4

// ParseTonic parses a key note name such as "C", "F#" or "Bb".
func ParseTonic(s string) (Tonic, error) {
	p, err := ParseNote(strings.TrimSpace(s) + "4")
	if err != nil {
		return 0, errors.Errorf("invalid tonic %q", s)
	}
	return Tonic(int(p) % 12), nil
}

// ParseMode parses "major" or "minor" in any letter case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "maj", "":
		return Major, nil
	case "minor", "min":
		return Minor, nil
	}
	return 0, errors.Errorf("invalid mode %q", s)
}

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// Compose returns a new song with a fresh ID.
func (c *Composer) Compose() *Song {
	third := 4
	suffix := ""
	if c.Mode == Minor {
		third = 3
		suffix = "m"
	}
	root := 12*3 + int(c.Tonic) // octave 2
	chordNotes := []string{
		NoteName(byte(root)),
		NoteName(byte(root + 12)),
		NoteName(byte(root + 12 + third)),
		NoteName(byte(root + 12 + 7)),
	}
	song := &Song{
		ID:     NewID(),
		Title:  "Practice in " + sharpNames[c.Tonic%12] + suffix,
		Author: "Composer",
		Tempo:  Tempo{BPM: c.BPM, BeatsPerBar: 4, BeatUnit: 4},
		KeyboardPatterns: map[string]KeyboardPattern{
			TonicPattern: {
				Key: TonicPattern,
				Chords: []Chord{{
					Name:  sharpNames[c.Tonic%12] + suffix,
					From:  1,
					To:    composerBars * 16,
					Notes: chordNotes,
				}},
			},
		},
		Sections: []Section{{
			Kind:            Verse,
			Bars:            c.Bars,
			KeyboardPattern: TonicPattern,
		}},
	}
	if c.Click {
		song.DrumPatterns = map[string]DrumPattern{
			ClickPattern: {
				Key:      ClickPattern,
				Quarters: 4,
				HiHat:    "                ",
				Snare:    "                ",
				Kick:     "x x x x x x x x ",
			},
		}
		song.Sections[0].DrumPattern = ClickPattern
	}
	return song
}
