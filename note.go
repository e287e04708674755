package jamband

import (
	"fmt"

	"github.com/pkg/errors"
)

// semitones of the natural notes, counted from C
var noteLetters = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// ParseNote decodes a note name into a MIDI note number. A note name is a
// pitch letter A-G, an optional accidental ('#' sharp or 'b' flat) and a
// single octave digit 0-9, e.g. "C3", "F#2" or "Bb4". Middle C is "C4" = 60,
// so "C3" = 48.
func ParseNote(name string) (byte, error) {
	if len(name) < 2 || len(name) > 3 {
		return 0, errors.Errorf("invalid note name %q", name)
	}
	semitone, ok := noteLetters[name[0]]
	if !ok {
		return 0, errors.Errorf("invalid note letter in %q", name)
	}
	if len(name) == 3 {
		switch name[1] {
		case '#':
			semitone++
		case 'b':
			semitone--
		default:
			return 0, errors.Errorf("invalid accidental in %q", name)
		}
	}
	octave := name[len(name)-1]
	if octave < '0' || octave > '9' {
		return 0, errors.Errorf("invalid octave in %q", name)
	}
	pitch := 12*(int(octave-'0')+1) + semitone
	if pitch < 0 || pitch > 127 {
		return 0, errors.Errorf("note %q is out of MIDI range", name)
	}
	return byte(pitch), nil
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName is the inverse of ParseNote, preferring sharps.
func NoteName(pitch byte) string {
	return fmt.Sprintf("%s%d", sharpNames[pitch%12], int(pitch)/12-1)
}
