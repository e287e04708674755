package jamband

import (
	"github.com/pkg/errors"
)

type (
	// Song is everything the band needs to know to play a piece: the tempo,
	// the drum and keyboard patterns by key and the arrangement as an ordered
	// list of sections. A Song is not modified once playback starts; every
	// instrument gets its own Copy of it.
	//
	// ID is an opaque identity. The player teaches the instruments the song
	// by its ID and every tick is tagged with it, so an instrument can refuse
	// to play a song it was never given.
	Song struct {
		ID               string                     `yaml:"id,omitempty" json:"id,omitempty"`
		Title            string                     `yaml:"title,omitempty" json:"title,omitempty"`
		Author           string                     `yaml:"author,omitempty" json:"author,omitempty"`
		Tempo            Tempo                      `yaml:"tempo" json:"tempo"`
		DrumPatterns     map[string]DrumPattern     `yaml:"drum_patterns,omitempty" json:"drum_patterns,omitempty"`
		KeyboardPatterns map[string]KeyboardPattern `yaml:"keyboard_patterns,omitempty" json:"keyboard_patterns,omitempty"`
		Sections         []Section                  `yaml:"sections" json:"sections"`
	}

	// Tempo sets how fast the song is played. BPM counts quarter notes per
	// minute. Every quarter is always divided into four sixteenths, so a bar
	// is 4 * BeatsPerBar ticks long. BeatUnit is informative only.
	Tempo struct {
		BPM         int `yaml:"bpm" json:"bpm"`
		BeatsPerBar int `yaml:"beats_per_bar" json:"beats_per_bar"`
		BeatUnit    int `yaml:"beat_unit,omitempty" json:"beat_unit,omitempty"`
	}

	// Section is a contiguous run of bars sharing one drum pattern and one
	// keyboard pattern. An empty pattern key means that the instrument rests
	// during the section. Sections with Bars < 1 are skipped when playing.
	Section struct {
		Kind            SectionKind `yaml:"kind" json:"kind"`
		Bars            int         `yaml:"bars" json:"bars"`
		DrumPattern     string      `yaml:"drum_pattern,omitempty" json:"drum_pattern,omitempty"`
		KeyboardPattern string      `yaml:"keyboard_pattern,omitempty" json:"keyboard_pattern,omitempty"`
		Notes           string      `yaml:"notes,omitempty" json:"notes,omitempty"`
	}
)

const (
	MinBPM = 0   // exclusive
	MaxBPM = 600 // exclusive

	// SixteenthsPerQuarter is fixed: the tick is always a sixteenth note.
	SixteenthsPerQuarter = 4
)

var (
	ErrNoSections       = errors.New("song has no sections")
	ErrUnknownPattern   = errors.New("unknown pattern")
	ErrMalformedPattern = errors.New("malformed pattern")
	ErrInvalidTempo     = errors.New("invalid tempo")
)

// SixteenthsPerBar returns the number of ticks in one bar.
func (t Tempo) SixteenthsPerBar() int {
	return t.BeatsPerBar * SixteenthsPerQuarter
}

// Validate checks the song once, before anything is played: the tempo is
// in range, there is at least one section, every pattern key used by a
// section resolves and every pattern is well-formed. All the errors are
// fatal configuration errors.
func (s *Song) Validate() error {
	if s.Tempo.BPM <= MinBPM || s.Tempo.BPM >= MaxBPM {
		return errors.Wrapf(ErrInvalidTempo, "bpm %d is not between %d and %d", s.Tempo.BPM, MinBPM, MaxBPM)
	}
	if s.Tempo.BeatsPerBar < 1 {
		return errors.Wrapf(ErrInvalidTempo, "beats per bar should be > 0, got %d", s.Tempo.BeatsPerBar)
	}
	if len(s.Sections) == 0 {
		return ErrNoSections
	}
	for key, p := range s.DrumPatterns {
		if p.Key != "" && p.Key != key {
			return errors.Wrapf(ErrMalformedPattern, "drum pattern stored as %q has key %q", key, p.Key)
		}
		if err := p.Validate(); err != nil {
			return errors.WithMessagef(err, "drum pattern %q", key)
		}
	}
	for key, p := range s.KeyboardPatterns {
		if p.Key != "" && p.Key != key {
			return errors.Wrapf(ErrMalformedPattern, "keyboard pattern stored as %q has key %q", key, p.Key)
		}
		if err := p.Validate(); err != nil {
			return errors.WithMessagef(err, "keyboard pattern %q", key)
		}
	}
	for i, sec := range s.Sections {
		if sec.DrumPattern != "" {
			if _, err := s.Drums(sec.DrumPattern); err != nil {
				return errors.WithMessagef(err, "section %d (%v)", i+1, sec.Kind)
			}
		}
		if sec.KeyboardPattern != "" {
			if _, err := s.Keys(sec.KeyboardPattern); err != nil {
				return errors.WithMessagef(err, "section %d (%v)", i+1, sec.Kind)
			}
		}
	}
	return nil
}

// Drums looks up a drum pattern by its key.
func (s *Song) Drums(key string) (*DrumPattern, error) {
	p, ok := s.DrumPatterns[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "drum pattern %q not found", key)
	}
	p.Key = key
	return &p, nil
}

// Keys looks up a keyboard pattern by its key.
func (s *Song) Keys(key string) (*KeyboardPattern, error) {
	p, ok := s.KeyboardPatterns[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "keyboard pattern %q not found", key)
	}
	p.Key = key
	return &p, nil
}

// PlayableSections returns the indices of the sections that are actually
// played, i.e. the ones with at least one bar, in song order.
func (s *Song) PlayableSections() []int {
	ret := make([]int, 0, len(s.Sections))
	for i, sec := range s.Sections {
		if sec.Bars >= 1 {
			ret = append(ret, i)
		}
	}
	return ret
}

// TotalTicks returns the number of sixteenth ticks in the whole song.
func (s *Song) TotalTicks() int {
	ret := 0
	for _, sec := range s.Sections {
		if sec.Bars >= 1 {
			ret += sec.Bars * s.Tempo.SixteenthsPerBar()
		}
	}
	return ret
}

// Copy makes a deep copy of a Song.
func (s *Song) Copy() *Song {
	drums := make(map[string]DrumPattern, len(s.DrumPatterns))
	for k, p := range s.DrumPatterns {
		drums[k] = p
	}
	keys := make(map[string]KeyboardPattern, len(s.KeyboardPatterns))
	for k, p := range s.KeyboardPatterns {
		keys[k] = p.Copy()
	}
	sections := make([]Section, len(s.Sections))
	copy(sections, s.Sections)
	return &Song{
		ID:               s.ID,
		Title:            s.Title,
		Author:           s.Author,
		Tempo:            s.Tempo,
		DrumPatterns:     drums,
		KeyboardPatterns: keys,
		Sections:         sections,
	}
}
