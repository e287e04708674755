package band

import (
	"log/slog"
	"time"
)

type (
	// Config holds the constants of a band. It is passed by value to the
	// player and the instruments when they are created and never changes
	// after that.
	Config struct {
		// BaseSixteenth is the length of a sixteenth note at DefaultBPM. The
		// length of a tick at any other tempo is scaled from it.
		BaseSixteenth time.Duration
		DefaultBPM    int

		Drums DrumVoices
		Keys  KeysVoice

		// Logger is used by the player and all the musicians. nil means
		// slog.Default().
		Logger *slog.Logger
	}

	// Voice is a MIDI channel (0-15), a note number and a velocity.
	Voice struct {
		Channel  byte `yaml:"channel"`
		Note     byte `yaml:"note"`
		Velocity byte `yaml:"velocity"`
	}

	// DrumVoices maps the three drums of a DrumPattern to MIDI voices.
	DrumVoices struct {
		HiHat Voice `yaml:"hh"`
		Snare Voice `yaml:"sn"`
		Kick  Voice `yaml:"kk"`
	}

	// KeysVoice tells on which channel, with which program and how loud the
	// keyboardist plays its chords.
	KeysVoice struct {
		Channel  byte `yaml:"channel"`
		Program  byte `yaml:"program"`
		Velocity byte `yaml:"velocity"`
	}
)

// DefaultConfig returns a config with a 250 ms sixteenth at 60 BPM and the
// General MIDI percussion map on channel 10.
func DefaultConfig() Config {
	return Config{
		BaseSixteenth: 250 * time.Millisecond,
		DefaultBPM:    60,
		Drums: DrumVoices{
			HiHat: Voice{Channel: 9, Note: 42, Velocity: 100},
			Snare: Voice{Channel: 9, Note: 38, Velocity: 100},
			Kick:  Voice{Channel: 9, Note: 36, Velocity: 100},
		},
		Keys: KeysVoice{Channel: 0, Program: 1, Velocity: 0x70},
	}
}

// TickDuration returns the length of one sixteenth note at the given tempo:
// BaseSixteenth scaled by DefaultBPM / bpm, so a slower tempo gives longer
// ticks.
func (c Config) TickDuration(bpm int) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Duration(int64(c.BaseSixteenth) * int64(c.DefaultBPM) / int64(bpm))
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
