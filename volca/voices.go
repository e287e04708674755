package volca

import "github.com/vsariola/jamband/band"

// DrumVoices returns the voices of the kick, hi-hat and snare parts. Each
// part has its own channel and plays its sound at the pitch set by the patch
// whatever the note.
func DrumVoices() band.DrumVoices {
	return band.DrumVoices{
		Kick:  band.Voice{Channel: KickChannel, Note: 60, Velocity: 100},
		HiHat: band.Voice{Channel: HiHatChannel, Note: 60, Velocity: 100},
		Snare: band.Voice{Channel: SnareChannel, Note: 60, Velocity: 100},
	}
}

// KeysVoice returns the voice of a Volca Keys on channel 1.
func KeysVoice() band.KeysVoice {
	return band.KeysVoice{Channel: 0, Program: 1, Velocity: 0x70}
}

// Config returns the default band config with the Volca voices.
func Config() band.Config {
	cfg := band.DefaultConfig()
	cfg.Drums = DrumVoices()
	cfg.Keys = KeysVoice()
	return cfg
}
