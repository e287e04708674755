// Package band plays a jamband.Song in real time.
//
// A Player owns the transport clock and paces the ticks of the song against a
// precomputed schedule of absolute deadlines. On every tick it broadcasts a
// snapshot of the clock through the Broker to the musicians of a Band. Each
// Musician runs its Instrument on its own goroutine and is reached only
// through its Mailbox; nothing else is shared between the player and the
// musicians.
//
// The life of a band is:
//
//	b := band.NewBand(cfg, []*jamband.Song{song}, drummer, keyboardist)
//	err := band.NewPlayer(cfg, b).Play(song)
//
// Play starts the band if it was not started yet, teaches the song to every
// musician, plays all its ticks, shuts the band down and waits for the
// musicians to finish. A Band can play only once; playing it again returns
// ErrBandFinished.
package band
