package band

import (
	"time"

	"github.com/vsariola/jamband"
)

// Schedule is the list of moments of a song: the absolute time at which every
// tick has to be played, in song order. It is computed once, before the first
// tick, and never changes. Moment k is start + k * tick, so the distance of
// two consecutive moments is always exactly one tick.
type Schedule struct {
	moments []time.Time
	tick    time.Duration
}

// NewSchedule walks through every section, bar, quarter and sixteenth of the
// song and gives each tick its moment. Sections with less than one bar have
// no ticks.
func NewSchedule(song *jamband.Song, start time.Time, tick time.Duration) *Schedule {
	s := &Schedule{moments: make([]time.Time, 0, song.TotalTicks()), tick: tick}
	for _, sec := range song.Sections {
		for bar := 0; bar < sec.Bars; bar++ {
			for quarter := 0; quarter < song.Tempo.BeatsPerBar; quarter++ {
				for sixteenth := 0; sixteenth < jamband.SixteenthsPerQuarter; sixteenth++ {
					k := len(s.moments)
					s.moments = append(s.moments, start.Add(time.Duration(k)*tick))
				}
			}
		}
	}
	return s
}

// Len returns the number of ticks.
func (s *Schedule) Len() int {
	return len(s.moments)
}

// At returns the moment of tick k, counted from 0.
func (s *Schedule) At(k int) time.Time {
	return s.moments[k]
}

// Tick returns the duration of one tick.
func (s *Schedule) Tick() time.Duration {
	return s.tick
}

// Duration returns the time from the first moment to the end of the last
// tick.
func (s *Schedule) Duration() time.Duration {
	return time.Duration(len(s.moments)) * s.tick
}
