package band

import (
	"log/slog"
	"time"
)

type (
	// Clock is the source of time for the pacer.
	Clock interface {
		Now() time.Time
		Sleep(d time.Duration)
	}

	// SystemClock is the wall clock.
	SystemClock struct{}

	// Pacer walks through a Schedule one tick at a time, blocking until the
	// moment of each tick. The moments are absolute, so the time spent between
	// two calls of Wait does not add up into drift. When a moment has already
	// passed, Wait returns at once: ticks are played late rather than dropped.
	Pacer struct {
		schedule *Schedule
		clock    Clock
		logger   *slog.Logger
		next     int
		stats    PacerStats
	}

	// PacerStats tells how many ticks the pacer has waited for, how many of
	// them were already late and by how much the latest one was late.
	PacerStats struct {
		Ticks       int
		Late        int
		MaxLateness time.Duration
	}
)

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

func NewPacer(schedule *Schedule, clock Clock, logger *slog.Logger) *Pacer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pacer{schedule: schedule, clock: clock, logger: logger}
}

// Wait blocks until the moment of the next tick and returns the index of the
// tick. ok is false when all the ticks of the schedule have been used.
func (p *Pacer) Wait() (tick int, ok bool) {
	if p.next >= p.schedule.Len() {
		return p.next, false
	}
	tick = p.next
	p.next++
	p.stats.Ticks++
	remaining := p.schedule.At(tick).Sub(p.clock.Now())
	if remaining > 0 {
		p.clock.Sleep(remaining)
		return tick, true
	}
	if late := -remaining; late > 0 {
		p.stats.Late++
		if late > p.stats.MaxLateness {
			p.stats.MaxLateness = late
		}
		p.logger.Debug("tick is late", "tick", tick, "late", late)
	}
	return tick, true
}

// Remaining returns the number of ticks not waited for yet.
func (p *Pacer) Remaining() int {
	return p.schedule.Len() - p.next
}

func (p *Pacer) Stats() PacerStats {
	return p.stats
}
