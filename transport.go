package jamband

import "fmt"

// Transport is the musical clock: the current global bar, quarter and
// sixteenth (all counted from 1) and the window of bars of the current
// section. The player owns one Transport and mutates it; as Transport is a
// plain value, every copy sent to an instrument is an independent snapshot.
type Transport struct {
	Bar             int
	Quarter         int
	Sixteenth       int
	SectionFirstBar int
	SectionLastBar  int
	BeatsPerBar     int
}

// NewTransport returns a clock at the very first tick of a song.
func NewTransport(beatsPerBar int) Transport {
	return Transport{Bar: 1, Quarter: 1, Sixteenth: 1, BeatsPerBar: beatsPerBar}
}

// Advance moves the clock forward by one sixteenth, carrying over to the
// next quarter and the next bar.
func (t *Transport) Advance() {
	t.Sixteenth++
	if t.Sixteenth > SixteenthsPerQuarter {
		t.Sixteenth = 1
		t.Quarter++
	}
	if t.Quarter > t.BeatsPerBar {
		t.Quarter = 1
		t.Bar++
	}
}

// StartSection sets the section window to start from the current bar and
// last for the given number of bars. It should be called once per section,
// before the first tick of the section is played.
func (t *Transport) StartSection(bars int) {
	t.SectionFirstBar = t.Bar
	t.SectionLastBar = t.SectionFirstBar + bars - 1
}

// BarInSection returns the bar within the current section, counted from 1.
func (t Transport) BarInSection() int {
	return t.Bar - t.SectionFirstBar + 1
}

// BarsInSection returns the length of the current section in bars.
func (t Transport) BarsInSection() int {
	return t.SectionLastBar - t.SectionFirstBar + 1
}

// SixteenthInBar returns the sixteenth within the current bar, counted from
// 1.
func (t Transport) SixteenthInBar() int {
	return (t.Quarter-1)*SixteenthsPerQuarter + t.Sixteenth
}

// SixteenthInSection returns the sixteenth within the current section,
// counted from 1.
func (t Transport) SixteenthInSection() int {
	return (t.BarInSection()-1)*t.sixteenthsPerBar() + t.SixteenthInBar()
}

// SixteenthsInSection returns the length of the current section in ticks.
func (t Transport) SixteenthsInSection() int {
	return t.BarsInSection() * t.sixteenthsPerBar()
}

// IsLastTickOfSection is true on the final sixteenth of the section. It must
// be asked before Advance, on the tick that is being played: this is the
// only place where the instruments switch to the patterns of the next
// section.
func (t Transport) IsLastTickOfSection() bool {
	return t.Bar == t.SectionLastBar && t.Quarter == t.BeatsPerBar && t.Sixteenth == SixteenthsPerQuarter
}

func (t Transport) sixteenthsPerBar() int {
	return t.BeatsPerBar * SixteenthsPerQuarter
}

func (t Transport) String() string {
	return fmt.Sprintf("%dth of %d bars in section / %d.%d / %dth global bar",
		t.BarInSection(), t.BarsInSection(), t.Quarter, t.Sixteenth, t.Bar)
}
