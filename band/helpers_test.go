package band_test

import (
	"sync"
	"time"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// Work simulates time spent between two waits.
func (c *fakeClock) Work(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type message struct {
	status, data1, data2 byte
}

type recordingOutput struct {
	mu     sync.Mutex
	msgs   []message
	closed bool
}

func (o *recordingOutput) Send(status, data1, data2 byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, message{status, data1, data2})
	return nil
}

func (o *recordingOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

func (o *recordingOutput) take() []message {
	o.mu.Lock()
	defer o.mu.Unlock()
	ret := o.msgs
	o.msgs = nil
	return ret
}

func (o *recordingOutput) noteOns() []message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var ret []message
	for _, m := range o.msgs {
		if m.status&0xF0 == jamband.NoteOn {
			ret = append(ret, m)
		}
	}
	return ret
}

// recordingInstrument remembers everything it was asked to do.
type recordingInstrument struct {
	mu     sync.Mutex
	name   string
	taught []string
	ticks  []jamband.Transport
	events []string
	closed bool
}

func newRecordingInstrument(name string) *recordingInstrument {
	return &recordingInstrument{name: name}
}

func (r *recordingInstrument) Name() string { return r.name }

func (r *recordingInstrument) Teach(song *jamband.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taught = append(r.taught, song.ID)
	r.events = append(r.events, "teach")
	return nil
}

func (r *recordingInstrument) RenderTick(t jamband.Transport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, t)
	r.events = append(r.events, "tick")
	return nil
}

func (r *recordingInstrument) Describe() string { return r.name }

func (r *recordingInstrument) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

type recordingDisplay struct {
	frames []band.Frame
}

func (d *recordingDisplay) Render(f band.Frame) error {
	d.frames = append(d.frames, f)
	return nil
}

const drumGroove = "GROOVE"

func grooveSong(id string, bars ...int) *jamband.Song {
	song := &jamband.Song{
		ID:    id,
		Title: "Groove",
		Tempo: jamband.Tempo{BPM: 120, BeatsPerBar: 4, BeatUnit: 4},
		DrumPatterns: map[string]jamband.DrumPattern{
			drumGroove: {
				Quarters: 4,
				HiHat:    "x x x x x x x x ",
				Snare:    "    x       x   ",
				Kick:     "x       x       ",
			},
		},
	}
	for _, b := range bars {
		song.Sections = append(song.Sections, jamband.Section{Kind: jamband.Verse, Bars: b, DrumPattern: drumGroove})
	}
	return song
}
