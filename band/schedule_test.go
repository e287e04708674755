package band_test

import (
	"testing"
	"time"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band"
)

func TestTickDuration(t *testing.T) {
	cfg := band.DefaultConfig()
	for _, tc := range []struct {
		bpm  int
		want time.Duration
	}{
		{60, 250 * time.Millisecond},
		{120, 125 * time.Millisecond},
		{30, 500 * time.Millisecond},
		{100, 150 * time.Millisecond},
	} {
		if got := cfg.TickDuration(tc.bpm); got != tc.want {
			t.Fatalf("TickDuration(%v) = %v, expected %v", tc.bpm, got, tc.want)
		}
	}
}

func TestScheduleSpacingIsExact(t *testing.T) {
	song := &jamband.Song{
		ID:    "S1",
		Tempo: jamband.Tempo{BPM: 7, BeatsPerBar: 3},
		Sections: []jamband.Section{
			{Kind: jamband.Intro, Bars: 2},
			{Kind: jamband.Verse, Bars: 0},
			{Kind: jamband.Chorus, Bars: 5},
			{Kind: jamband.Outro, Bars: -1},
		},
	}
	tick := band.DefaultConfig().TickDuration(song.Tempo.BPM)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := band.NewSchedule(song, start, tick)
	if s.Len() != 7*3*4 {
		t.Fatalf("schedule has %v moments, expected %v", s.Len(), 7*3*4)
	}
	if s.Len() != song.TotalTicks() {
		t.Fatalf("schedule has %v moments, song has %v ticks", s.Len(), song.TotalTicks())
	}
	if !s.At(0).Equal(start) {
		t.Fatalf("first moment is %v, expected %v", s.At(0), start)
	}
	for k := 0; k+1 < s.Len(); k++ {
		if d := s.At(k + 1).Sub(s.At(k)); d != tick {
			t.Fatalf("moments %v and %v are %v apart, expected %v", k, k+1, d, tick)
		}
	}
	if d := s.At(s.Len() - 1).Sub(start); d != time.Duration(s.Len()-1)*tick {
		t.Fatalf("last moment is %v after start, expected %v", d, time.Duration(s.Len()-1)*tick)
	}
}
