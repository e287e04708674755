package band_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band"
)

func runMusician(t *testing.T, repertoire []*jamband.Song, out *recordingOutput, cmds ...band.Command) (*band.Musician, *band.Mailbox, error) {
	t.Helper()
	mailbox := band.NewMailbox()
	m := band.NewMusician(band.NewDrummer(out, band.DefaultConfig()), mailbox, repertoire, nil)
	for _, c := range cmds {
		mailbox.Push(c)
	}
	return m, mailbox, m.Run()
}

func TestMusicianRefusesOtherSong(t *testing.T) {
	out := &recordingOutput{}
	s1, s2 := grooveSong("S1", 1), grooveSong("S2", 1)
	tr := jamband.NewTransport(4)
	tr.StartSection(1)
	m, mailbox, err := runMusician(t, []*jamband.Song{s1, s2}, out,
		band.TeachSong{SongID: "S1"},
		band.PlayTick{SongID: "S2", Transport: tr},
		band.PlayTick{SongID: "S1", Transport: tr},
		band.Shutdown{},
	)
	if !errors.Is(err, band.ErrSongMismatch) {
		t.Fatalf("expected ErrSongMismatch, got %v", err)
	}
	if n := len(out.noteOns()); n != 0 {
		t.Fatalf("musician fired %v notes after the mismatch", n)
	}
	if m.Played() != 0 {
		t.Fatalf("musician played %v ticks", m.Played())
	}
	if !out.closed {
		t.Fatalf("output was not released")
	}
	if mailbox.Push(band.Shutdown{}) {
		t.Fatalf("mailbox of a stopped musician still accepts commands")
	}
}

func TestMusicianRefusesTickBeforeTeach(t *testing.T) {
	out := &recordingOutput{}
	_, _, err := runMusician(t, []*jamband.Song{grooveSong("S1", 1)}, out,
		band.PlayTick{SongID: "S1", Transport: jamband.NewTransport(4)},
	)
	if !errors.Is(err, band.ErrSongMismatch) {
		t.Fatalf("expected ErrSongMismatch, got %v", err)
	}
}

func TestMusicianRefusesUnknownSong(t *testing.T) {
	out := &recordingOutput{}
	_, _, err := runMusician(t, []*jamband.Song{grooveSong("S1", 1)}, out,
		band.TeachSong{SongID: "S1"},
		band.TeachSong{SongID: "S3"},
	)
	if !errors.Is(err, band.ErrUnknownSong) {
		t.Fatalf("expected ErrUnknownSong, got %v", err)
	}
}

func TestMusicianStopsOnShutdown(t *testing.T) {
	out := &recordingOutput{}
	tr := jamband.NewTransport(4)
	tr.StartSection(1)
	m, _, err := runMusician(t, []*jamband.Song{grooveSong("S1", 1)}, out,
		band.TeachSong{SongID: "S1"},
		band.PlayTick{SongID: "S1", Transport: tr},
		band.Shutdown{},
		band.PlayTick{SongID: "S1", Transport: tr},
	)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if m.Played() != 1 {
		t.Fatalf("musician played %v ticks, expected 1", m.Played())
	}
	msgs := out.take()
	last := msgs[len(msgs)-1]
	if last.status&0xF0 != jamband.ControlChange || last.data1 != jamband.AllNotesOff {
		t.Fatalf("expected all notes off before closing, got %+v", last)
	}
}

func TestMusicianOwnsItsCopy(t *testing.T) {
	song := grooveSong("S1", 1)
	out := &recordingOutput{}
	mailbox := band.NewMailbox()
	m := band.NewMusician(band.NewDrummer(out, band.DefaultConfig()), mailbox, []*jamband.Song{song}, nil)
	song.DrumPatterns[drumGroove] = jamband.DrumPattern{Quarters: 4, HiHat: "                ", Snare: "                ", Kick: "                "}
	tr := jamband.NewTransport(4)
	tr.StartSection(1)
	mailbox.Push(band.TeachSong{SongID: "S1"})
	mailbox.Push(band.PlayTick{SongID: "S1", Transport: tr})
	mailbox.Push(band.Shutdown{})
	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if n := len(out.noteOns()); n != 2 {
		t.Fatalf("expected hi-hat and kick from the original song, got %v notes", n)
	}
}

func TestMusicianReportsStatusAndMisses(t *testing.T) {
	song := grooveSong("S1", 1)
	song.DrumPatterns[drumGroove] = jamband.DrumPattern{Quarters: 2, HiHat: "xxxxxxxx", Snare: "        ", Kick: "        "}
	var log bytes.Buffer
	mailbox := band.NewMailbox()
	m := band.NewMusician(band.NewDrummer(&recordingOutput{}, band.DefaultConfig()), mailbox, []*jamband.Song{song}, slog.New(slog.NewTextHandler(&log, nil)))
	if got := m.Status(); got != (band.Status{Name: "Drummer"}) {
		t.Fatalf("untaught musician reports %+v", got)
	}
	mailbox.Push(band.TeachSong{SongID: "S1"})
	tr := jamband.NewTransport(4)
	tr.StartSection(1)
	for i := 0; i < 16; i++ {
		mailbox.Push(band.PlayTick{SongID: "S1", Transport: tr})
		tr.Advance()
	}
	mailbox.Push(band.Shutdown{})
	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Status().Status; got != "no drums" {
		t.Fatalf("after the last section the musician reports %q", got)
	}
	if !strings.Contains(log.String(), "musician done") || !strings.Contains(log.String(), "misses=8") {
		t.Fatalf("misses not logged:\n%s", log.String())
	}
}
