package band

import "github.com/vsariola/jamband"

// sectionCursor follows the played sections of a song from inside an
// instrument. It starts at the first section with at least one bar and moves
// to the next such section after the last tick of the current one.
type sectionCursor struct {
	song     *jamband.Song
	playable []int
	pos      int
}

func (c *sectionCursor) reset(song *jamband.Song) {
	c.song = song
	c.playable = song.PlayableSections()
	c.pos = 0
}

// section returns the current section, or ok = false after the last one.
func (c *sectionCursor) section() (index int, sec jamband.Section, ok bool) {
	if c.song == nil || c.pos >= len(c.playable) {
		return -1, jamband.Section{}, false
	}
	index = c.playable[c.pos]
	return index, c.song.Sections[index], true
}

// step moves the cursor on if t is the last tick of the section and reports
// whether it did.
func (c *sectionCursor) step(t jamband.Transport) bool {
	if !t.IsLastTickOfSection() {
		return false
	}
	c.pos++
	return true
}
