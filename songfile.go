package jamband

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReadSong reads a song in .yml or .json format, gives it a fresh ID if the
// file did not have one, and validates it.
func ReadSong(r io.Reader) (*Song, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read song")
	}
	var song Song
	if errJSON := json.Unmarshal(b, &song); errJSON != nil {
		song = Song{}
		if errYaml := yaml.Unmarshal(b, &song); errYaml != nil {
			return nil, errors.Errorf("the song could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if song.ID == "" {
		song.ID = NewID()
	}
	if song.Tempo.BeatsPerBar == 0 {
		song.Tempo.BeatsPerBar = 4
	}
	if song.Tempo.BeatUnit == 0 {
		song.Tempo.BeatUnit = 4
	}
	if err := song.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid song")
	}
	return &song, nil
}

// WriteSong writes the song as YAML.
func WriteSong(w io.Writer, song *Song) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(song); err != nil {
		return errors.Wrap(err, "could not marshal song")
	}
	return enc.Close()
}

// NewID returns a new random song ID.
func NewID() string {
	return uuid.New().String()
}
