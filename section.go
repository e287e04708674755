package jamband

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// SectionKind tags a section with its role in the arrangement. It is just a
// label; all kinds are played the same way.
type SectionKind int

const (
	Intro SectionKind = iota
	Verse
	Chorus
	Bridge
	Outro
)

var sectionKindNames = [...]string{"Intro", "Verse", "Chorus", "Bridge", "Outro"}

func (k SectionKind) String() string {
	if k < 0 || int(k) >= len(sectionKindNames) {
		return "Unknown"
	}
	return sectionKindNames[k]
}

// ParseSectionKind accepts the name of a kind in any letter case, e.g.
// "chorus", "CHORUS" or "Chorus".
func ParseSectionKind(s string) (SectionKind, error) {
	name := cases.Title(language.English).String(strings.TrimSpace(s))
	for i, n := range sectionKindNames {
		if n == name {
			return SectionKind(i), nil
		}
	}
	return 0, errors.Errorf("unknown section kind %q", s)
}

func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *SectionKind) UnmarshalText(text []byte) error {
	v, err := ParseSectionKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k SectionKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *SectionKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return k.UnmarshalText([]byte(s))
}
