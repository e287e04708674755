// Package volca knows the Korg Volca Drum and Volca Keys: their voices and
// how to set the drum sounds with control change messages.
package volca

import (
	"io"

	"github.com/pkg/errors"
	"github.com/vsariola/jamband"
	"gopkg.in/yaml.v3"
)

type (
	// Patch sets the sounds of the six parts of the Volca Drum. Kick, HiHat
	// and Snare are the parts played by the drummer; the other three are
	// optional.
	Patch struct {
		Kick   Layer  `yaml:"kick"`
		HiHat  Layer  `yaml:"hh"`
		Snare  Layer  `yaml:"snare"`
		Sound4 *Layer `yaml:"sound4,omitempty"`
		Sound5 *Layer `yaml:"sound5,omitempty"`
		Sound6 *Layer `yaml:"sound6,omitempty"`
	}

	// Layer is the first layer of a part. The parameters go from 0 to 127.
	Layer struct {
		Source     Source     `yaml:"sound_src_type"`
		Modulation Modulation `yaml:"mod_type"`
		AmpEG      AmpEG      `yaml:"amp_eg"`
		Level      int        `yaml:"level"`
		Pitch      int        `yaml:"pitch"`
		EGAttack   int        `yaml:"eg_attack"`
		EGRelease  int        `yaml:"eg_release"`
		ModAmount  int        `yaml:"mod_amount"`
		ModRate    int        `yaml:"mod_rate"`
	}

	Source     int
	Modulation int
	AmpEG      int
)

const (
	WaveSine Source = iota
	WaveSaw
	WaveNoiseHPF
	WaveNoiseLPF
	WaveNoiseBPF
)

const (
	ModExp Modulation = iota
	ModTri
	ModRand
)

const (
	EnvAD AmpEG = iota
	EnvExp
	EnvMul
)

// MIDI channels of the parts.
const (
	KickChannel  byte = 0
	HiHatChannel byte = 1
	SnareChannel byte = 2
)

// Control change numbers. The sound source, the modulation type and the
// amplitude envelope of layer 1 all share one controller; the value range
// tells them apart.
const (
	ccLayer1Sound byte = 14
	ccLevel1      byte = 17
	ccLevel2      byte = 18
	ccEGAttack1   byte = 20
	ccEGRelease1  byte = 23
	ccPitch1      byte = 26
	ccModAmount1  byte = 29
	ccModRate1    byte = 46
)

var (
	sourceNames     = []string{"WaveSine", "WaveSaw", "WaveNoiseHPF", "WaveNoiseLPF", "WaveNoiseBPF"}
	sourceValues    = []byte{24, 50, 76, 101, 127}
	modulationNames = []string{"ModExp", "ModTri", "ModRand"}
	modulationValue = []byte{109, 118, 127}
	ampEGNames      = []string{"EnvAd", "EnvExp", "EnvMul"}
	ampEGValues     = []byte{121, 124, 127}
)

// ReadPatch reads and validates a patch in YAML.
func ReadPatch(r io.Reader) (*Patch, error) {
	var p Patch
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "could not parse patch")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Patch) Validate() error {
	for _, part := range p.parts() {
		if part.layer == nil {
			continue
		}
		if err := part.layer.Validate(); err != nil {
			return errors.WithMessagef(err, "part on channel %d", part.channel+1)
		}
	}
	return nil
}

// Apply sends the patch to the Volca. Layer 2 of every configured part is
// muted.
func (p *Patch) Apply(out jamband.Output) error {
	for _, part := range p.parts() {
		if part.layer == nil {
			continue
		}
		if err := part.layer.apply(out, part.channel); err != nil {
			return err
		}
	}
	return nil
}

type part struct {
	channel byte
	layer   *Layer
}

func (p *Patch) parts() []part {
	return []part{
		{KickChannel, &p.Kick},
		{HiHatChannel, &p.HiHat},
		{SnareChannel, &p.Snare},
		{3, p.Sound4},
		{4, p.Sound5},
		{5, p.Sound6},
	}
}

func (l *Layer) Validate() error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"level", l.Level}, {"pitch", l.Pitch}, {"eg_attack", l.EGAttack},
		{"eg_release", l.EGRelease}, {"mod_amount", l.ModAmount}, {"mod_rate", l.ModRate},
	} {
		if v.value < 0 || v.value > 127 {
			return errors.Errorf("%s should be between 0 and 127, got %d", v.name, v.value)
		}
	}
	if !in(int(l.Source), len(sourceValues)) || !in(int(l.Modulation), len(modulationValue)) || !in(int(l.AmpEG), len(ampEGValues)) {
		return errors.New("unknown sound type")
	}
	return nil
}

func (l *Layer) apply(out jamband.Output, ch byte) error {
	cc := jamband.Channel(jamband.ControlChange, ch)
	for _, m := range [][2]byte{
		{ccLayer1Sound, sourceValues[l.Source]},
		{ccLayer1Sound, modulationValue[l.Modulation]},
		{ccLayer1Sound, ampEGValues[l.AmpEG]},
		{ccLevel1, byte(l.Level)},
		{ccPitch1, byte(l.Pitch)},
		{ccEGAttack1, byte(l.EGAttack)},
		{ccEGRelease1, byte(l.EGRelease)},
		{ccModAmount1, byte(l.ModAmount)},
		{ccModRate1, byte(l.ModRate)},
		{ccLevel2, 0},
	} {
		if err := out.Send(cc, m[0]&0x7F, m[1]&0x7F); err != nil {
			return errors.Wrapf(err, "volca: cc %d on channel %d", m[0], ch+1)
		}
	}
	return nil
}

func (s Source) String() string     { return name(sourceNames, int(s)) }
func (m Modulation) String() string { return name(modulationNames, int(m)) }
func (a AmpEG) String() string      { return name(ampEGNames, int(a)) }

func (s Source) MarshalYAML() (interface{}, error)     { return s.String(), nil }
func (m Modulation) MarshalYAML() (interface{}, error) { return m.String(), nil }
func (a AmpEG) MarshalYAML() (interface{}, error)      { return a.String(), nil }

func (s *Source) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookup(value, sourceNames)
	*s = Source(i)
	return err
}

func (m *Modulation) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookup(value, modulationNames)
	*m = Modulation(i)
	return err
}

func (a *AmpEG) UnmarshalYAML(value *yaml.Node) error {
	i, err := lookup(value, ampEGNames)
	*a = AmpEG(i)
	return err
}

func in(i, n int) bool { return i >= 0 && i < n }

func name(names []string, i int) string {
	if !in(i, len(names)) {
		return "Unknown"
	}
	return names[i]
}

func lookup(value *yaml.Node, names []string) (int, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, errors.Errorf("line %d: %q is not one of %v", value.Line, s, names)
}
