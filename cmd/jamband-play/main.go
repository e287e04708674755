package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vsariola/jamband"
	"github.com/vsariola/jamband/band"
	"github.com/vsariola/jamband/band/display"
	"github.com/vsariola/jamband/cmd"
	"github.com/vsariola/jamband/version"
	"github.com/vsariola/jamband/volca"
)

// logger is replaced by initLogger once the flags are parsed.
var logger = slog.Default()

// voicesFile overrides the voices of the instruments.
type voicesFile struct {
	Drums band.DrumVoices `yaml:"drums"`
	Keys  band.KeysVoice  `yaml:"keys"`
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

// options are the parsed command line flags.
type options struct {
	song        string
	debug       bool
	bpm, bars   int
	click       bool
	tonic, mode string
	dump        bool
	outKind     string
	baud        int
	drumPort    string
	keysPort    string
	patchFile   string
	voices      string
	gm          bool
	display     string
}

func main() {
	var o options
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.BoolVar(&o.debug, "debug", false, "Log every message sent to the instruments.")
	flag.IntVar(&o.bpm, "bpm", 50, "Tempo of the composed song.")
	flag.IntVar(&o.bars, "bars", 10, "Length of the composed song in bars.")
	flag.BoolVar(&o.click, "click", true, "Play a click track on the kick drum in the composed song.")
	flag.StringVar(&o.tonic, "tonic", "C", "Key note of the composed song.")
	flag.StringVar(&o.mode, "mode", "major", "Mode of the composed song: major or minor.")
	flag.BoolVar(&o.dump, "dump", false, "Write the song to standard output as .yml and exit.")
	flag.StringVar(&o.outKind, "out", "midi", "Kind of the output ports: midi, serial or null.")
	flag.IntVar(&o.baud, "baud", 0, "Baud rate of the serial ports. 0 means the MIDI baud rate.")
	flag.StringVar(&o.drumPort, "drums", "1", "Output port of the drummer: a name or an index. Asked when not found.")
	flag.StringVar(&o.keysPort, "keys", "0", "Output port of the keyboardist: a name or an index. Asked when not found.")
	flag.StringVar(&o.patchFile, "patch", "", "Volca Drum patch (.yml) sent before playing.")
	flag.StringVar(&o.voices, "voices", "", "File (.yml) overriding the voices of the instruments.")
	flag.BoolVar(&o.gm, "gm", false, "Use General MIDI voices instead of the Volca ones.")
	flag.StringVar(&o.display, "display", "auto", "Show the progress: on, off or auto (on when writing to a terminal).")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help || flag.NArg() > 1 {
		flag.Usage()
		os.Exit(0)
	}
	o.song = flag.Arg(0)
	initLogger(o.debug)
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	var song *jamband.Song
	var err error
	if o.song != "" {
		song, err = readSong(o.song)
	} else {
		song, err = compose(o.bpm, o.bars, o.click, o.tonic, o.mode)
	}
	if err != nil {
		return err
	}
	if o.dump {
		return errors.WithMessage(jamband.WriteSong(os.Stdout, song), "could not write the song")
	}

	cfg := volca.Config()
	if o.gm {
		cfg = band.DefaultConfig()
	}
	if o.voices != "" {
		if err := readVoices(o.voices, &cfg); err != nil {
			return err
		}
	}
	cfg.Logger = logger

	var opts []band.PlayerOption
	if showDisplay(o.display) {
		d, err := display.NewTerminal(os.Stdout)
		if err != nil {
			return errors.WithMessage(err, "could not create the display")
		}
		opts = append(opts, band.WithDisplay(d))
	}

	ports, err := openPorts(o.outKind, o.baud)
	if err != nil {
		return err
	}
	defer ports.Close()
	drumOut, err := openOutput(ports, o.drumPort)
	if err != nil {
		return errors.WithMessage(err, "could not open the drummer output")
	}
	keysOut, err := openOutput(ports, o.keysPort)
	if err != nil {
		drumOut.Close()
		return errors.WithMessage(err, "could not open the keyboardist output")
	}
	if o.patchFile != "" {
		if err := applyPatch(o.patchFile, drumOut); err != nil {
			logger.Warn("patch not applied", "file", o.patchFile, "err", err)
		}
	}

	b := band.NewBand(cfg, []*jamband.Song{song}, band.NewDrummer(drumOut, cfg), band.NewKeyboardist(keysOut, cfg))
	logger.Info("jamband starting", "version", version.VersionOrHash, "song", song.Title, "bpm", song.Tempo.BPM, "out", o.outKind)
	return band.NewPlayer(cfg, b, opts...).Play(song)
}

func readSong(filename string) (*jamband.Song, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read file %v", filename)
	}
	defer f.Close()
	song, err := jamband.ReadSong(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "could not load %v", filename)
	}
	return song, nil
}

func compose(bpm, bars int, click bool, tonic, mode string) (*jamband.Song, error) {
	t, err := jamband.ParseTonic(tonic)
	if err != nil {
		return nil, err
	}
	m, err := jamband.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	c := jamband.Composer{BPM: bpm, Bars: bars, Click: click, Tonic: t, Mode: m}
	song := c.Compose()
	if err := song.Validate(); err != nil {
		return nil, errors.WithMessage(err, "could not compose a song")
	}
	return song, nil
}

func readVoices(filename string, cfg *band.Config) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "could not read file %v", filename)
	}
	v := voicesFile{Drums: cfg.Drums, Keys: cfg.Keys}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return errors.Wrapf(err, "could not parse voices %v", filename)
	}
	cfg.Drums, cfg.Keys = v.Drums, v.Keys
	return nil
}

func applyPatch(filename string, out jamband.Output) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	patch, err := volca.ReadPatch(f)
	if err != nil {
		return err
	}
	return patch.Apply(out)
}

var openPorts = func(kind string, baud int) (cmd.Ports, error) {
	switch kind {
	case "midi":
		return cmd.NewMidiPorts(logger)
	case "serial":
		return cmd.NewSerialPorts(baud, logger), nil
	case "null":
		return cmd.NullPorts{}, nil
	}
	return nil, errors.Errorf("unknown output kind %q", kind)
}

func openOutput(ports cmd.Ports, preferred string) (jamband.Output, error) {
	names, err := ports.OutputNames()
	if err != nil {
		return nil, err
	}
	name, err := cmd.Choose(names, preferred, os.Stdout, readKey)
	if err != nil {
		return nil, err
	}
	out, err := ports.Open(name)
	if err != nil {
		return nil, err
	}
	return &jamband.LogOutput{Output: out, Name: name, Logger: logger}, nil
}

func readKey() (rune, error) {
	r, key, err := keyboard.GetSingleKey()
	if err != nil {
		return 0, err
	}
	if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
		return 0, errors.New("cancelled")
	}
	return r, nil
}

func showDisplay(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Jamband plays a song on a drum machine and a keyboard over MIDI.\nWith no song file, a practice song is composed from the flags.\nUsage: %s [flags] [song.yml]\n", os.Args[0])
	flag.PrintDefaults()
}
