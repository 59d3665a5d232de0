package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

type colorMode string
type colorModes []colorMode

var colorAuto colorMode = "auto"
var colorAlways colorMode = "always"
var colorNever colorMode = "never"
var allColorModes = colorModes{colorAuto, colorAlways, colorNever}

func (cs colorModes) String() string {
	result := make([]string, len(cs))
	for i, c := range cs {
		result[i] = string(c)
	}
	return strings.Join(result, ", ")
}

func (c colorMode) String() string {
	return string(c)
}

func (c *colorMode) Set(s string) error {
	for _, m := range allColorModes {
		if m.String() == s {
			*c = m
			return nil
		}
	}
	return fmt.Errorf("unknown color mode %q, expected one of %s", s, allColorModes)
}

// debugEnv turns on debug output without passing -debug.
const debugEnv = "SIM8086_DEBUG"

// stdinName reads the machine code from standard input.
const stdinName = "-"

type Config struct {
	Files         []string
	Listing       bool
	HeaderComment bool
	Jobs          int
	Debug         bool
	Color         colorMode
}

var errNoFiles = errors.New("expected at least one object file")

func isObjFile(filename string) bool {
	return filename != "" && !strings.HasSuffix(filename, ".asm")
}

// ParseArgs reads the command line (without the program name).
// Usage is written to output when the arguments are rejected.
func ParseArgs(args []string, output io.Writer) (Config, error) {
	cfg := Config{Color: colorAuto}

	fs := flag.NewFlagSet("sim8086", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: sim8086 [flags] FILE...\n\nDisassembles 8086 MOV machine code compiled with nasm. Use - to read stdin.\n\n")
		fs.PrintDefaults()
	}
	fs.BoolVar(&cfg.Listing, "listing", false, "print offsets and machine code next to every instruction")
	fs.BoolVar(&cfg.HeaderComment, "header-comment", false, "start the output with a '; <file>' comment")
	fs.IntVar(&cfg.Jobs, "jobs", runtime.NumCPU(), "how many files to decode at the same time")
	fs.BoolVar(&cfg.Debug, "debug", os.Getenv(debugEnv) == "1", "dump every decoded instruction to stderr (also "+debugEnv+"=1)")
	fs.Var(&cfg.Color, "color", "highlight listing offsets: "+allColorModes.String())

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Files = fs.Args()
	if len(cfg.Files) == 0 {
		fs.Usage()
		return Config{}, errNoFiles
	}
	stdinCount := 0
	for _, filename := range cfg.Files {
		if filename == stdinName {
			stdinCount++
		}
		if filename != stdinName && !isObjFile(filename) {
			fs.Usage()
			return Config{}, fmt.Errorf("%s is not an object file", filename)
		}
	}
	if stdinCount > 1 {
		return Config{}, errors.New("stdin can only be read once")
	}
	if cfg.Jobs < 1 {
		return Config{}, fmt.Errorf("-jobs must be at least 1, got %d", cfg.Jobs)
	}

	return cfg, nil
}
