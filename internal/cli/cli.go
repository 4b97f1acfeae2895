package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	// ReplyPath is the reply bundle. "-" or empty with piped stdin reads
	// stdin; empty otherwise reads the clipboard.
	ReplyPath string
	OutputDir string
	// ApplyDelta is the reference bundle that patch commands are resolved
	// against. Empty disables patch mode.
	ApplyDelta string
	Yes        bool
	No         bool
	Quiet      bool
	Nvim       bool
	DryRun     bool
}

// ErrHelp is returned when -h/--help was given. Usage has been printed.
var ErrHelp = pflag.ErrHelp

// ParseFlags parses args (without the program name). Usage and parse errors
// are written to out.
func ParseFlags(args []string, out io.Writer) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("dogs", pflag.ContinueOnError)
	flags.SetOutput(out)

	flags.StringVarP(&cfg.ApplyDelta, "apply-delta", "d", "", "Reference bundle to resolve PAWS_CMD patch commands against.")
	flags.BoolVarP(&cfg.Yes, "yes", "y", false, "Answer yes to every prompt.")
	flags.BoolVarP(&cfg.No, "no", "n", false, "Answer no to every prompt; only new files are created.")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress messages. Implies --no unless --yes is given.")
	flags.BoolVar(&cfg.Nvim, "nvim", false, "Write text files through Neovim buffers.")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "Print what would change without touching any file.")

	flags.Usage = func() {
		fmt.Fprintln(out, "Usage: dogs [flags] [REPLY_BUNDLE|-] [OUTPUT_DIR]")
		fmt.Fprintln(out, "\nExtract the files of a reply bundle into OUTPUT_DIR (default: current directory).")
		fmt.Fprintln(out, "Without REPLY_BUNDLE, stdin is read when piped, otherwise the clipboard.")
		fmt.Fprintln(out, "\nExample: pbpaste | dogs -d reference.bundle - ./project")
		fmt.Fprintln(out, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	rest := flags.Args()
	if len(rest) > 2 {
		return nil, fmt.Errorf("error: too many arguments: %v", rest[2:])
	}
	if len(rest) > 0 {
		cfg.ReplyPath = rest[0]
	}
	cfg.OutputDir = "."
	if len(rest) > 1 {
		cfg.OutputDir = rest[1]
	}

	if cfg.Yes && cfg.No {
		return nil, errors.New("error: --yes and --no are mutually exclusive")
	}
	if cfg.Quiet && !cfg.Yes {
		cfg.No = true
	}
	return cfg, nil
}
