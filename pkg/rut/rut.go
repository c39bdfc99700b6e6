// Package rut wires the rut command: flag surface, configuration
// resolution, and the per-file processing loop.
package rut

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"rut/pkg/core"
	"rut/pkg/cut"
	"rut/pkg/ranges"
)

type mode int

const (
	modeBytes mode = iota
	modeCharacters
	modeFieldsChar
	modeFieldsRegex
)

// config is the resolved configuration consumed by the processing loop.
// Ranges are already complemented when --complement was given.
type config struct {
	mode        mode
	ranges      ranges.Ranges
	delimiter   rune
	regex       *regexp.Regexp
	outputDelim string
	suppress    bool
	lineDelim   byte
	files       []string
}

// options holds raw flag values before validation.
type options struct {
	bytes          string
	characters     string
	fields         string
	delimiter      string
	regexDelimiter string
	outputDelim    string
	complement     bool
	suppress       bool
	zeroTerminated bool
	noSplit        bool
}

type app struct {
	stdio    *core.Stdio
	opts     options
	exitCode int
}

// Run executes rut with the given arguments and returns the exit code:
// 0 on full success, 1 on argument validation failure or when any input
// source failed.
func Run(stdio *core.Stdio, args []string) int {
	a := &app{stdio: stdio}
	cmd := a.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdio.Err)
	cmd.SetErr(stdio.Err)
	if err := cmd.Execute(); err != nil {
		return core.ExitFailure
	}
	return a.exitCode
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rut [flags] [file]...",
		Short: "Select portions of each line of the input",
		Long: `rut extracts a selection of bytes (-b), characters (-c), or
delimiter-separated fields (-f) from each line of its input files, or from
standard input when no file (or "-") is given.

Ranges are 1-based and comma or blank separated: N, N-M, -M, and N- are
accepted, e.g. "2-4,7-,-3".`,
		Args: cobra.ArbitraryArgs,
		RunE: a.run,
	}

	f := cmd.Flags()
	f.StringVarP(&a.opts.bytes, "bytes", "b", "", "cut based on a list of bytes")
	f.StringVarP(&a.opts.characters, "characters", "c", "", "cut based on a list of characters")
	f.StringVarP(&a.opts.fields, "fields", "f", "", "cut based on a list of delimiter-separated fields")
	f.StringVarP(&a.opts.delimiter, "delimiter", "d", "", "field delimiter character (default tab)")
	f.StringVarP(&a.opts.regexDelimiter, "regex-delimiter", "r", "", "field delimiter regular expression")
	f.StringVarP(&a.opts.outputDelim, "output-delimiter", "o", "", "string used to join selected fields")
	f.BoolVar(&a.opts.complement, "complement", false, "select the complement of the given ranges")
	f.BoolVarP(&a.opts.suppress, "only-delimited", "s", false, "suppress lines with no delimiter (with -f)")
	f.BoolVarP(&a.opts.zeroTerminated, "zero-terminated", "z", false, "line delimiter is NUL instead of newline")
	f.BoolVarP(&a.opts.noSplit, "no-split", "n", false, "do not split multi-byte characters (no-op)")

	cmd.MarkFlagsOneRequired("bytes", "characters", "fields")
	cmd.MarkFlagsMutuallyExclusive("bytes", "characters", "fields")
	cmd.MarkFlagsMutuallyExclusive("delimiter", "regex-delimiter")

	// Field-mode flags conflict with byte and character modes, -n with
	// everything except byte mode.
	for _, flag := range []string{"delimiter", "regex-delimiter", "output-delimiter", "only-delimited"} {
		cmd.MarkFlagsMutuallyExclusive("bytes", flag)
		cmd.MarkFlagsMutuallyExclusive("characters", flag)
	}
	cmd.MarkFlagsMutuallyExclusive("characters", "no-split")
	cmd.MarkFlagsMutuallyExclusive("fields", "no-split")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	cfg, err := a.opts.resolve(args)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	a.process(cfg)
	return nil
}

// resolve validates the raw flag values into a config.
func (o *options) resolve(files []string) (*config, error) {
	cfg := &config{
		outputDelim: o.outputDelim,
		suppress:    o.suppress,
		lineDelim:   '\n',
		files:       files,
	}
	if o.zeroTerminated {
		cfg.lineDelim = 0
	}
	if len(cfg.files) == 0 {
		cfg.files = []string{"-"}
	}

	var spec string
	switch {
	case o.bytes != "":
		cfg.mode = modeBytes
		spec = o.bytes
	case o.characters != "":
		cfg.mode = modeCharacters
		spec = o.characters
	case o.fields != "":
		spec = o.fields
		if o.regexDelimiter != "" {
			cfg.mode = modeFieldsRegex
			re, err := regexp.Compile(o.regexDelimiter)
			if err != nil {
				return nil, fmt.Errorf("invalid regex delimiter: %w", err)
			}
			cfg.regex = re
			if cfg.outputDelim == "" {
				cfg.outputDelim = "\t"
			}
		} else {
			cfg.mode = modeFieldsChar
			delim := o.delimiter
			if delim == "" {
				delim = "\t"
			}
			runes := []rune(delim)
			if len(runes) != 1 {
				return nil, fmt.Errorf("the delimiter must be a single character")
			}
			cfg.delimiter = runes[0]
			if cfg.outputDelim == "" {
				cfg.outputDelim = string(cfg.delimiter)
			}
		}
	default:
		return nil, fmt.Errorf("a list of bytes, characters, or fields must be given")
	}

	r, err := ranges.Parse(spec)
	if err != nil {
		return nil, err
	}
	if o.complement {
		r = r.Complement()
	}
	cfg.ranges = r

	return cfg, nil
}

// process runs the configured cut over every input source in order. A
// source that fails to open or to process is reported and skipped; the
// remaining sources are still attempted.
func (a *app) process(cfg *config) {
	a.exitCode = core.ExitSuccess
	for _, name := range cfg.files {
		if err := a.processFile(cfg, name); err != nil {
			a.stdio.Errorf("rut: %s: %v\n", name, err)
			a.exitCode = core.ExitFailure
		}
	}
}

func (a *app) processFile(cfg *config, name string) error {
	var in io.Reader
	if name == "-" {
		in = a.stdio.In
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return cfg.cut(in, a.stdio.Out)
}

func (c *config) cut(in io.Reader, out io.Writer) error {
	switch c.mode {
	case modeBytes:
		return cut.Bytes(in, out, c.lineDelim, c.ranges)
	case modeCharacters:
		return cut.Characters(in, out, c.lineDelim, c.ranges)
	case modeFieldsChar:
		return cut.FieldsChar(in, out, c.lineDelim, c.delimiter, c.outputDelim, c.suppress, c.ranges)
	default:
		return cut.FieldsRegex(in, out, c.lineDelim, c.regex, c.outputDelim, c.suppress, c.ranges)
	}
}
