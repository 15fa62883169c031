package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/saylorsolutions/qmcdecode/pkg/qmc"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	flagOutDir     = "outdir"
	flagBufferSize = "buffer-size"
	flagJobs       = "jobs"
	flagLegacyWrap = "legacy-wrap"
	flagProbe      = "probe"
	flagVerbose    = "verbose"
)

var envBindings = map[string]string{
	flagBufferSize: "BUFFER_SIZE",
	flagOutDir:     "QMC_OUTDIR",
	flagJobs:       "QMC_JOBS",
}

type config struct {
	Inputs     []string
	OutDir     string
	BufferSize int
	Jobs       int
	LegacyWrap bool
	Probe      bool
	Verbose    bool
}

func newFlagSet() *flag.FlagSet {
	flags := flag.NewFlagSet("qmcdecode", flag.ContinueOnError)
	flags.StringP(flagOutDir, "o", ".", "Output directory, created if it doesn't exist. May also be set with QMC_OUTDIR.")
	flags.Int(flagBufferSize, qmc.DefaultChunkSize, "Buffer size in bytes for reading files, at most 1GiB. May also be set with BUFFER_SIZE.")
	flags.IntP(flagJobs, "j", 1, "Number of files to convert at the same time. May also be set with QMC_JOBS.")
	flags.Bool(flagLegacyWrap, false, "Wrap the keystream at 0x7FFF like the original qmc-decode tool. Use this for files produced by that tool.")
	flags.Bool(flagProbe, false, "Identify the audio container inside each file, and warn if it doesn't match the extension.")
	flags.BoolP(flagVerbose, "v", false, "Enables debug logging.")
	return flags
}

// loadConfig layers explicitly set flags over environment variables over flag defaults.
// flags must have already been parsed.
func loadConfig(flags *flag.FlagSet) (*config, error) {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	cfg := &config{
		Inputs:     flags.Args(),
		OutDir:     v.GetString(flagOutDir),
		BufferSize: v.GetInt(flagBufferSize),
		Jobs:       v.GetInt(flagJobs),
		LegacyWrap: v.GetBool(flagLegacyWrap),
		Probe:      v.GetBool(flagProbe),
		Verbose:    v.GetBool(flagVerbose),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("missing required INPUT argument")
	}
	if err := qmc.ValidateChunkSize(c.BufferSize); err != nil {
		return fmt.Errorf("buffer size: %w", err)
	}
	if c.Jobs <= 0 {
		return errors.New("jobs must be a positive integer")
	}
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
