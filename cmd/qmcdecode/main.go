package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/saylorsolutions/qmcdecode/cmd/internal"
	"github.com/saylorsolutions/qmcdecode/cmd/qmcdecode/internal/convert"
)

var (
	version = "dev"
)

func main() {
	var (
		helpFlag    bool
		versionFlag bool
	)
	flags := newFlagSet()
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version and exits.")
	flags.Usage = func() {
		fmt.Printf(`
qmcdecode converts audio files between their masked (qmc*) and playable forms.
The extension of each input file decides the output format:
    qmc0, qmc3 -> mp3
    qmcogg     -> ogg
    qmcflac    -> flac
    flac       -> qmcflac
    mp3        -> qmc0

The output file has the same name as the input, with the last extension replaced, and is written to the output directory.
An existing output file is overwritten.

USAGE:  qmcdecode [FLAGS] INPUT...

ARGS:
    INPUT is a file or glob pattern to convert, and may be given more than once. Patterns may use ** to match nested directories.

FLAGS:
%s
NOTES:
    A failure converting one file is reported, and the rest are still converted.
    If a failure happens part way through writing, the partial output file is left in place.
    Files longer than 32KiB produced by the original qmc-decode tool only convert back exactly with --legacy-wrap.
    The exit code is 1 if any file failed, or 2 for invalid arguments.
`, flags.FlagUsages())
	}
	if len(os.Args) == 1 {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Usage("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}
	if versionFlag {
		internal.Echo("qmcdecode %s", version)
		return
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		internal.Usage("Invalid configuration: %v", err)
	}
	log := newLogger(cfg.Verbose)

	paths, errs := convert.Expand(cfg.Inputs)
	for _, err := range errs {
		log.Warn().Err(err).Msg("ignoring invalid pattern")
	}
	if len(paths) == 0 {
		log.Warn().Strs("inputs", cfg.Inputs).Msg("no files matched")
		return
	}

	conv, err := convert.New(
		convert.OutDir(cfg.OutDir),
		convert.ChunkSize(cfg.BufferSize),
		convert.Jobs(cfg.Jobs),
		convert.LegacyWrap(cfg.LegacyWrap),
		convert.Probe(cfg.Probe),
		convert.Logger(log),
	)
	if err != nil {
		internal.Usage("Invalid configuration: %v", err)
	}

	summary := convert.Summarize(conv.Run(paths))
	log.Info().
		Int("converted", summary.Converted).
		Int("failed", summary.Failed).
		Str("total", humanize.IBytes(uint64(summary.Bytes))).
		Msg("done")
	if summary.Failed > 0 {
		internal.Fatal("%d of %d files failed to convert", summary.Failed, len(paths))
	}
}
