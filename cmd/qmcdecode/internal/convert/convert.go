package convert

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/saylorsolutions/qmcdecode/pkg/qmc"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidJobs = errors.New("jobs must be greater than 0")
)

// Result is the outcome of converting a single file.
type Result struct {
	Source string
	// Dest is empty if no output path could be derived from Source.
	Dest string
	Pair qmc.Pair
	// Bytes is the number of bytes written to Dest.
	Bytes int64
	// Detected is only populated when probing is enabled.
	Detected qmc.Container
	Err      error
}

// Converter converts files between their masked and playable forms.
type Converter struct {
	outDir    string
	chunkSize int
	jobs      int
	legacy    bool
	probe     bool
	log       zerolog.Logger
	tr        *qmc.Transformer
}

// Option operates on a Converter in New.
// If any Option returns an error, then construction stops and the error is returned.
type Option = func(*Converter) error

// OutDir sets the directory that converted files are written to.
// It's created if it doesn't exist.
func OutDir(dir string) Option {
	return func(c *Converter) error {
		if len(dir) == 0 {
			dir = "."
		}
		c.outDir = dir
		return nil
	}
}

// ChunkSize sets the buffer size used for reading files.
func ChunkSize(size int) Option {
	return func(c *Converter) error {
		if err := qmc.ValidateChunkSize(size); err != nil {
			return err
		}
		c.chunkSize = size
		return nil
	}
}

// Jobs sets how many files may be converted at the same time.
func Jobs(n int) Option {
	return func(c *Converter) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidJobs, n)
		}
		c.jobs = n
		return nil
	}
}

// LegacyWrap selects the keystream wrapping of the original qmc-decode tool.
func LegacyWrap(val bool) Option {
	return func(c *Converter) error {
		c.legacy = val
		return nil
	}
}

// Probe enables identification of the audio container inside each file.
// A mismatch between the detected and expected container is logged, but never stops the file from being written.
func Probe(val bool) Option {
	return func(c *Converter) error {
		c.probe = val
		return nil
	}
}

// Logger sets the logger used to report progress for each file.
func Logger(log zerolog.Logger) Option {
	return func(c *Converter) error {
		c.log = log
		return nil
	}
}

// New creates a Converter with the given options.
// By default, files are written to the current directory one at a time, using qmc.DefaultChunkSize, without logging.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		outDir:    ".",
		chunkSize: qmc.DefaultChunkSize,
		jobs:      1,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	tr, err := qmc.NewTransformer(c.transformOpts()...)
	if err != nil {
		return nil, err
	}
	c.tr = tr
	return c, nil
}

func (c *Converter) transformOpts() []qmc.TransformOpt {
	return []qmc.TransformOpt{
		qmc.ChunkSize(c.chunkSize),
		qmc.UseLegacyWrap(c.legacy),
	}
}

// Run converts every path, with at most the configured number of jobs at once.
// A failure converting one file doesn't affect the others.
// Results are returned in the same order as paths.
func (c *Converter) Run(paths []string) []Result {
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(c.jobs)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = c.File(path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// File converts a single file, writing the result to the output directory.
// If conversion fails part way through, the partially written output is left in place.
func (c *Converter) File(src string) Result {
	res := Result{Source: src}
	log := c.log.With().Str("source", src).Logger()
	res.Err = c.convert(&res, log)
	switch {
	case IsNamingError(res.Err):
		log.Warn().Err(res.Err).Msg("skipping file")
		return res
	case res.Err != nil:
		log.Error().Err(res.Err).Msg("failed to convert")
		return res
	}
	log.Info().
		Str("dest", res.Dest).
		Int64("bytes", res.Bytes).
		Str("size", humanize.IBytes(uint64(res.Bytes))).
		Msg("wrote")
	return res
}

func (c *Converter) convert(res *Result, log zerolog.Logger) (err error) {
	res.Dest, res.Pair, err = OutputPath(res.Source, c.outDir)
	if err != nil {
		return err
	}
	log.Info().Msg("converting")

	in, err := os.Open(res.Source)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	if c.probe {
		res.Detected, err = c.identify(in, res.Pair)
		if err != nil {
			return fmt.Errorf("probe: %w", err)
		}
		if res.Detected != res.Pair.Container {
			log.Warn().
				Stringer("expected", res.Pair.Container).
				Stringer("detected", res.Detected).
				Msg("container doesn't match the file extension")
		} else {
			log.Debug().Stringer("container", res.Detected).Msg("probed")
		}
	}

	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out, err := os.Create(res.Dest)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	res.Bytes, err = c.tr.Transform(out, in)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	return err
}

// Summary totals up a batch of Results.
type Summary struct {
	Converted int
	Failed    int
	Bytes     int64
}

func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Converted++
		s.Bytes += r.Bytes
	}
	return s
}
