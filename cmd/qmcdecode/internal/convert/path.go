package convert

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/saylorsolutions/qmcdecode/pkg/qmc"
)

// Expand resolves each pattern to the files it matches, keeping the order they were given in.
// Patterns may use ** to match any number of directories.
// A pattern that matches nothing contributes nothing, and an invalid pattern is reported in errs without stopping expansion of the rest.
func Expand(patterns []string) (paths []string, errs []error) {
	seen := map[string]bool{}
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern '%s': %w", pattern, err))
			continue
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	return paths, errs
}

// OutputPath derives the destination of src within outDir.
// The last extension of the file name is replaced with the paired extension, so "dir/song.qmcflac" becomes "outDir/song.flac".
func OutputPath(src, outDir string) (string, qmc.Pair, error) {
	base := filepath.Base(src)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "", qmc.Pair{}, qmc.ErrMissingFilename
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	pair, err := qmc.Lookup(strings.TrimPrefix(ext, "."))
	if err != nil {
		return "", qmc.Pair{}, err
	}
	if len(stem) == 0 {
		return "", qmc.Pair{}, qmc.ErrMissingFilename
	}
	return filepath.Join(outDir, stem+"."+string(pair.Target)), pair, nil
}

// IsNamingError reports whether err came from deriving an output path, rather than from I/O.
func IsNamingError(err error) bool {
	return errors.Is(err, qmc.ErrMissingExtension) ||
		errors.Is(err, qmc.ErrUnsupportedExtension) ||
		errors.Is(err, qmc.ErrMissingFilename)
}
